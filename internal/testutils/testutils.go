package testutils

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/areknoster/hypert"
	"go.uber.org/zap/zaptest"

	"github.com/datar-psa/goembed/gemini"
)

// replayAPIKey is sent in replay mode, where no request reaches the network
const replayAPIKey = "replay-key"

// apiKeyHeader carries the Gemini API key and must never reach a recording
const apiKeyHeader = "X-Goog-Api-Key"

// ShouldUpdate returns true if tests should update cached HTTP responses
// Set UPDATE_TESTS=true environment variable to update cached responses
func ShouldUpdate() bool {
	return os.Getenv("UPDATE_TESTS") == "true"
}

// HypertClientConfig configures hypert client creation
type HypertClientConfig struct {
	TestDataDir string
	SubDir      string // Optional subdirectory for organizing test data
}

func (c HypertClientConfig) dir() string {
	if c.SubDir != "" {
		return filepath.Join(c.TestDataDir, c.SubDir)
	}
	return c.TestDataDir
}

// SkipWithoutRecordings skips the test in replay mode when nothing has been recorded yet
func SkipWithoutRecordings(t *testing.T, config HypertClientConfig) {
	t.Helper()
	if ShouldUpdate() {
		return
	}
	if _, err := os.Stat(config.dir()); os.IsNotExist(err) {
		t.Skipf("no recorded responses in %s; run with UPDATE_TESTS=true to record", config.dir())
	}
}

// NewHypertClient creates a new hypert client for caching HTTP requests
// This is useful for integration tests that make external API calls
func NewHypertClient(t *testing.T, config HypertClientConfig) *http.Client {
	namingScheme, err := hypert.NewContentHashNamingScheme(config.dir())
	if err != nil {
		t.Fatalf("failed to create naming scheme: %v", err)
	}

	return hypert.TestClient(t, ShouldUpdate(),
		hypert.WithNamingScheme(namingScheme),
		hypert.WithRequestSanitizer(hypert.ComposedRequestSanitizer(
			hypert.DefaultRequestSanitizer(),
			hypert.HeadersSanitizer(apiKeyHeader),
		)),
		hypert.WithRequestValidator(hypert.ComposedRequestValidator(
			hypert.PathValidator(),
			hypert.QueryParamsValidator(),
			hypert.MethodValidator(),
		)),
	)
}

// GeminiTestConfig configures Gemini service creation for tests
type GeminiTestConfig struct {
	APIKey string
	SubDir string // Subdirectory for hypert test data
}

// HypertConfig returns the hypert configuration matching this Gemini config
func (c GeminiTestConfig) HypertConfig() HypertClientConfig {
	return HypertClientConfig{
		TestDataDir: "testdata",
		SubDir:      c.SubDir,
	}
}

// DefaultGeminiTestConfig returns a default configuration for Gemini testing
func DefaultGeminiTestConfig(subDir string) GeminiTestConfig {
	return GeminiTestConfig{
		APIKey: os.Getenv("GEMINI_API_KEY"),
		SubDir: subDir,
	}
}

// NewTextEmbeddingService creates a Gemini text embedding service for testing with hypert caching
func NewTextEmbeddingService(t *testing.T, config GeminiTestConfig, modelID string) *gemini.TextEmbeddingService {
	apiKey := config.APIKey
	if apiKey == "" && !ShouldUpdate() {
		apiKey = replayAPIKey
	}

	svc, err := gemini.NewTextEmbeddingService(context.Background(), modelID, apiKey,
		gemini.WithHTTPClient(NewHypertClient(t, config.HypertConfig())),
		gemini.WithLogger(zaptest.NewLogger(t)),
	)
	if err != nil {
		t.Fatalf("failed to create text embedding service: %v", err)
	}

	return svc
}
