package gemini

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/datar-psa/goembed/api"
	"github.com/datar-psa/goembed/internal/httpclient"
)

// DefaultEmbeddingModel is used when GEMINI_EMBEDDING_MODEL is not set
const DefaultEmbeddingModel = "text-embedding-004"

// Config holds application-level settings for a TextEmbeddingService
type Config struct {
	ModelID      string // Embedding model identifier
	APIKey       string // Gemini API key
	BaseURL      string // Optional endpoint override
	Dimensions   int32  // Optional output dimensionality (0 = model default)
	TaskType     string // Optional Gemini task type
	HTTPTimeoutS int    // HTTP timeout seconds (0 = no client timeout)
}

// NewConfig reads from environment variables.
func NewConfig() *Config {
	cfg := &Config{
		ModelID:  DefaultEmbeddingModel,
		APIKey:   os.Getenv("GEMINI_API_KEY"),
		BaseURL:  os.Getenv("GEMINI_BASE_URL"),
		TaskType: os.Getenv("GEMINI_EMBEDDING_TASK_TYPE"),
	}
	if v := os.Getenv("GEMINI_EMBEDDING_MODEL"); v != "" {
		cfg.ModelID = v
	}
	if v := os.Getenv("GEMINI_EMBEDDING_DIMENSIONS"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil && n > 0 {
			cfg.Dimensions = int32(n)
		}
	}
	if v := os.Getenv("GEMINI_HTTP_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HTTPTimeoutS = n
		}
	}
	return cfg
}

// Validate ensures required fields are present.
func (c *Config) Validate() error {
	if err := api.RequireNonBlank("GEMINI_EMBEDDING_MODEL", c.ModelID); err != nil {
		return err
	}
	if err := api.RequireNonBlank("GEMINI_API_KEY", c.APIKey); err != nil {
		return err
	}
	if c.Dimensions < 0 {
		return fmt.Errorf("%w: dimensions must not be negative", api.ErrInvalidArgument)
	}
	return nil
}

// Options converts the config into TextEmbeddingService options.
// A dedicated HTTP client is created only when a timeout is configured.
func (c *Config) Options() []func(*TextEmbeddingServiceOptions) {
	opts := []func(*TextEmbeddingServiceOptions){
		WithBaseURL(c.BaseURL),
		WithDimensions(c.Dimensions),
		WithTaskType(c.TaskType),
	}
	if c.HTTPTimeoutS > 0 {
		opts = append(opts, WithHTTPClient(httpclient.WithTimeout(time.Duration(c.HTTPTimeoutS)*time.Second)))
	}
	return opts
}
