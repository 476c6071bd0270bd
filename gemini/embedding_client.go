package gemini

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/datar-psa/goembed/api"
	"github.com/datar-psa/goembed/internal/httpclient"
)

// EmbeddingClientConfig configures an EmbeddingClient
type EmbeddingClientConfig struct {
	// ModelID is the embedding model to use (e.g., "text-embedding-004")
	ModelID string
	// APIKey authenticates against the Gemini API
	APIKey string
	// HTTPClient is the transport handle; the process-wide shared client is used when nil
	HTTPClient *http.Client
	// BaseURL overrides the Gemini API endpoint (proxies, tests)
	BaseURL string
	// Dimensions truncates the returned vectors when > 0
	Dimensions int32
	// TaskType hints the intended use of the embeddings (e.g., "RETRIEVAL_DOCUMENT")
	TaskType string
	// Logger receives request diagnostics; a no-op logger is used when nil
	Logger *zap.Logger
}

// EmbeddingClient calls the Gemini embeddings endpoint through a genai.Client
type EmbeddingClient struct {
	client     *genai.Client
	modelID    string
	dimensions int32
	taskType   string
	logger     *zap.Logger
}

// NewEmbeddingClient creates a Gemini API embedding client.
// The genai client is created without network access; authentication happens per request.
func NewEmbeddingClient(ctx context.Context, cfg EmbeddingClientConfig) (*EmbeddingClient, error) {
	if err := api.RequireNonBlank("modelID", cfg.ModelID); err != nil {
		return nil, err
	}
	if err := api.RequireNonBlank("apiKey", cfg.APIKey); err != nil {
		return nil, err
	}

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpclient.GetOrShared(cfg.HTTPClient),
		HTTPOptions: genai.HTTPOptions{
			BaseURL: cfg.BaseURL,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return newEmbeddingClient(genaiClient, cfg), nil
}

func newEmbeddingClient(client *genai.Client, cfg EmbeddingClientConfig) *EmbeddingClient {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmbeddingClient{
		client:     client,
		modelID:    cfg.ModelID,
		dimensions: cfg.Dimensions,
		taskType:   cfg.TaskType,
		logger:     logger,
	}
}

// GenerateEmbeddings implements api.EmbeddingClient.
// All inputs are sent in a single request; an empty input returns an empty result without a request.
func (c *EmbeddingClient) GenerateEmbeddings(ctx context.Context, data []string) ([][]float32, error) {
	if len(data) == 0 {
		return [][]float32{}, nil
	}

	contents := make([]*genai.Content, len(data))
	for i, text := range data {
		contents[i] = &genai.Content{
			Parts: []*genai.Part{
				{Text: text},
			},
		}
	}

	start := time.Now()
	result, err := c.client.Models.EmbedContent(ctx, c.modelID, contents, c.embedConfig())
	if err != nil {
		fields := []zap.Field{
			zap.String("model", c.modelID),
			zap.Int("inputs", len(data)),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		}
		if ctx.Err() != nil {
			c.logger.Debug("embedding request cancelled", fields...)
		} else {
			c.logger.Error("embedding request failed", fields...)
		}
		return nil, fmt.Errorf("failed to generate embeddings: %w", err)
	}

	if len(result.Embeddings) != len(data) {
		return nil, fmt.Errorf("%w: got %d, want %d", api.ErrEmbeddingCountMismatch, len(result.Embeddings), len(data))
	}

	embeddings := make([][]float32, len(result.Embeddings))
	for i, e := range result.Embeddings {
		if e == nil || len(e.Values) == 0 {
			return nil, fmt.Errorf("%w at index %d", api.ErrEmptyEmbedding, i)
		}
		embeddings[i] = e.Values
	}

	c.logger.Debug("generated embeddings",
		zap.String("model", c.modelID),
		zap.Int("inputs", len(data)),
		zap.Int("dimensions", len(embeddings[0])),
		zap.Duration("duration", time.Since(start)),
	)

	return embeddings, nil
}

func (c *EmbeddingClient) embedConfig() *genai.EmbedContentConfig {
	cfg := &genai.EmbedContentConfig{
		TaskType: c.taskType,
	}
	if c.dimensions > 0 {
		dims := c.dimensions
		cfg.OutputDimensionality = &dims
	}
	return cfg
}

// Verify that EmbeddingClient implements api.EmbeddingClient
var _ api.EmbeddingClient = (*EmbeddingClient)(nil)
