package gemini

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/datar-psa/goembed/api"
)

const serviceLoggerName = "gemini.text_embedding_service"

// TextEmbeddingService generates text embeddings using the Google AI Gemini API.
// It holds no mutable state and is safe for concurrent use if its EmbeddingClient is.
type TextEmbeddingService struct {
	attributes api.Attributes
	client     api.EmbeddingClient
}

// TextEmbeddingServiceOptions configures TextEmbeddingService creation
type TextEmbeddingServiceOptions struct {
	httpClient *http.Client
	logger     *zap.Logger
	client     api.EmbeddingClient
	baseURL    string
	dimensions int32
	taskType   string
}

// WithHTTPClient sets the HTTP client used to reach the Gemini API
func WithHTTPClient(client *http.Client) func(*TextEmbeddingServiceOptions) {
	return func(opts *TextEmbeddingServiceOptions) {
		opts.httpClient = client
	}
}

// WithLogger sets the logger; the service logs under its own named child logger
func WithLogger(logger *zap.Logger) func(*TextEmbeddingServiceOptions) {
	return func(opts *TextEmbeddingServiceOptions) {
		opts.logger = logger
	}
}

// WithEmbeddingClient replaces the default Gemini client.
// HTTP client, logger, base URL, dimensions and task type options are ignored when set.
func WithEmbeddingClient(client api.EmbeddingClient) func(*TextEmbeddingServiceOptions) {
	return func(opts *TextEmbeddingServiceOptions) {
		opts.client = client
	}
}

// WithBaseURL overrides the Gemini API endpoint
func WithBaseURL(baseURL string) func(*TextEmbeddingServiceOptions) {
	return func(opts *TextEmbeddingServiceOptions) {
		opts.baseURL = baseURL
	}
}

// WithDimensions requests vectors truncated to the given size
func WithDimensions(dimensions int32) func(*TextEmbeddingServiceOptions) {
	return func(opts *TextEmbeddingServiceOptions) {
		opts.dimensions = dimensions
	}
}

// WithTaskType sets the Gemini task type (e.g., "SEMANTIC_SIMILARITY")
func WithTaskType(taskType string) func(*TextEmbeddingServiceOptions) {
	return func(opts *TextEmbeddingServiceOptions) {
		opts.taskType = taskType
	}
}

// NewTextEmbeddingService creates a new Gemini text embedding service.
// modelID: the embedding model to use (e.g., "text-embedding-004")
// apiKey: the Gemini API key
// Returns an error wrapping api.ErrInvalidArgument when modelID or apiKey is empty or whitespace.
func NewTextEmbeddingService(ctx context.Context, modelID, apiKey string, opts ...func(*TextEmbeddingServiceOptions)) (*TextEmbeddingService, error) {
	if err := api.RequireNonBlank("modelID", modelID); err != nil {
		return nil, err
	}
	if err := api.RequireNonBlank("apiKey", apiKey); err != nil {
		return nil, err
	}

	options := &TextEmbeddingServiceOptions{}
	for _, opt := range opts {
		opt(options)
	}

	client := options.client
	if client == nil {
		var logger *zap.Logger
		if options.logger != nil {
			logger = options.logger.Named(serviceLoggerName)
		}

		c, err := NewEmbeddingClient(ctx, EmbeddingClientConfig{
			ModelID:    modelID,
			APIKey:     apiKey,
			HTTPClient: options.httpClient,
			BaseURL:    options.baseURL,
			Dimensions: options.dimensions,
			TaskType:   options.taskType,
			Logger:     logger,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create embedding client: %w", err)
		}
		client = c
	}

	attributes, err := api.NewAttributes(api.Attribute{Key: api.ModelIDKey, Value: modelID})
	if err != nil {
		return nil, err
	}

	return &TextEmbeddingService{
		attributes: attributes,
		client:     client,
	}, nil
}

// Attributes implements api.TextEmbeddingGenerator
func (s *TextEmbeddingService) Attributes() api.Attributes {
	return s.attributes
}

// GenerateEmbeddings implements api.TextEmbeddingGenerator.
// Results and errors from the embedding client are returned unchanged; opts are ignored.
func (s *TextEmbeddingService) GenerateEmbeddings(ctx context.Context, data []string, _ ...api.GenerateOption) ([][]float32, error) {
	return s.client.GenerateEmbeddings(ctx, data)
}

// Verify that TextEmbeddingService implements api.TextEmbeddingGenerator
var _ api.TextEmbeddingGenerator = (*TextEmbeddingService)(nil)
