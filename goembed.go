package goembed

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/datar-psa/goembed/api"
	"github.com/datar-psa/goembed/gemini"
	"github.com/datar-psa/goembed/similarity"
)

type SimilarityResult = similarity.Result

// GeminiOptions configures Gemini text embedding creation
type GeminiOptions struct {
	modelID    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
	dimensions int32
	taskType   string
	baseURL    string
	client     api.EmbeddingClient
}

// WithModelID sets the embedding model (e.g., "text-embedding-004")
func WithModelID(modelID string) func(*GeminiOptions) {
	return func(opts *GeminiOptions) {
		opts.modelID = modelID
	}
}

// WithAPIKey sets the Gemini API key
func WithAPIKey(apiKey string) func(*GeminiOptions) {
	return func(opts *GeminiOptions) {
		opts.apiKey = apiKey
	}
}

// WithHTTPClient sets the HTTP client; the process-wide shared client is used otherwise
func WithHTTPClient(client *http.Client) func(*GeminiOptions) {
	return func(opts *GeminiOptions) {
		opts.httpClient = client
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) func(*GeminiOptions) {
	return func(opts *GeminiOptions) {
		opts.logger = logger
	}
}

// WithDimensions requests vectors of the given size
func WithDimensions(dimensions int32) func(*GeminiOptions) {
	return func(opts *GeminiOptions) {
		opts.dimensions = dimensions
	}
}

// WithTaskType sets the Gemini task type
func WithTaskType(taskType string) func(*GeminiOptions) {
	return func(opts *GeminiOptions) {
		opts.taskType = taskType
	}
}

// WithBaseURL overrides the Gemini API endpoint
func WithBaseURL(baseURL string) func(*GeminiOptions) {
	return func(opts *GeminiOptions) {
		opts.baseURL = baseURL
	}
}

// WithEmbeddingClient replaces the default Gemini client.
// HTTP client, logger, base URL, dimensions and task type options are ignored when set.
func WithEmbeddingClient(client api.EmbeddingClient) func(*GeminiOptions) {
	return func(opts *GeminiOptions) {
		opts.client = client
	}
}

// NewGeminiTextEmbedding creates a text embedding generator backed by the Google AI Gemini API.
// Model id and API key are required; the error wraps ErrInvalidArgument otherwise.
func NewGeminiTextEmbedding(ctx context.Context, opts ...func(*GeminiOptions)) (api.TextEmbeddingGenerator, error) {
	options := &GeminiOptions{}
	for _, opt := range opts {
		opt(options)
	}

	serviceOpts := []func(*gemini.TextEmbeddingServiceOptions){
		gemini.WithHTTPClient(options.httpClient),
		gemini.WithDimensions(options.dimensions),
		gemini.WithTaskType(options.taskType),
		gemini.WithBaseURL(options.baseURL),
	}
	if options.logger != nil {
		serviceOpts = append(serviceOpts, gemini.WithLogger(options.logger))
	}
	if options.client != nil {
		serviceOpts = append(serviceOpts, gemini.WithEmbeddingClient(options.client))
	}

	svc, err := gemini.NewTextEmbeddingService(ctx, options.modelID, options.apiKey, serviceOpts...)
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// Similarity embeds a and b with gen and returns their cosine similarity.
func Similarity(ctx context.Context, gen api.TextEmbeddingGenerator, a, b string) (SimilarityResult, error) {
	return similarity.Compare(ctx, gen, a, b)
}
