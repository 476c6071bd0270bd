package api

import (
	"context"
	"errors"
)

// ModelIDKey is the attribute key under which every embedding service exposes its model identifier
const ModelIDKey = "ModelId"

var (
	// ErrInvalidArgument is returned when a required constructor argument is empty or whitespace only
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrEmbeddingCountMismatch is returned when the backend returns a different number of vectors than inputs
	ErrEmbeddingCountMismatch = errors.New("embedding count does not match input count")
	// ErrEmptyEmbedding is returned when the backend returns a missing or zero-length vector
	ErrEmptyEmbedding = errors.New("empty embedding vector")
)

// EmbeddingClient is the collaborator that talks to a remote embedding API.
// A Gemini implementation is provided in the gemini subpackage
type EmbeddingClient interface {
	// GenerateEmbeddings returns one vector per input string, in input order
	GenerateEmbeddings(ctx context.Context, data []string) ([][]float32, error)
}

// TextEmbeddingGenerator is the service-level interface consumed by callers that need text embeddings
type TextEmbeddingGenerator interface {
	// Attributes returns read-only metadata describing the service (at least ModelIDKey)
	Attributes() Attributes

	// GenerateEmbeddings returns one vector per input string, in input order.
	// Cancellation of ctx is propagated to the underlying client.
	// Implementations in this module accept opts and ignore them.
	GenerateEmbeddings(ctx context.Context, data []string, opts ...GenerateOption) ([][]float32, error)
}

// GenerateOptions carries optional per-call arguments for GenerateEmbeddings.
// No embedding service in this module reads them.
type GenerateOptions struct {
	// Kernel is caller-specific orchestration context.
	// Embedding services accept it but do not read it.
	Kernel any
}

// GenerateOption configures a single GenerateEmbeddings call
type GenerateOption func(*GenerateOptions)

// WithKernel attaches caller orchestration context to a GenerateEmbeddings call
func WithKernel(kernel any) GenerateOption {
	return func(opts *GenerateOptions) {
		opts.Kernel = kernel
	}
}
