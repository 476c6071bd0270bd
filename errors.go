package goembed

import "github.com/datar-psa/goembed/api"

var (
	// ErrInvalidArgument is returned when a model id or API key is empty or whitespace only
	ErrInvalidArgument = api.ErrInvalidArgument
	// ErrEmbeddingCountMismatch is returned when the backend returns a different number of vectors than inputs
	ErrEmbeddingCountMismatch = api.ErrEmbeddingCountMismatch
	// ErrEmptyEmbedding is returned when the backend returns a missing or zero-length vector
	ErrEmptyEmbedding = api.ErrEmptyEmbedding
)
