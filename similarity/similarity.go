package similarity

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/datar-psa/goembed/api"
)

// ErrNoGenerator is returned when Compare is called without an embedding generator
var ErrNoGenerator = errors.New("embedding generator is required")

// Result is the outcome of comparing two texts
type Result struct {
	// Cosine is the raw cosine similarity in [-1, 1]
	Cosine float64
	// Score is Cosine mapped to [0, 1], where 1 means identical direction
	Score float64
	// Dimensions is the length of the compared vectors
	Dimensions int
}

// Compare embeds a and b in a single GenerateEmbeddings call and measures their cosine similarity
func Compare(ctx context.Context, gen api.TextEmbeddingGenerator, a, b string) (Result, error) {
	if gen == nil {
		return Result{}, ErrNoGenerator
	}

	embeddings, err := gen.GenerateEmbeddings(ctx, []string{a, b})
	if err != nil {
		return Result{}, fmt.Errorf("failed to embed texts: %w", err)
	}
	if len(embeddings) != 2 {
		return Result{}, fmt.Errorf("%w: got %d, want 2", api.ErrEmbeddingCountMismatch, len(embeddings))
	}

	cos := Cosine(embeddings[0], embeddings[1])

	return Result{
		Cosine:     cos,
		Score:      Normalize(cos),
		Dimensions: len(embeddings[0]),
	}, nil
}

// Normalize maps a cosine similarity from [-1, 1] to [0, 1], clamping out-of-range input
func Normalize(cos float64) float64 {
	score := (cos + 1.0) / 2.0
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// Cosine computes the cosine similarity between two vectors.
// Returns 0 for vectors of different length or zero magnitude.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dotProduct += x * y
		normA += x * x
		normB += y * y
	}

	normA = math.Sqrt(normA)
	normB = math.Sqrt(normB)

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (normA * normB)
}
