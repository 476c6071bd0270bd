package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/datar-psa/goembed/api"
)

// fakeGemini serves batchEmbedContents, returning one vector per request
type fakeGemini struct {
	requests atomic.Int32
	apiKey   atomic.Value
	path     atomic.Value
	// drop removes this many embeddings from every response
	drop int
	// blankLast clears the values of the last embedding in every response
	blankLast bool
}

func (f *fakeGemini) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.requests.Add(1)
	f.apiKey.Store(r.Header.Get("x-goog-api-key"))
	f.path.Store(r.URL.Path)

	var body struct {
		Requests []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"requests"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	type embedding struct {
		Values []float32 `json:"values"`
	}
	var resp struct {
		Embeddings []embedding `json:"embeddings"`
	}
	for i, req := range body.Requests {
		text := ""
		if len(req.Content.Parts) > 0 {
			text = req.Content.Parts[0].Text
		}
		resp.Embeddings = append(resp.Embeddings, embedding{Values: []float32{float32(i), float32(len(text))}})
	}
	if f.drop > 0 && len(resp.Embeddings) >= f.drop {
		resp.Embeddings = resp.Embeddings[:len(resp.Embeddings)-f.drop]
	}
	if f.blankLast && len(resp.Embeddings) > 0 {
		resp.Embeddings[len(resp.Embeddings)-1].Values = nil
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func newTestEmbeddingClient(t *testing.T, baseURL string, logger *zap.Logger) *EmbeddingClient {
	t.Helper()
	client, err := NewEmbeddingClient(context.Background(), EmbeddingClientConfig{
		ModelID:    "text-embedding-004",
		APIKey:     "test-key",
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
		BaseURL:    baseURL,
		Logger:     logger,
	})
	require.NoError(t, err)
	return client
}

func TestEmbeddingClient_GenerateEmbeddings(t *testing.T) {
	fake := &fakeGemini{}
	server := httptest.NewServer(fake)
	defer server.Close()

	client := newTestEmbeddingClient(t, server.URL, nil)

	got, err := client.GenerateEmbeddings(context.Background(), []string{"hello", "wide world"})
	require.NoError(t, err)

	assert.Equal(t, [][]float32{{0, 5}, {1, 10}}, got)
	assert.EqualValues(t, 1, fake.requests.Load())
	assert.Equal(t, "test-key", fake.apiKey.Load())
	assert.True(t, strings.HasSuffix(fake.path.Load().(string), ":batchEmbedContents"), "path = %v", fake.path.Load())
}

func TestEmbeddingClient_GenerateEmbeddings_EmptyInputSkipsRequest(t *testing.T) {
	fake := &fakeGemini{}
	server := httptest.NewServer(fake)
	defer server.Close()

	client := newTestEmbeddingClient(t, server.URL, nil)

	got, err := client.GenerateEmbeddings(context.Background(), []string{})
	require.NoError(t, err)

	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.EqualValues(t, 0, fake.requests.Load())
}

func TestEmbeddingClient_GenerateEmbeddings_CountMismatch(t *testing.T) {
	server := httptest.NewServer(&fakeGemini{drop: 1})
	defer server.Close()

	client := newTestEmbeddingClient(t, server.URL, nil)

	_, err := client.GenerateEmbeddings(context.Background(), []string{"a", "b"})
	assert.ErrorIs(t, err, api.ErrEmbeddingCountMismatch)
}

func TestEmbeddingClient_GenerateEmbeddings_EmptyVector(t *testing.T) {
	server := httptest.NewServer(&fakeGemini{blankLast: true})
	defer server.Close()

	client := newTestEmbeddingClient(t, server.URL, nil)

	got, err := client.GenerateEmbeddings(context.Background(), []string{"a", "b"})
	assert.Nil(t, got)
	assert.ErrorIs(t, err, api.ErrEmptyEmbedding)
	assert.Contains(t, err.Error(), "index 1")
}

func TestEmbeddingClient_GenerateEmbeddings_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`))
	}))
	defer server.Close()

	core, logs := observer.New(zap.ErrorLevel)
	client := newTestEmbeddingClient(t, server.URL, zap.New(core))

	got, err := client.GenerateEmbeddings(context.Background(), []string{"hello"})

	assert.Nil(t, got)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not valid")
	assert.Equal(t, 1, logs.FilterMessage("embedding request failed").Len())
}

func TestEmbeddingClient_GenerateEmbeddings_Cancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer server.Close()

	core, logs := observer.New(zap.DebugLevel)
	client := newTestEmbeddingClient(t, server.URL, zap.New(core))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := client.GenerateEmbeddings(ctx, []string{"hello"})

	require.Error(t, err)
	assert.Less(t, time.Since(start), 4*time.Second)

	// caller cancellation is not a backend failure
	assert.Zero(t, logs.FilterLevelExact(zap.ErrorLevel).Len())
	cancelled := logs.FilterMessage("embedding request cancelled").All()
	require.Len(t, cancelled, 1)
	assert.Equal(t, zap.DebugLevel, cancelled[0].Level)
}

func TestNewEmbeddingClient_Validation(t *testing.T) {
	_, err := NewEmbeddingClient(context.Background(), EmbeddingClientConfig{ModelID: "m"})
	assert.ErrorIs(t, err, api.ErrInvalidArgument)

	_, err = NewEmbeddingClient(context.Background(), EmbeddingClientConfig{APIKey: "k"})
	assert.ErrorIs(t, err, api.ErrInvalidArgument)
}

func TestEmbeddingClient_EmbedConfig(t *testing.T) {
	c := newEmbeddingClient(nil, EmbeddingClientConfig{ModelID: "m", Dimensions: 64, TaskType: "RETRIEVAL_QUERY"})

	cfg := c.embedConfig()
	require.NotNil(t, cfg.OutputDimensionality)
	assert.EqualValues(t, 64, *cfg.OutputDimensionality)
	assert.Equal(t, "RETRIEVAL_QUERY", cfg.TaskType)

	c = newEmbeddingClient(nil, EmbeddingClientConfig{ModelID: "m"})
	assert.Nil(t, c.embedConfig().OutputDimensionality)
}
