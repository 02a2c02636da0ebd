package ingest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josinaldojr/rag-gemini-service/internal/rag"
)

func TestClient_Embed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embed", r.URL.Path)
		var req rag.EmbedRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		out := rag.EmbedResponse{Embeddings: []rag.Embedding{}}
		for _, d := range req.Documents {
			out.Embeddings = append(out.Embeddings, rag.Embedding{ID: d.ID, Vector: []float32{1, 2}})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	resp, err := c.Embed(context.Background(), []rag.Chunk{{ID: "x", Text: "hello"}})
	require.NoError(t, err)
	require.Len(t, resp.Embeddings, 1)
	assert.Equal(t, "x", resp.Embeddings[0].ID)
	assert.Equal(t, []float32{1, 2}, resp.Embeddings[0].Vector)
}

func TestClient_Embed_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal Server Error","code":500,"message":"upstream provider request failed"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 5*time.Second).Embed(context.Background(), []rag.Chunk{{ID: "x", Text: "hello"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
	assert.Contains(t, err.Error(), "upstream provider request failed")
}

func TestClient_Embed_CountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"embeddings":[]}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 5*time.Second).Embed(context.Background(), []rag.Chunk{{ID: "x", Text: "hello"}})
	require.Error(t, err)
}

func TestClient_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		var req rag.GenerateRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "why?", req.Question)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"answer":"because"}`))
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL, 5*time.Second).Generate(context.Background(), rag.GenerateRequest{
		Question: "why?",
		Context:  []string{"ctx"},
	})
	require.NoError(t, err)
	assert.Equal(t, "because", resp.Answer)
}
