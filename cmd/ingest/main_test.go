package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josinaldojr/rag-gemini-service/internal/ingest"
	"github.com/josinaldojr/rag-gemini-service/internal/rag"
)

func TestEmbedAll_SplitsRequests(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		var req rag.EmbedRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.LessOrEqual(t, len(req.Documents), 2)

		out := rag.EmbedResponse{Embeddings: []rag.Embedding{}}
		for _, d := range req.Documents {
			out.Embeddings = append(out.Embeddings, rag.Embedding{ID: d.ID, Vector: []float32{1}})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	}))
	defer srv.Close()

	chunks := []rag.Chunk{
		{ID: "a", Text: "1"},
		{ID: "b", Text: "2"},
		{ID: "c", Text: "3"},
	}

	var buf bytes.Buffer
	err := embedAll(context.Background(), ingest.NewClient(srv.URL, 5*time.Second), chunks, 2, &buf, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Len(t, strings.Split(strings.TrimSpace(buf.String()), "\n"), 3)
}

func TestAskCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rag.GenerateRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"snippet one", "snippet two"}, req.Context)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"answer":"grounded answer"}`))
	}))
	defer srv.Close()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"ask", "--url", srv.URL, "-q", "what?", "-c", "snippet one", "-c", "snippet two"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "grounded answer\n", out.String())
}
