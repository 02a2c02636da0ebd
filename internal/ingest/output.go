package ingest

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/josinaldojr/rag-gemini-service/internal/rag"
)

// Record is one NDJSON line of `ingest embed` output.
type Record struct {
	ID     string    `json:"id"`
	Source string    `json:"source,omitempty"`
	Text   string    `json:"text"`
	Vector []float32 `json:"vector"`
}

// WriteRecords pairs embeddings with their chunks by id and writes one line per pair.
func WriteRecords(w io.Writer, chunks []rag.Chunk, embeddings []rag.Embedding) error {
	byID := make(map[string]rag.Chunk, len(chunks))
	for _, c := range chunks {
		byID[c.ID] = c
	}

	enc := json.NewEncoder(w)
	for _, e := range embeddings {
		c, ok := byID[e.ID]
		if !ok {
			return fmt.Errorf("embedding for unknown chunk %q", e.ID)
		}
		source, _ := c.Metadata["source"].(string)
		if err := enc.Encode(Record{ID: e.ID, Source: source, Text: c.Text, Vector: e.Vector}); err != nil {
			return err
		}
	}
	return nil
}
