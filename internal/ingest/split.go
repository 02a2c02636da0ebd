package ingest

import (
	"fmt"

	"github.com/tmc/langchaingo/textsplitter"
)

const (
	DefaultChunkSize    = 500
	DefaultChunkOverlap = 50
)

// Splitter cuts documents on paragraph, then line, then word boundaries.
type Splitter struct {
	inner textsplitter.RecursiveCharacter
}

func NewSplitter(chunkSize, chunkOverlap int) (*Splitter, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		return nil, fmt.Errorf("chunk overlap must be in [0, %d), got %d", chunkSize, chunkOverlap)
	}
	return &Splitter{
		inner: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(chunkSize),
			textsplitter.WithChunkOverlap(chunkOverlap),
		),
	}, nil
}

func (s *Splitter) Split(text string) ([]string, error) {
	if text == "" {
		return nil, nil
	}
	parts, err := s.inner.SplitText(text)
	if err != nil {
		return nil, fmt.Errorf("split text: %w", err)
	}

	out := parts[:0]
	for _, p := range parts {
		if p = sanitizeUTF8(p); p != "" {
			out = append(out, p)
		}
	}
	return out, nil
}
