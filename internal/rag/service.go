package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// ErrUpstream marks failures of the embedding or generation provider.
var ErrUpstream = errors.New("upstream provider request failed")

type Service struct {
	embedder  Embedder
	generator Generator
	log       zerolog.Logger
}

func NewService(embedder Embedder, generator Generator, log zerolog.Logger) *Service {
	return &Service{
		embedder:  embedder,
		generator: generator,
		log:       log,
	}
}

// Embed calls the provider once per document, in request order.
// The first failure aborts the request.
func (s *Service) Embed(ctx context.Context, req EmbedRequest) (*EmbedResponse, error) {
	embeddings := make([]Embedding, 0, len(req.Documents))

	for _, doc := range req.Documents {
		vec, err := s.embedder.Embed(ctx, doc.Text)
		if err != nil {
			return nil, fmt.Errorf("%w: embed document %q: %w", ErrUpstream, doc.ID, err)
		}
		embeddings = append(embeddings, Embedding{
			ID:     doc.ID,
			Vector: vec,
		})
	}

	s.log.Debug().Int("documents", len(embeddings)).Msg("embedded documents")

	return &EmbedResponse{Embeddings: embeddings}, nil
}

func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	language := resolveLanguage(req.Lang, req.Question)
	prompt := BuildPrompt(req.Question, req.Context, language)

	answer, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: generate answer: %w", ErrUpstream, err)
	}

	s.log.Debug().
		Int("context_chunks", len(req.Context)).
		Str("language", language).
		Int("answer_len", len(answer)).
		Msg("generated answer")

	return &GenerateResponse{Answer: strings.TrimSpace(answer)}, nil
}
