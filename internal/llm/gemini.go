package llm

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/josinaldojr/rag-gemini-service/internal/rag"
)

type Options struct {
	APIKey          string
	EmbeddingModel  string
	GenerationModel string
	// EmbedDimensions requests a reduced output size; zero keeps the model default.
	EmbedDimensions int
	BaseURL         string
}

type GeminiClient struct {
	client          *genai.Client
	embeddingModel  string
	generationModel string
	embedDim        int
	log             zerolog.Logger
}

func NewGeminiClient(ctx context.Context, opts Options, log zerolog.Logger) (*GeminiClient, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY or GOOGLE_API_KEY")
	}
	if opts.EmbeddingModel == "" || opts.GenerationModel == "" {
		return nil, fmt.Errorf("embedding and generation models are required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	c, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiClient{
		client:          c,
		embeddingModel:  opts.EmbeddingModel,
		generationModel: opts.GenerationModel,
		embedDim:        opts.EmbedDimensions,
		log:             log,
	}, nil
}

func (g *GeminiClient) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty text for embedding")
	}

	var cfg *genai.EmbedContentConfig
	if g.embedDim > 0 {
		cfg = &genai.EmbedContentConfig{
			OutputDimensionality: genai.Ptr(int32(g.embedDim)),
		}
	}

	resp, err := g.client.Models.EmbedContent(ctx, g.embeddingModel, genai.Text(text), cfg)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "gemini embed error")
	}

	if resp == nil || len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil {
		return nil, fmt.Errorf("no embeddings returned")
	}

	values := resp.Embeddings[0].Values
	if g.embedDim > 0 && len(values) != g.embedDim {
		return nil, fmt.Errorf("unexpected embedding size %d (expected %d)", len(values), g.embedDim)
	}

	out := make([]float32, len(values))
	for i, v := range values {
		out[i] = float32(v)
	}
	return out, nil
}

func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.generationModel, genai.Text(prompt), nil)
	if err != nil {
		return "", pkgerrors.Wrap(err, "gemini generateContent error")
	}

	if resp == nil {
		return "", fmt.Errorf("empty response from gemini")
	}

	txt := strings.TrimSpace(resp.Text())
	if txt == "" {
		return "", fmt.Errorf("model returned empty text")
	}

	g.log.Debug().
		Str("model", g.generationModel).
		Int("prompt_len", len(prompt)).
		Msg("gemini answer received")

	return txt, nil
}

var _ rag.Embedder = (*GeminiClient)(nil)
var _ rag.Generator = (*GeminiClient)(nil)
