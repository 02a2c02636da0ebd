package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/josinaldojr/rag-gemini-service/internal/rag"
)

// Client calls the embed/generate API the way the orchestrating caller does.
type Client struct {
	http *resty.Client
}

type apiError struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	return &Client{http: c}
}

func (c *Client) Embed(ctx context.Context, chunks []rag.Chunk) (*rag.EmbedResponse, error) {
	var out rag.EmbedResponse
	if err := c.post(ctx, "/api/embed", rag.EmbedRequest{Documents: chunks}, &out); err != nil {
		return nil, err
	}
	if len(out.Embeddings) != len(chunks) {
		return nil, fmt.Errorf("embed: got %d embeddings for %d chunks", len(out.Embeddings), len(chunks))
	}
	return &out, nil
}

func (c *Client) Generate(ctx context.Context, req rag.GenerateRequest) (*rag.GenerateResponse, error) {
	var out rag.GenerateResponse
	if err := c.post(ctx, "/api/generate", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) post(ctx context.Context, path string, body, result interface{}) error {
	var apiErr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(result).
		SetError(&apiErr).
		Post(path)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	if resp.IsError() {
		msg := apiErr.Message
		if msg == "" {
			msg = resp.String()
		}
		return fmt.Errorf("POST %s: status %d: %s", path, resp.StatusCode(), msg)
	}
	return nil
}
