package rag

// Chunk is one piece of text sent by the caller for embedding.
// Metadata travels with the chunk but is never forwarded upstream.
type Chunk struct {
	ID       string                 `json:"id" validate:"required"`
	Text     string                 `json:"text" validate:"required,notblank"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// EmbedRequest is the payload of POST /api/embed; an empty documents list is valid.
type EmbedRequest struct {
	Documents []Chunk `json:"documents" validate:"required,dive"`
}

// Embedding pairs a chunk id with the vector the provider returned for it.
type Embedding struct {
	ID     string    `json:"id"`
	Vector []float32 `json:"vector"`
}

type EmbedResponse struct {
	Embeddings []Embedding `json:"embeddings"`
}

// GenerateRequest is the payload of POST /api/generate: the question plus
// the top-K context chunks the caller already retrieved.
type GenerateRequest struct {
	Question string   `json:"question" validate:"required,notblank"`
	Context  []string `json:"context" validate:"required"`
	// Lang is optional: empty keeps the default prompt, "auto" detects the
	// question's language, anything else is used as the language name.
	Lang string `json:"lang,omitempty" validate:"omitempty,max=64"`
}

type GenerateResponse struct {
	Answer string `json:"answer"`
}
