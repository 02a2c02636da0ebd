package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/hlog"

	"github.com/josinaldojr/rag-gemini-service/internal/rag"
)

// RAGService is the part of rag.Service the handlers depend on.
type RAGService interface {
	Embed(ctx context.Context, req rag.EmbedRequest) (*rag.EmbedResponse, error)
	Generate(ctx context.Context, req rag.GenerateRequest) (*rag.GenerateResponse, error)
}

type Handler struct {
	ragService   RAGService
	timeout      time.Duration
	maxBodyBytes int64
}

func NewHandler(ragService RAGService, timeout time.Duration, maxBodyBytes int64) *Handler {
	return &Handler{
		ragService:   ragService,
		timeout:      timeout,
		maxBodyBytes: maxBodyBytes,
	}
}

// Root is the liveness probe the original deployment exposed at GET /.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, *hlog.FromRequest(r), http.StatusOK, map[string]string{"working, status": "ok"})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, *hlog.FromRequest(r), http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) Embed(w http.ResponseWriter, r *http.Request) {
	var req rag.EmbedRequest
	if !h.decode(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	resp, err := h.ragService.Embed(ctx, req)
	if err != nil {
		h.upstreamFailure(w, r, err)
		return
	}

	writeJSON(w, *hlog.FromRequest(r), http.StatusOK, resp)
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req rag.GenerateRequest
	if !h.decode(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	resp, err := h.ragService.Generate(ctx, req)
	if err != nil {
		h.upstreamFailure(w, r, err)
		return
	}

	writeJSON(w, *hlog.FromRequest(r), http.StatusOK, resp)
}

// decode reads and validates the body; it writes the error reply itself and returns false on failure.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	log := *hlog.FromRequest(r)

	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, log, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, log, http.StatusBadRequest, "invalid json body")
		return false
	}

	if err := validateRequest(dst); err != nil {
		var verr *validationError
		if errors.As(err, &verr) {
			writeJSON(w, log, http.StatusUnprocessableEntity, ErrorResponse{
				Error:   http.StatusText(http.StatusUnprocessableEntity),
				Code:    http.StatusUnprocessableEntity,
				Message: "request validation failed",
				Fields:  verr.fields,
			})
			return false
		}
		log.Error().Err(err).Msg("validator failure")
		writeError(w, log, http.StatusBadRequest, "invalid request")
		return false
	}
	return true
}

// upstreamFailure logs the provider error and reports a generic 500.
func (h *Handler) upstreamFailure(w http.ResponseWriter, r *http.Request, err error) {
	log := *hlog.FromRequest(r)
	log.Error().Stack().Err(err).
		Bool("upstream", errors.Is(err, rag.ErrUpstream)).
		Str("path", r.URL.Path).
		Msg("request failed")
	writeError(w, log, http.StatusInternalServerError, rag.ErrUpstream.Error())
}
