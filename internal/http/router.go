package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

type RouterOptions struct {
	AllowedOrigins []string
}

// NewRouter wires the routes and wraps them in logging, request-id, recovery and CORS.
// CORS sits outside mux so preflights reach it for POST-only routes.
func NewRouter(h *Handler, log zerolog.Logger, opts RouterOptions) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", h.Root).Methods(http.MethodGet)
	r.HandleFunc("/api/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/api/embed", h.Embed).Methods(http.MethodPost)
	r.HandleFunc("/api/generate", h.Generate).Methods(http.MethodPost)

	var handler http.Handler = r
	handler = corsMiddleware(opts.AllowedOrigins)(handler)
	handler = recoverMiddleware(handler)
	handler = hlog.AccessHandler(accessLog)(handler)
	handler = requestIDMiddleware(handler)
	handler = hlog.NewHandler(log)(handler)
	return handler
}

// NewServer leaves WriteTimeout above the per-request upstream timeout.
func NewServer(addr string, handler http.Handler, requestTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      requestTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
