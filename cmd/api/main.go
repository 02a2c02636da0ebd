package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/josinaldojr/rag-gemini-service/internal/config"
	apphttp "github.com/josinaldojr/rag-gemini-service/internal/http"
	"github.com/josinaldojr/rag-gemini-service/internal/llm"
	"github.com/josinaldojr/rag-gemini-service/internal/logger"
	"github.com/josinaldojr/rag-gemini-service/internal/rag"
)

func main() {
	if err := run(); err != nil {
		log.Error().Err(err).Msg("rag-service exited with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logg := logger.New("rag-service", cfg.LogLevel, cfg.Environment == config.EnvDevelopment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	geminiClient, err := llm.NewGeminiClient(ctx, llm.Options{
		APIKey:          cfg.APIKey(),
		EmbeddingModel:  cfg.EmbeddingModel,
		GenerationModel: cfg.GenerationModel,
		EmbedDimensions: cfg.EmbedDimensions,
		BaseURL:         cfg.GenAIBaseURL,
	}, logg)
	if err != nil {
		logg.Error().Err(err).Msg("failed to init Gemini client")
		return err
	}

	ragService := rag.NewService(geminiClient, geminiClient, logg)

	h := apphttp.NewHandler(ragService, cfg.RequestTimeout, cfg.MaxBodyBytes)
	router := apphttp.NewRouter(h, logg, apphttp.RouterOptions{AllowedOrigins: cfg.CORSAllowedOrigins})
	server := apphttp.NewServer(cfg.Addr(), router, cfg.RequestTimeout)

	errCh := make(chan error, 1)
	go func() {
		logg.Info().
			Str("addr", cfg.Addr()).
			Str("embedding_model", cfg.EmbeddingModel).
			Str("generation_model", cfg.GenerationModel).
			Msg("API listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logg.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error().Stack().Err(err).Msg("server forced to shutdown")
			return err
		}
		logg.Info().Msg("server exited")
		return nil
	case err, ok := <-errCh:
		if !ok {
			return nil
		}
		logg.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}
