package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/josinaldojr/rag-gemini-service/internal/ingest"
	"github.com/josinaldojr/rag-gemini-service/internal/logger"
	"github.com/josinaldojr/rag-gemini-service/internal/rag"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

type rootFlags struct {
	url      string
	timeout  time.Duration
	logLevel string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:          "ingest",
		Short:        "Chunk local documents and call the embed/generate API",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&flags.url, "url", envOr("RAG_SERVICE_URL", "http://localhost:8000"), "base URL of the RAG service")
	root.PersistentFlags().DurationVar(&flags.timeout, "timeout", 2*time.Minute, "per-request timeout")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "log level")

	root.AddCommand(newEmbedCmd(flags), newAskCmd(flags))
	return root
}

func newEmbedCmd(flags *rootFlags) *cobra.Command {
	var (
		path         string
		out          string
		chunkSize    int
		chunkOverlap int
		perRequest   int
		workers      int
	)

	cmd := &cobra.Command{
		Use:   "embed",
		Short: "Embed every supported file under --path and write NDJSON records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := newLogger(flags)

			splitter, err := ingest.NewSplitter(chunkSize, chunkOverlap)
			if err != nil {
				return err
			}
			if perRequest <= 0 {
				return fmt.Errorf("--docs-per-request must be positive")
			}

			chunks, err := ingest.NewCollector(splitter, workers, log).Collect(cmd.Context(), path)
			if err != nil {
				return fmt.Errorf("collect %s: %w", path, err)
			}

			w, closeFn, err := openOutput(out)
			if err != nil {
				return err
			}
			defer closeFn()

			client := ingest.NewClient(flags.url, flags.timeout)
			return embedAll(cmd.Context(), client, chunks, perRequest, w, log)
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "directory to scan")
	cmd.Flags().StringVar(&out, "out", "", "output file (default stdout)")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", ingest.DefaultChunkSize, "maximum characters per chunk")
	cmd.Flags().IntVar(&chunkOverlap, "chunk-overlap", ingest.DefaultChunkOverlap, "characters shared by neighbouring chunks")
	cmd.Flags().IntVar(&perRequest, "docs-per-request", 32, "chunks sent in one /api/embed call")
	cmd.Flags().IntVar(&workers, "workers", 4, "files parsed in parallel")
	_ = cmd.MarkFlagRequired("path")

	return cmd
}

func embedAll(ctx context.Context, client *ingest.Client, chunks []rag.Chunk, perRequest int, w io.Writer, log zerolog.Logger) error {
	for start := 0; start < len(chunks); start += perRequest {
		end := min(start+perRequest, len(chunks))
		part := chunks[start:end]

		resp, err := client.Embed(ctx, part)
		if err != nil {
			return fmt.Errorf("embed chunks %d-%d: %w", start, end-1, err)
		}
		if err := ingest.WriteRecords(w, part, resp.Embeddings); err != nil {
			return err
		}
		log.Info().Int("done", end).Int("total", len(chunks)).Msg("chunks embedded")
	}
	return nil
}

func newAskCmd(flags *rootFlags) *cobra.Command {
	var (
		question string
		snippets []string
		lang     string
	)

	cmd := &cobra.Command{
		Use:   "ask",
		Short: "Ask a question grounded in the given context snippets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client := ingest.NewClient(flags.url, flags.timeout)
			if snippets == nil {
				snippets = []string{}
			}
			resp, err := client.Generate(cmd.Context(), rag.GenerateRequest{
				Question: question,
				Context:  snippets,
				Lang:     lang,
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), resp.Answer)
			return err
		},
	}

	cmd.Flags().StringVarP(&question, "question", "q", "", "question to answer")
	cmd.Flags().StringArrayVarP(&snippets, "context", "c", nil, "context snippet (repeatable)")
	cmd.Flags().StringVar(&lang, "lang", "", `answer language, or "auto" to detect`)
	_ = cmd.MarkFlagRequired("question")

	return cmd
}

func newLogger(flags *rootFlags) zerolog.Logger {
	// stdout may carry NDJSON, so logs go to stderr.
	return logger.NewWithWriter(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}, "ingest", flags.logLevel)
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		bw := bufio.NewWriter(os.Stdout)
		return bw, func() { _ = bw.Flush() }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}
	bw := bufio.NewWriter(f)
	return bw, func() {
		_ = bw.Flush()
		_ = f.Close()
	}, nil
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
