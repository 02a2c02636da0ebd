package ingest

import (
	"context"
	"io/fs"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/josinaldojr/rag-gemini-service/internal/rag"
)

// Collector turns a directory tree into embeddable chunks.
type Collector struct {
	splitter *Splitter
	workers  int
	log      zerolog.Logger
}

func NewCollector(splitter *Splitter, workers int, log zerolog.Logger) *Collector {
	if workers <= 0 {
		workers = 1
	}
	return &Collector{splitter: splitter, workers: workers, log: log}
}

// Collect walks root and returns chunks in walk order.
// Files that fail to parse are logged and skipped.
func (c *Collector) Collect(ctx context.Context, root string) ([]rag.Chunk, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && IsSupported(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.log.Info().Str("root", root).Int("files", len(paths)).Msg("scanning directory")

	perFile := make([][]rag.Chunk, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			chunks, err := c.chunkFile(path)
			if err != nil {
				c.log.Warn().Err(err).Str("file", path).Msg("failed to parse file")
				return nil
			}
			perFile[i] = chunks
			c.log.Info().Str("file", filepath.Base(path)).Int("chunks", len(chunks)).Msg("ingested")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []rag.Chunk
	for _, chunks := range perFile {
		all = append(all, chunks...)
	}
	c.log.Info().Int("chunks", len(all)).Msg("total chunks generated")
	return all, nil
}

func (c *Collector) chunkFile(path string) ([]rag.Chunk, error) {
	text, err := ExtractText(path)
	if err != nil {
		return nil, err
	}
	parts, err := c.splitter.Split(text)
	if err != nil {
		return nil, err
	}

	chunks := make([]rag.Chunk, 0, len(parts))
	for i, p := range parts {
		chunks = append(chunks, rag.Chunk{
			ID:   ChunkID(path, i),
			Text: p,
			Metadata: map[string]interface{}{
				"source": path,
				"index":  i,
			},
		})
	}
	return chunks, nil
}

// ChunkID is stable for a given path and position, so re-ingesting yields the same ids.
func ChunkID(path string, index int) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+filepath.ToSlash(path)+"#"+strconv.Itoa(index))).String()
}
