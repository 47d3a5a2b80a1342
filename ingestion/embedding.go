package ingestion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/technelab/techne/ai"
	"github.com/technelab/techne/core"
	"github.com/technelab/techne/storage"
)

// processor is an internal interface for enriching stored chunk records.
type processor interface {
	// process enriches the chunk records identified by the given IDs.
	process(ctx context.Context, ids ...core.ID) error
}

// embeddingProcessor generates embeddings for chunk records.
type embeddingProcessor struct {
	chunkRepository storage.ChunkRepository
	embedder        ai.Embedder
	logger          *slog.Logger
}

var _ processor = (*embeddingProcessor)(nil)

// newEmbeddingProcessor creates a new embedding processor.
func newEmbeddingProcessor(chunkRepository storage.ChunkRepository, embedder ai.Embedder, logger *slog.Logger) (processor, error) {
	if chunkRepository == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if embedder == nil {
		return nil, fmt.Errorf("embedder required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &embeddingProcessor{
		chunkRepository: chunkRepository,
		embedder:        embedder,
		logger:          logger.With("processor", "embeddings"),
	}, nil
}

// process generates embeddings for the specified chunk records.
func (ep *embeddingProcessor) process(ctx context.Context, ids ...core.ID) error {
	ep.logger.Info("processing chunks for embeddings", "chunks", len(ids))

	records, err := ep.chunkRepository.GetChunks(ctx, ids...)
	if err != nil {
		ep.logger.Error("error retrieving chunk records", "err", err)
		return err
	}

	texts := make([]string, len(records))
	for i, record := range records {
		texts[i] = record.Text
	}

	ep.logger.Debug("generating embeddings for chunk records", "chunks", len(texts))
	embeddings, err := ep.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		ep.logger.Error("error generating embeddings", "err", err)
		return err
	}

	if len(embeddings) != len(records) {
		return fmt.Errorf("embedding result mismatch. expected %d, received %d", len(records), len(embeddings))
	}

	for i := range embeddings {
		records[i].Vector = embeddings[i]
	}

	_, err = ep.chunkRepository.UpdateChunks(ctx, records...)
	return err
}
