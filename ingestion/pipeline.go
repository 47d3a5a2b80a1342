package ingestion

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/panjf2000/ants/v2"
	"github.com/technelab/techne/ai"
	"github.com/technelab/techne/core"
	"github.com/technelab/techne/storage"
)

// Pipeline orchestrates the ingestion of fetched documents: cleaning,
// chunking, metadata normalization, storage, and async embedding.
type Pipeline struct {
	chunkRepository storage.ChunkRepository
	embeddingPool   *ants.Pool
	embeddingProc   processor
	chunker         *Chunker
	logger          *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.embeddingPool != nil {
			p.embeddingPool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		p.embeddingPool = pool
		return nil
	}
}

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			return ErrInvalidChunkSize
		}
		p.chunker.chunkSize = size
		return nil
	}
}

// WithChunkOverlap sets the overlap between consecutive chunks.
func WithChunkOverlap(overlap int) Option {
	return func(p *Pipeline) error {
		if overlap < 0 {
			return ErrInvalidChunkOverlap
		}
		p.chunker.chunkOverlap = overlap
		return nil
	}
}

// WithMinChunkLength sets the minimum surviving chunk length.
func WithMinChunkLength(length int) Option {
	return func(p *Pipeline) error {
		p.chunker.minChunkLength = length
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	chunkRepository storage.ChunkRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Pipeline, error) {
	if chunkRepository == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		chunkRepository: chunkRepository,
		embeddingPool:   pool,
		chunker:         NewChunker(),
		logger:          slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	embeddingProc, err := newEmbeddingProcessor(chunkRepository, provider.Embedder(), p.logger)
	if err != nil {
		p.Release()
		return nil, err
	}
	p.embeddingProc = embeddingProc

	return p, nil
}

// Ingest processes documents into chunk records and stores them.
// Embedding generation runs asynchronously on the worker pool; errors there
// are logged but do not fail the ingestion. Returns the number of chunks
// stored.
func (p *Pipeline) Ingest(ctx context.Context, documents []Document) (int, error) {
	var records []*core.ChunkRecord

	for _, doc := range documents {
		domain := DomainFromURL(doc.URL)
		title := CleanTitle(doc.Title)
		publishDate := NormalizeDate(doc.PublishDate)

		chunks, indexes, total := p.chunker.ChunkContent(doc.Content)
		if len(chunks) == 0 {
			p.logger.Warn("document produced no usable chunks", "url", doc.URL)
			continue
		}

		for i, chunk := range chunks {
			records = append(records, &core.ChunkRecord{
				Text:        chunk,
				SourceURL:   doc.URL,
				Title:       title,
				Domain:      domain,
				PublishDate: publishDate,
				ChunkIndex:  indexes[i],
				TotalChunks: total,
			})
		}

		p.logger.Info("processed document", "url", doc.URL, "chunks", len(chunks))
	}

	if len(records) == 0 {
		return 0, nil
	}

	added, err := p.chunkRepository.AddChunks(ctx, records...)
	if err != nil {
		return 0, err
	}

	ids := make([]core.ID, len(added))
	for i, record := range added {
		ids[i] = record.Id
	}

	p.embeddingPool.Submit(func() {
		if err := p.embeddingProc.process(context.Background(), ids...); err != nil {
			p.logger.Error("error processing embeddings", "err", err)
		}
	})

	return len(added), nil
}

// Release releases resources including the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.embeddingPool != nil {
		p.embeddingPool.Release()
	}
}
