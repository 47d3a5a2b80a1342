package storage

import (
	"context"

	"github.com/technelab/techne/core"
)

// Repository provides common storage operations shared across repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// ChunkRepository provides operations for managing chunk records.
//
// The analytics engine only ever calls the read operations (GetAllChunks,
// FindSimilar, CountChunks); the write operations exist for the ingestion
// pipeline. Both snapshot reads are idempotent.
type ChunkRepository interface {
	Repository

	// AddChunks adds one or more chunk records to storage.
	// IDs are derived from SourceURL and ChunkIndex, so re-adding the same
	// chunk overwrites it rather than duplicating it.
	// Sets InsertedAt/UpdatedAt timestamps.
	// Returns the records with IDs and timestamps populated.
	AddChunks(ctx context.Context, records ...*core.ChunkRecord) ([]*core.ChunkRecord, error)

	// UpdateChunks updates existing chunk records.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any record doesn't exist.
	UpdateChunks(ctx context.Context, records ...*core.ChunkRecord) ([]*core.ChunkRecord, error)

	// DeleteChunks removes chunk records by their IDs.
	// Returns ErrNotFound if any record doesn't exist.
	DeleteChunks(ctx context.Context, ids ...core.ID) error

	// GetChunk retrieves a single chunk record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetChunk(ctx context.Context, id core.ID) (*core.ChunkRecord, error)

	// GetChunks retrieves multiple chunk records by their IDs.
	// Returns only the records that exist (no error for missing records).
	GetChunks(ctx context.Context, ids ...core.ID) ([]*core.ChunkRecord, error)

	// GetAllChunks returns a full snapshot of the corpus.
	// Date-range filtering happens downstream: publish dates are stored as
	// raw source strings and parsed by the trend bucketer.
	GetAllChunks(ctx context.Context) ([]*core.ChunkRecord, error)

	// GetChunksByDomain retrieves all chunks from a given source domain.
	GetChunksByDomain(ctx context.Context, domain string) ([]*core.ChunkRecord, error)

	// FindSimilar finds chunks whose embedding vectors are nearest to the
	// given vector, up to limit results ordered by ascending cosine distance.
	// Chunks without embeddings are skipped.
	FindSimilar(ctx context.Context, vector []float32, limit int) ([]*core.SimilarityMatch, error)

	// CountChunks returns the number of chunk records in storage.
	CountChunks(ctx context.Context) (int, error)
}
