package reembed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/technelab/techne/core"
)

func TestChunkIterator_ForEach(t *testing.T) {
	repo, cleanup := setupTestRepository(t)
	defer cleanup()

	addTestChunks(t, repo, 7)

	iterator := NewChunkIterator(repo, 3, false)

	var batchSizes []int
	var seen int
	err := iterator.ForEach(context.Background(), func(records []*core.ChunkRecord) error {
		batchSizes = append(batchSizes, len(records))
		seen += len(records)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 7, seen)
	assert.Equal(t, []int{3, 3, 1}, batchSizes)
}

func TestChunkIterator_Empty(t *testing.T) {
	repo, cleanup := setupTestRepository(t)
	defer cleanup()

	iterator := NewChunkIterator(repo, 10, false)
	calls := 0
	err := iterator.ForEach(context.Background(), func(records []*core.ChunkRecord) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Zero(t, calls)
}

func TestChunkIterator_MissingOnly(t *testing.T) {
	repo, cleanup := setupTestRepository(t)
	defer cleanup()

	ctx := context.Background()
	added := addTestChunks(t, repo, 3)

	added[0].Vector = []float32{1.0, 0.0}
	_, err := repo.UpdateChunks(ctx, added[0])
	require.NoError(t, err)

	iterator := NewChunkIterator(repo, 10, true)

	count, err := iterator.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	err = iterator.ForEach(ctx, func(records []*core.ChunkRecord) error {
		for _, record := range records {
			assert.Empty(t, record.Vector)
		}
		return nil
	})
	require.NoError(t, err)
}

func TestChunkIterator_PropagatesCallbackError(t *testing.T) {
	repo, cleanup := setupTestRepository(t)
	defer cleanup()

	addTestChunks(t, repo, 5)

	iterator := NewChunkIterator(repo, 2, false)
	calls := 0
	err := iterator.ForEach(context.Background(), func(records []*core.ChunkRecord) error {
		calls++
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 1, calls, "iteration stops on first error")
}

func TestChunkIterator_DefaultBatchSize(t *testing.T) {
	repo, cleanup := setupTestRepository(t)
	defer cleanup()

	iterator := NewChunkIterator(repo, 0, false)
	assert.Equal(t, DefaultBatchSize, iterator.batchSize)
}
