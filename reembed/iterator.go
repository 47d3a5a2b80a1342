// Copyright 2025 Technelab
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package reembed

import (
	"context"

	"github.com/technelab/techne/core"
	"github.com/technelab/techne/storage"
)

const (
	// DefaultBatchSize is the default number of chunks to process in each batch
	DefaultBatchSize = 100
)

// ChunkIterator walks all chunk records in a corpus in batches.
type ChunkIterator struct {
	repo        storage.ChunkRepository
	batchSize   int
	missingOnly bool
}

// NewChunkIterator creates a chunk iterator. When missingOnly is true, only
// chunks without an embedding vector are visited.
func NewChunkIterator(repo storage.ChunkRepository, batchSize int, missingOnly bool) *ChunkIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &ChunkIterator{
		repo:        repo,
		batchSize:   batchSize,
		missingOnly: missingOnly,
	}
}

// Count returns the number of chunks the iterator will visit.
func (it *ChunkIterator) Count(ctx context.Context) (int, error) {
	records, err := it.collect(ctx)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// ForEach iterates over the selected chunks, calling fn for each batch.
// Iteration stops on the first error from fn. Context cancellation is
// checked between batches.
func (it *ChunkIterator) ForEach(ctx context.Context, fn func([]*core.ChunkRecord) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	records, err := it.collect(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	for i := 0; i < len(records); i += it.batchSize {
		end := i + it.batchSize
		if end > len(records) {
			end = len(records)
		}

		if err := fn(records[i:end]); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	return nil
}

func (it *ChunkIterator) collect(ctx context.Context) ([]*core.ChunkRecord, error) {
	records, err := it.repo.GetAllChunks(ctx)
	if err != nil {
		return nil, err
	}
	if !it.missingOnly {
		return records, nil
	}

	missing := make([]*core.ChunkRecord, 0, len(records))
	for _, record := range records {
		if len(record.Vector) == 0 {
			missing = append(missing, record)
		}
	}
	return missing, nil
}
