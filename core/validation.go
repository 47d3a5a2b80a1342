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


package core

import "fmt"

// ValidateChunkRecord validates a ChunkRecord according to domain rules.
//
// Validation rules:
//   - Text must not be empty
//   - SourceURL must not be empty
//   - ChunkIndex must be in [0, TotalChunks)
//
// NOT validated (populated later or intentionally loose):
//   - Vector (can be empty until the embedding processor runs)
//   - PublishDate (raw source string; unparseable dates are handled downstream)
//   - ID (derived from SourceURL and ChunkIndex on insert)
func ValidateChunkRecord(record *ChunkRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidChunkRecord)
	}

	if record.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunkRecord, ErrEmptyText)
	}

	if record.SourceURL == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunkRecord, ErrEmptySourceURL)
	}

	if record.ChunkIndex < 0 || record.ChunkIndex >= record.TotalChunks {
		return fmt.Errorf("%w: %w: index %d of %d",
			ErrInvalidChunkRecord, ErrInvalidChunkIndex, record.ChunkIndex, record.TotalChunks)
	}

	return nil
}
