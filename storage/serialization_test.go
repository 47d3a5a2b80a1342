package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/technelab/techne/core"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDForChunk("https://example.com/a", 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshalUnmarshalChunkRecord(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name   string
		record *core.ChunkRecord
	}{
		{
			name: "minimal record",
			record: &core.ChunkRecord{
				Id:          core.ID(1),
				Text:        "Projection mapping at the biennale",
				SourceURL:   "https://example.com/biennale",
				ChunkIndex:  0,
				TotalChunks: 1,
				InsertedAt:  now,
				UpdatedAt:   now,
			},
		},
		{
			name: "record with full metadata and vector",
			record: &core.ChunkRecord{
				Id:          core.IDForChunk("https://example.com/ai-art", 2),
				Text:        "Neural networks generating abstract landscapes",
				SourceURL:   "https://example.com/ai-art",
				Title:       "AI and Abstract Art",
				Domain:      "example.com",
				PublishDate: "2023-11-05",
				ChunkIndex:  2,
				TotalChunks: 5,
				Vector:      []float32{0.25, -0.5, 0.125, 1.0},
				InsertedAt:  now,
				UpdatedAt:   now.Add(time.Hour),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalChunkRecord(tt.record)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalChunkRecord(data)
			require.NoError(t, err)
			assert.Equal(t, tt.record.Id, decoded.Id)
			assert.Equal(t, tt.record.Text, decoded.Text)
			assert.Equal(t, tt.record.SourceURL, decoded.SourceURL)
			assert.Equal(t, tt.record.Title, decoded.Title)
			assert.Equal(t, tt.record.Domain, decoded.Domain)
			assert.Equal(t, tt.record.PublishDate, decoded.PublishDate)
			assert.Equal(t, tt.record.ChunkIndex, decoded.ChunkIndex)
			assert.Equal(t, tt.record.TotalChunks, decoded.TotalChunks)
			assert.Equal(t, tt.record.Vector, decoded.Vector)
			assert.True(t, tt.record.InsertedAt.Equal(decoded.InsertedAt))
			assert.True(t, tt.record.UpdatedAt.Equal(decoded.UpdatedAt))
		})
	}
}

func TestUnmarshalChunkRecord_Truncated(t *testing.T) {
	record := &core.ChunkRecord{
		Id:          core.ID(7),
		Text:        "truncate me",
		SourceURL:   "https://example.com/t",
		ChunkIndex:  0,
		TotalChunks: 1,
	}
	data := MarshalChunkRecord(record)

	_, err := UnmarshalChunkRecord(data[:len(data)/2])
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
