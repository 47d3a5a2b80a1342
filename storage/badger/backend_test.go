package badger

import (
	"context"
	"math"
	"testing"

	"github.com/technelab/techne/core"
)

func TestFindSimilarOrdering(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	records := []*core.ChunkRecord{
		{Text: "exact match", SourceURL: "https://a.com/1", ChunkIndex: 0, TotalChunks: 1, Vector: []float32{1, 0, 0}},
		{Text: "orthogonal", SourceURL: "https://a.com/2", ChunkIndex: 0, TotalChunks: 1, Vector: []float32{0, 1, 0}},
		{Text: "close match", SourceURL: "https://a.com/3", ChunkIndex: 0, TotalChunks: 1, Vector: []float32{0.9, 0.1, 0}},
		{Text: "no embedding yet", SourceURL: "https://a.com/4", ChunkIndex: 0, TotalChunks: 1},
	}
	if _, err := repo.AddChunks(ctx, records...); err != nil {
		t.Fatalf("Failed to add chunks: %v", err)
	}

	matches, err := repo.FindSimilar(ctx, []float32{1, 0, 0}, 10)
	if err != nil {
		t.Fatalf("FindSimilar failed: %v", err)
	}

	// Chunks without vectors are skipped
	if len(matches) != 3 {
		t.Fatalf("Expected 3 matches, got %d", len(matches))
	}

	if matches[0].Record.Text != "exact match" {
		t.Fatalf("Expected exact match first, got %q", matches[0].Record.Text)
	}
	if matches[0].Distance > 1e-9 {
		t.Fatalf("Expected zero distance for exact match, got %f", matches[0].Distance)
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Distance < matches[i-1].Distance {
			t.Fatal("Expected matches ordered by ascending distance")
		}
	}
}

func TestFindSimilarLimit(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	for i := 0; i < 5; i++ {
		record := &core.ChunkRecord{
			Text:        "chunk",
			SourceURL:   "https://a.com/many",
			ChunkIndex:  i,
			TotalChunks: 5,
			Vector:      []float32{float32(i + 1), 1, 0},
		}
		if _, err := repo.AddChunks(ctx, record); err != nil {
			t.Fatalf("Failed to add chunk: %v", err)
		}
	}

	matches, err := repo.FindSimilar(ctx, []float32{1, 0, 0}, 2)
	if err != nil {
		t.Fatalf("FindSimilar failed: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matches))
	}
}

func TestCosineDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, 2},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 1},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cosineDistance(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("cosineDistance(%v, %v) = %f, want %f", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
