package trends

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/technelab/techne/core"
	"github.com/technelab/techne/storage"
	"github.com/technelab/techne/storage/badger"
)

func setupCorpus(t *testing.T, records []*core.ChunkRecord) (storage.ChunkRepository, func()) {
	t.Helper()
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)

	if len(records) > 0 {
		_, err = repo.AddChunks(context.Background(), records...)
		require.NoError(t, err)
	}

	return repo, func() { repo.Close(); backend.Close() }
}

// growthCorpus builds 1 chunk for 2020, 2 for 2021, ... n for 2019+n.
func growthCorpus(years int, text string) []*core.ChunkRecord {
	var records []*core.ChunkRecord
	for y := 0; y < years; y++ {
		for i := 0; i <= y; i++ {
			records = append(records, &core.ChunkRecord{
				Text:        text,
				SourceURL:   fmt.Sprintf("https://a.com/%d", 2020+y),
				PublishDate: fmt.Sprintf("%d-06-01", 2020+y),
				ChunkIndex:  i,
				TotalChunks: y + 1,
			})
		}
	}
	return records
}

func TestAnalyzerTrends(t *testing.T) {
	repo, cleanup := setupCorpus(t, growthCorpus(5, "digital art piece"))
	defer cleanup()

	analyzer, err := NewAnalyzer(repo)
	require.NoError(t, err)

	points, err := analyzer.Trends(context.Background(), TrendQuery{Granularity: core.GranularityYear})
	require.NoError(t, err)
	require.Len(t, points, 5)

	// Sorted by period, counts 1..5
	for i, point := range points {
		assert.Equal(t, fmt.Sprintf("%d", 2020+i), point.Period)
		assert.Equal(t, i+1, point.Count)
	}

	// One shared fit reported identically on every point
	first := points[0]
	require.NotNil(t, first.Slope)
	require.NotNil(t, first.RSquared)
	require.NotNil(t, first.Significance)
	assert.InDelta(t, 1.0, *first.Slope, 1e-9)
	assert.InDelta(t, 1.0, *first.RSquared, 1e-9)
	for _, point := range points[1:] {
		assert.Equal(t, *first.Slope, *point.Slope)
		assert.Equal(t, *first.Significance, *point.Significance)
		assert.Equal(t, *first.RSquared, *point.RSquared)
	}
}

func TestAnalyzerTrendsFewPeriods(t *testing.T) {
	records := []*core.ChunkRecord{
		chunkWithDate("https://a.com/1", "2022-01-01"),
		chunkWithDate("https://a.com/2", "2023-01-01"),
	}
	repo, cleanup := setupCorpus(t, records)
	defer cleanup()

	analyzer, err := NewAnalyzer(repo)
	require.NoError(t, err)

	points, err := analyzer.Trends(context.Background(), TrendQuery{Granularity: core.GranularityYear})
	require.NoError(t, err)
	require.Len(t, points, 2)

	for _, point := range points {
		assert.Nil(t, point.Slope)
		assert.Nil(t, point.Significance)
		assert.Nil(t, point.RSquared)
	}
}

func TestAnalyzerTrendsEmptyCorpus(t *testing.T) {
	repo, cleanup := setupCorpus(t, nil)
	defer cleanup()

	analyzer, err := NewAnalyzer(repo)
	require.NoError(t, err)

	points, err := analyzer.Trends(context.Background(), TrendQuery{Granularity: core.GranularityYear})
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestAnalyzerTrendsDateRange(t *testing.T) {
	repo, cleanup := setupCorpus(t, growthCorpus(5, "media art"))
	defer cleanup()

	analyzer, err := NewAnalyzer(repo)
	require.NoError(t, err)

	points, err := analyzer.Trends(context.Background(), TrendQuery{
		FromDate:    "2021",
		ToDate:      "2023-12-31",
		Granularity: core.GranularityYear,
	})
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, "2021", points[0].Period)
	assert.Equal(t, "2023", points[2].Period)
}

func TestAnalyzerTrendsFacetFilter(t *testing.T) {
	records := append(
		growthCorpus(3, "robotics installation"),
		&core.ChunkRecord{
			Text:        "oil painting retrospective",
			SourceURL:   "https://b.com/oil",
			PublishDate: "2020-01-01",
			ChunkIndex:  0,
			TotalChunks: 1,
		},
	)
	repo, cleanup := setupCorpus(t, records)
	defer cleanup()

	analyzer, err := NewAnalyzer(repo)
	require.NoError(t, err)

	points, err := analyzer.Trends(context.Background(), TrendQuery{
		FacetTerms:  []string{"robotics"},
		Granularity: core.GranularityYear,
	})
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, 1, points[0].Count)
}

func TestAnalyzerTechnologyTrends(t *testing.T) {
	records := append(
		growthCorpus(3, "robot arm performance"),
		growthCorpus(3, "virtual reality gallery")...,
	)
	repo, cleanup := setupCorpus(t, records)
	defer cleanup()

	analyzer, err := NewAnalyzer(repo)
	require.NoError(t, err)

	byCategory, err := analyzer.TechnologyTrends(context.Background())
	require.NoError(t, err)

	require.Contains(t, byCategory, "Robotics")
	require.Contains(t, byCategory, "AR_VR")
	// No fabrication content in this corpus
	assert.NotContains(t, byCategory, "Fabrication")

	assert.Len(t, byCategory["Robotics"], 3)
}

func TestAnalyzerCooccurrence(t *testing.T) {
	records := []*core.ChunkRecord{
		chunkWithText("https://a.com/1", "haptic sensor study"),
		chunkWithText("https://a.com/2", "haptic sensor revisited"),
	}
	repo, cleanup := setupCorpus(t, records)
	defer cleanup()

	analyzer, err := NewAnalyzer(repo)
	require.NoError(t, err)

	pairs, err := analyzer.Cooccurrence(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, 2, pairs[0].Count)
}

func TestNewAnalyzerValidation(t *testing.T) {
	_, err := NewAnalyzer(nil)
	assert.ErrorIs(t, err, ErrChunkRepositoryRequired)
}
