package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/technelab/techne/ai/mock"
	"github.com/technelab/techne/core"
	"github.com/technelab/techne/search"
	"github.com/technelab/techne/storage"
	"github.com/technelab/techne/storage/badger"
	"github.com/technelab/techne/trends"
)

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  string          `json:"error"`
}

func setupServer(t *testing.T) (*Server, storage.ChunkRepository) {
	t.Helper()

	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close(); backend.Close() })

	provider := mock.NewMockProvider()
	searcher, err := search.NewSearcher(repo, provider)
	require.NoError(t, err)
	analyzer, err := trends.NewAnalyzer(repo)
	require.NoError(t, err)

	server, err := New(repo, searcher, analyzer, Config{})
	require.NoError(t, err)
	return server, repo
}

// seedCorpus stores a small embedded corpus spanning five years.
func seedCorpus(t *testing.T, repo storage.ChunkRepository) {
	t.Helper()

	embedder := mock.NewMockEmbedder()
	ctx := context.Background()

	texts := []string{
		"Projection mapping transformed the museum facade into moving light.",
		"A robotics collective staged haptic sensor performances downtown.",
		"Generative systems composed the haptic sensor score in real time.",
		"Virtual reality galleries opened to remote visitors this spring.",
		"Machine learning models curated the archive of kinetic sculpture.",
	}

	records := make([]*core.ChunkRecord, len(texts))
	for i, text := range texts {
		vector, err := embedder.EmbedText(ctx, text)
		require.NoError(t, err)
		records[i] = &core.ChunkRecord{
			Text:        text,
			SourceURL:   fmt.Sprintf("https://example.com/articles/%d", i),
			Title:       fmt.Sprintf("Article %d", i),
			Domain:      "example.com",
			PublishDate: fmt.Sprintf("%d-06-01", 2020+i),
			ChunkIndex:  0,
			TotalChunks: 1,
			Vector:      vector,
		}
	}

	_, err := repo.AddChunks(ctx, records...)
	require.NoError(t, err)
}

func getJSON(t *testing.T, server *Server, url string) (int, envelope) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)

	resp, err := server.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(body, &env), "body: %s", body)
	return resp.StatusCode, env
}

func TestNewServerValidation(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() { repo.Close(); backend.Close() }()

	provider := mock.NewMockProvider()
	searcher, err := search.NewSearcher(repo, provider)
	require.NoError(t, err)
	analyzer, err := trends.NewAnalyzer(repo)
	require.NoError(t, err)

	_, err = New(nil, searcher, analyzer, Config{})
	assert.ErrorIs(t, err, ErrChunkRepositoryRequired)

	_, err = New(repo, nil, analyzer, Config{})
	assert.ErrorIs(t, err, ErrSearcherRequired)

	_, err = New(repo, searcher, nil, Config{})
	assert.ErrorIs(t, err, ErrAnalyzerRequired)
}

func TestSearchEndpoint(t *testing.T) {
	server, repo := setupServer(t)
	seedCorpus(t, repo)

	t.Run("returns fused results", func(t *testing.T) {
		status, env := getJSON(t, server, "/api/search?q=projection+mapping")
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, "ok", env.Status)

		var data searchResponse
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, "projection mapping", data.Query)
		require.NotEmpty(t, data.Results)
		assert.Equal(t, len(data.Results), data.TotalResults)

		top := data.Results[0]
		assert.Contains(t, top.Content, "Projection mapping")
		assert.Equal(t, "example.com", top.Domain)
		assert.Greater(t, top.RelevanceScore, 0.0)
	})

	t.Run("missing query", func(t *testing.T) {
		status, env := getJSON(t, server, "/api/search")
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "error", env.Status)
	})

	t.Run("invalid n_results", func(t *testing.T) {
		status, _ := getJSON(t, server, "/api/search?q=art&n_results=0")
		assert.Equal(t, http.StatusBadRequest, status)

		status, _ = getJSON(t, server, "/api/search?q=art&n_results=abc")
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("respects n_results", func(t *testing.T) {
		status, env := getJSON(t, server, "/api/search?q=the&n_results=2")
		require.Equal(t, http.StatusOK, status)

		var data searchResponse
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.LessOrEqual(t, data.TotalResults, 2)
	})

	t.Run("invalid weights", func(t *testing.T) {
		status, _ := getJSON(t, server, "/api/search?q=art&vector_weight=-1")
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestTrendsEndpoint(t *testing.T) {
	server, repo := setupServer(t)
	seedCorpus(t, repo)

	t.Run("yearly trends with cooccurrence", func(t *testing.T) {
		status, env := getJSON(t, server, "/api/trends")
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, "ok", env.Status)

		var data trendsResponse
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, "all", data.Facet)
		require.Len(t, data.Trends, 5)
		assert.Equal(t, "2020", data.Trends[0].TimePeriod)
		assert.Equal(t, 1, data.Trends[0].Count)

		// haptic + sensor co-occur in two chunks
		require.NotEmpty(t, data.Cooccurrence)
		assert.Equal(t, "haptic", data.Cooccurrence[0].Tag1)
		assert.Equal(t, "sensor", data.Cooccurrence[0].Tag2)
		assert.Equal(t, 2, data.Cooccurrence[0].Count)
	})

	t.Run("facet filter", func(t *testing.T) {
		status, env := getJSON(t, server, "/api/trends?facet=robotics")
		require.Equal(t, http.StatusOK, status)

		var data trendsResponse
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, "robotics", data.Facet)
		require.Len(t, data.Trends, 1)
		assert.Equal(t, "2021", data.Trends[0].TimePeriod)
	})

	t.Run("date range", func(t *testing.T) {
		status, env := getJSON(t, server, "/api/trends?from_date=2022-01-01&to_date=2023-12-31")
		require.Equal(t, http.StatusOK, status)

		var data trendsResponse
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Len(t, data.Trends, 2)
	})

	t.Run("invalid granularity", func(t *testing.T) {
		status, _ := getJSON(t, server, "/api/trends?granularity=decade")
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("invalid min_cooccurrence", func(t *testing.T) {
		status, _ := getJSON(t, server, "/api/trends?min_cooccurrence=0")
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestTechnologyEndpoint(t *testing.T) {
	server, repo := setupServer(t)
	seedCorpus(t, repo)

	status, env := getJSON(t, server, "/api/trends/technology")
	require.Equal(t, http.StatusOK, status)

	var data map[string][]trendData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Contains(t, data, "Robotics")
	assert.Contains(t, data, "AI")
	assert.NotContains(t, data, "Fabrication")
}

func TestCooccurrenceEndpoint(t *testing.T) {
	server, repo := setupServer(t)
	seedCorpus(t, repo)

	t.Run("default min count", func(t *testing.T) {
		status, env := getJSON(t, server, "/api/cooccurrence")
		require.Equal(t, http.StatusOK, status)

		var data []cooccurrenceData
		require.NoError(t, json.Unmarshal(env.Data, &data))
		require.NotEmpty(t, data)
	})

	t.Run("min count filters pairs", func(t *testing.T) {
		status, env := getJSON(t, server, "/api/cooccurrence?min_count=3")
		require.Equal(t, http.StatusOK, status)

		var data []cooccurrenceData
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Empty(t, data)
	})

	t.Run("invalid min count", func(t *testing.T) {
		status, _ := getJSON(t, server, "/api/cooccurrence?min_count=-1")
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestStatsEndpoint(t *testing.T) {
	server, repo := setupServer(t)
	seedCorpus(t, repo)

	status, env := getJSON(t, server, "/api/stats")
	require.Equal(t, http.StatusOK, status)

	var data statsResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 5, data.TotalChunks)
	assert.Equal(t, 5, data.TotalDocuments)
	assert.Equal(t, 1, data.TotalDomains)
	assert.Equal(t, 5, data.EmbeddedChunks)
}

func TestHealthzEndpoint(t *testing.T) {
	server, _ := setupServer(t)

	req, err := http.NewRequest(http.MethodGet, "/healthz", nil)
	require.NoError(t, err)
	resp, err := server.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Status   string `json:"status"`
		Database bool   `json:"database"`
		Version  string `json:"version"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body.Status)
	assert.True(t, body.Database)
	assert.Equal(t, Version, body.Version)
}

func TestMetricsEndpoint(t *testing.T) {
	server, _ := setupServer(t)

	// Generate at least one measured request first
	req, err := http.NewRequest(http.MethodGet, "/healthz", nil)
	require.NoError(t, err)
	resp, err := server.App().Test(req)
	require.NoError(t, err)
	resp.Body.Close()

	req, err = http.NewRequest(http.MethodGet, "/metrics", nil)
	require.NoError(t, err)
	resp, err = server.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "techne_http_requests_total")
}
