package api

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/technelab/techne/search"
)

const (
	defaultSearchResults = 10
	maxSearchResults     = 100
)

// SearchHandler serves hybrid retrieval queries.
type SearchHandler struct {
	searcher *search.Searcher
}

type searchResult struct {
	Content        string  `json:"content"`
	Title          string  `json:"title"`
	URL            string  `json:"url"`
	Domain         string  `json:"domain"`
	PublishDate    string  `json:"publish_date,omitempty"`
	RelevanceScore float64 `json:"relevance_score"`
	VectorScore    float64 `json:"vector_score"`
	KeywordScore   float64 `json:"keyword_score"`
	ChunkIndex     int     `json:"chunk_index"`
	TotalChunks    int     `json:"total_chunks"`
}

type searchResponse struct {
	Query        string         `json:"query"`
	Results      []searchResult `json:"results"`
	TotalResults int            `json:"total_results"`
}

// Search runs a hybrid search over the corpus.
// Query parameters: q (required), n_results, vector_weight, keyword_weight.
func (h *SearchHandler) Search(c fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return jsonError(c, fiber.StatusBadRequest, "query parameter q is required")
	}

	nResults := defaultSearchResults
	if raw := c.Query("n_results"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxSearchResults {
			return jsonError(c, fiber.StatusBadRequest, "n_results must be an integer between 1 and 100")
		}
		nResults = parsed
	}

	weights, err := parseWeights(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	results, err := h.searcher.SearchWeighted(c.Context(), query, nResults, weights, nil)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "search failed")
	}

	out := make([]searchResult, len(results))
	for i, result := range results {
		out[i] = searchResult{
			Content:        result.Record.Text,
			Title:          result.Record.Title,
			URL:            result.Record.SourceURL,
			Domain:         result.Record.Domain,
			PublishDate:    result.Record.PublishDate,
			RelevanceScore: result.CombinedScore,
			VectorScore:    result.VectorScore,
			KeywordScore:   result.KeywordScore,
			ChunkIndex:     result.Record.ChunkIndex,
			TotalChunks:    result.Record.TotalChunks,
		}
	}

	return jsonSuccess(c, searchResponse{
		Query:        query,
		Results:      out,
		TotalResults: len(out),
	})
}

// parseWeights reads optional fusion weights from the query string, falling
// back to the standard 70/30 split.
func parseWeights(c fiber.Ctx) (search.Weights, error) {
	weights := search.DefaultWeights()

	if raw := c.Query("vector_weight"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			return weights, fiber.NewError(fiber.StatusBadRequest, "vector_weight must be a non-negative number")
		}
		weights.Vector = parsed
	}

	if raw := c.Query("keyword_weight"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			return weights, fiber.NewError(fiber.StatusBadRequest, "keyword_weight must be a non-negative number")
		}
		weights.Keyword = parsed
	}

	return weights, nil
}
