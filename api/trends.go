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


package api

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/technelab/techne/core"
	"github.com/technelab/techne/trends"
)

const defaultMinCooccurrence = 2

// TrendsHandler serves temporal trend and tag co-occurrence queries.
type TrendsHandler struct {
	analyzer *trends.Analyzer
}

type trendData struct {
	TimePeriod        string   `json:"time_period"`
	Count             int      `json:"count"`
	TrendSlope        *float64 `json:"trend_slope"`
	TrendSignificance *float64 `json:"trend_significance"`
	RSquared          *float64 `json:"r_squared"`
}

type cooccurrenceData struct {
	Tag1        string  `json:"tag1"`
	Tag2        string  `json:"tag2"`
	Count       int     `json:"count"`
	Correlation float64 `json:"correlation"`
}

type trendsResponse struct {
	Facet        string             `json:"facet"`
	Trends       []trendData        `json:"trends"`
	Cooccurrence []cooccurrenceData `json:"cooccurrence"`
}

// Trends reports the temporal trend and tag co-occurrence for a facet in one
// response. Query parameters: facet, from_date, to_date, granularity,
// min_cooccurrence.
func (h *TrendsHandler) Trends(c fiber.Ctx) error {
	facet := c.Query("facet", "all")

	granularity, ok := parseGranularity(c.Query("granularity", "year"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "granularity must be one of year, month, quarter")
	}

	minCooccurrence := defaultMinCooccurrence
	if raw := c.Query("min_cooccurrence"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return jsonError(c, fiber.StatusBadRequest, "min_cooccurrence must be a positive integer")
		}
		minCooccurrence = parsed
	}

	query := trends.TrendQuery{
		FromDate:    c.Query("from_date"),
		ToDate:      c.Query("to_date"),
		Granularity: granularity,
	}
	if facet != "" && facet != "all" {
		query.FacetTerms = []string{facet}
	}

	points, err := h.analyzer.Trends(c.Context(), query)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "trend analysis failed")
	}

	pairs, err := h.analyzer.Cooccurrence(c.Context(), minCooccurrence)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "co-occurrence analysis failed")
	}

	return jsonSuccess(c, trendsResponse{
		Facet:        facet,
		Trends:       toTrendData(points),
		Cooccurrence: toCooccurrenceData(pairs),
	})
}

// Technology reports yearly trends per technology category.
func (h *TrendsHandler) Technology(c fiber.Ctx) error {
	byCategory, err := h.analyzer.TechnologyTrends(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "technology trend analysis failed")
	}

	out := make(map[string][]trendData, len(byCategory))
	for category, points := range byCategory {
		out[category] = toTrendData(points)
	}

	return jsonSuccess(c, out)
}

// Cooccurrence reports tag pairs co-occurring at least min_count times.
func (h *TrendsHandler) Cooccurrence(c fiber.Ctx) error {
	minCount := defaultMinCooccurrence
	if raw := c.Query("min_count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return jsonError(c, fiber.StatusBadRequest, "min_count must be a positive integer")
		}
		minCount = parsed
	}

	pairs, err := h.analyzer.Cooccurrence(c.Context(), minCount)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "co-occurrence analysis failed")
	}

	return jsonSuccess(c, toCooccurrenceData(pairs))
}

func parseGranularity(raw string) (core.Granularity, bool) {
	switch core.Granularity(raw) {
	case core.GranularityYear, core.GranularityMonth, core.GranularityQuarter:
		return core.Granularity(raw), true
	default:
		return "", false
	}
}

func toTrendData(points []*core.TrendPoint) []trendData {
	out := make([]trendData, len(points))
	for i, point := range points {
		out[i] = trendData{
			TimePeriod:        point.Period,
			Count:             point.Count,
			TrendSlope:        point.Slope,
			TrendSignificance: point.Significance,
			RSquared:          point.RSquared,
		}
	}
	return out
}

func toCooccurrenceData(pairs []*core.TagPair) []cooccurrenceData {
	out := make([]cooccurrenceData, len(pairs))
	for i, pair := range pairs {
		out[i] = cooccurrenceData{
			Tag1:        pair.TagA,
			Tag2:        pair.TagB,
			Count:       pair.Count,
			Correlation: pair.Correlation,
		}
	}
	return out
}
