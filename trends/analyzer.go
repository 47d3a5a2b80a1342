package trends

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/technelab/techne/core"
	"github.com/technelab/techne/storage"
)

// Analyzer computes temporal trends and tag co-occurrence over the corpus.
// All methods are synchronous snapshot computations; the analyzer holds no
// state between calls.
type Analyzer struct {
	chunkRepository storage.ChunkRepository
	logger          *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// NewAnalyzer creates a new trend analyzer.
func NewAnalyzer(chunkRepository storage.ChunkRepository, opts ...Option) (*Analyzer, error) {
	if chunkRepository == nil {
		return nil, ErrChunkRepositoryRequired
	}

	a := &Analyzer{
		chunkRepository: chunkRepository,
		logger:          slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// TrendQuery describes one temporal trend request.
type TrendQuery struct {
	// FacetTerms restricts the analysis to chunks containing any of the
	// terms (case-insensitive substring match). Empty means the whole corpus.
	FacetTerms []string

	// FromDate and ToDate bound the analysis inclusively. Either may be
	// empty. They accept the same date formats as chunk publish dates.
	FromDate string
	ToDate   string

	// Granularity selects the bucket size. Unknown values bucket by full date.
	Granularity core.Granularity
}

// Trends buckets the corpus by publish date and fits a linear trend to the
// period counts. Chunks with missing or unparseable dates are dropped, never
// reported as errors. With fewer than 3 periods the per-point fit fields
// stay nil. The returned points are sorted by period label ascending.
func (a *Analyzer) Trends(ctx context.Context, query TrendQuery) ([]*core.TrendPoint, error) {
	records, err := a.chunkRepository.GetAllChunks(ctx)
	if err != nil {
		a.logger.Error("error retrieving corpus for trend analysis", "err", err)
		return nil, err
	}

	if len(query.FacetTerms) > 0 {
		records = filterByTerms(records, query.FacetTerms)
	}
	records = filterByDateRange(records, query.FromDate, query.ToDate)

	return buildTrendPoints(records, query.Granularity), nil
}

// TechnologyTrends runs a yearly trend analysis per technology category.
// Categories with no matching chunks are omitted.
func (a *Analyzer) TechnologyTrends(ctx context.Context) (map[string][]*core.TrendPoint, error) {
	records, err := a.chunkRepository.GetAllChunks(ctx)
	if err != nil {
		a.logger.Error("error retrieving corpus for technology trends", "err", err)
		return nil, err
	}

	byCategory := make(map[string][]*core.TrendPoint)
	for _, category := range TechnologyCategories {
		matched := filterByTerms(records, category.Terms)
		if len(matched) == 0 {
			continue
		}
		byCategory[category.Name] = buildTrendPoints(matched, core.GranularityYear)
	}

	return byCategory, nil
}

// Cooccurrence tags every chunk against the controlled vocabulary and
// reports pairs co-occurring at least minCount times, sorted by count
// descending.
func (a *Analyzer) Cooccurrence(ctx context.Context, minCount int) ([]*core.TagPair, error) {
	records, err := a.chunkRepository.GetAllChunks(ctx)
	if err != nil {
		a.logger.Error("error retrieving corpus for co-occurrence analysis", "err", err)
		return nil, err
	}

	return cooccurrence(records, minCount), nil
}

// buildTrendPoints groups records into periods and attaches one shared fit.
func buildTrendPoints(records []*core.ChunkRecord, granularity core.Granularity) []*core.TrendPoint {
	groups := groupByPeriod(records, granularity)
	if len(groups) == 0 {
		return []*core.TrendPoint{}
	}

	periods := make([]string, 0, len(groups))
	for period := range groups {
		periods = append(periods, period)
	}
	sort.Strings(periods)

	counts := make([]int, len(periods))
	for i, period := range periods {
		counts[i] = groups[period]
	}

	fit := fitTrend(periods, counts)

	points := make([]*core.TrendPoint, len(periods))
	for i, period := range periods {
		points[i] = &core.TrendPoint{
			Period:       period,
			Count:        counts[i],
			Slope:        fit.slope,
			Significance: fit.significance,
			RSquared:     fit.rSquared,
		}
	}
	return points
}

// filterByTerms keeps records whose text contains any of the terms,
// matched case-insensitively as substrings.
func filterByTerms(records []*core.ChunkRecord, terms []string) []*core.ChunkRecord {
	lowered := make([]string, len(terms))
	for i, term := range terms {
		lowered[i] = strings.ToLower(term)
	}

	filtered := make([]*core.ChunkRecord, 0, len(records))
	for _, record := range records {
		textLower := strings.ToLower(record.Text)
		for _, term := range lowered {
			if strings.Contains(textLower, term) {
				filtered = append(filtered, record)
				break
			}
		}
	}
	return filtered
}
