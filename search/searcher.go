package search

import (
	"context"
	"log/slog"
	"sort"

	"github.com/technelab/techne/ai"
	"github.com/technelab/techne/core"
	"github.com/technelab/techne/storage"
)

// Default fusion weights. Vector similarity dominates; keyword overlap acts
// as an exact-term corrective.
const (
	DefaultVectorWeight  = 0.7
	DefaultKeywordWeight = 0.3
)

// Weights controls the relative contribution of each retrieval signal to the
// combined score. Weights are used as given; they are not renormalized.
type Weights struct {
	Vector  float64
	Keyword float64
}

// DefaultWeights returns the standard 70/30 vector/keyword split.
func DefaultWeights() Weights {
	return Weights{Vector: DefaultVectorWeight, Keyword: DefaultKeywordWeight}
}

// Searcher provides hybrid vector and keyword search over corpus chunks.
type Searcher struct {
	chunkRepository storage.ChunkRepository
	embedder        ai.Embedder
	logger          *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	chunkRepository storage.ChunkRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Searcher, error) {
	if chunkRepository == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Searcher{
		chunkRepository: chunkRepository,
		embedder:        provider.Embedder(),
		logger:          slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search searches for chunks matching the query using default weights.
// Returns up to maxHits results, ranked by combined score.
func (s *Searcher) Search(ctx context.Context, query string, maxHits int) ([]*core.ScoredResult, error) {
	return s.SearchWeighted(ctx, query, maxHits, DefaultWeights(), nil)
}

// SearchWeighted searches with explicit fusion weights and an optional monitor.
// The monitor receives callbacks at each stage of the search process.
// Returns up to maxHits results, ranked by combined score descending; ties
// keep vector hits ahead of keyword-only hits.
func (s *Searcher) SearchWeighted(ctx context.Context, query string, maxHits int, weights Weights, monitor SearchMonitor) ([]*core.ScoredResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	// 1. Vector search
	embedding, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}

	matches, err := s.chunkRepository.FindSimilar(ctx, embedding, maxHits)
	if err != nil {
		s.logger.Error("error querying for similar chunks", "err", err)
		return nil, err
	}

	// Merge map keyed by chunk ID; insertion order decides ties later,
	// so vector hits are registered first.
	order := make([]core.ID, 0, len(matches))
	merged := make(map[core.ID]*core.ScoredResult, len(matches))

	vectorIds := make([]uint64, 0, len(matches))
	for _, match := range matches {
		// Distances can exceed 1 for anti-correlated vectors; similarity
		// is clamped into [0,1]
		score := 1.0 - match.Distance
		if score < 0 {
			score = 0
		}
		if score > 1 {
			score = 1
		}

		if _, seen := merged[match.Record.Id]; seen {
			continue
		}
		merged[match.Record.Id] = &core.ScoredResult{
			Record:      match.Record,
			VectorScore: score,
		}
		order = append(order, match.Record.Id)
		vectorIds = append(vectorIds, uint64(match.Record.Id))
	}
	monitor.AfterVectorSearch(vectorIds)

	// 2. Keyword scan over the full corpus
	all, err := s.chunkRepository.GetAllChunks(ctx)
	if err != nil {
		s.logger.Error("error retrieving corpus for keyword scan", "err", err)
		return nil, err
	}

	keywordIds := make([]uint64, 0)
	for _, record := range all {
		score := KeywordScore(query, record.Text)
		if score <= 0 {
			continue
		}

		keywordIds = append(keywordIds, uint64(record.Id))
		if existing, seen := merged[record.Id]; seen {
			existing.KeywordScore = score
			continue
		}
		merged[record.Id] = &core.ScoredResult{
			Record:       record,
			KeywordScore: score,
		}
		order = append(order, record.Id)
	}
	monitor.AfterKeywordScan(keywordIds)

	// 3. Fuse and rank
	results := make([]*core.ScoredResult, 0, len(order))
	for _, id := range order {
		result := merged[id]
		result.CombinedScore = weights.Vector*result.VectorScore + weights.Keyword*result.KeywordScore

		switch {
		case result.VectorScore > 0 && result.KeywordScore > 0:
			monitor.HybridHit(result.Record)
		case result.KeywordScore > 0:
			monitor.KeywordHit(result.Record)
		default:
			monitor.VectorHit(result.Record)
		}

		results = append(results, result)
	}

	// Stable sort preserves merge-map insertion order on ties
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CombinedScore > results[j].CombinedScore
	})
	if len(results) > maxHits {
		results = results[:maxHits]
	}
	monitor.Finish(results)

	return results, nil
}
