package core

import (
	"encoding/binary"
	"strconv"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated from content so that re-ingesting the same source is idempotent.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// IDForChunk generates the canonical ID for a chunk, derived from its source
// URL and position. The same page chunked the same way always maps to the
// same IDs.
func IDForChunk(sourceURL string, chunkIndex int) ID {
	return IDFromContent(sourceURL + "#" + strconv.Itoa(chunkIndex))
}

// Granularity selects the time-bucket resolution for trend analysis.
type Granularity string

const (
	// GranularityYear buckets chunks by calendar year ("2024").
	GranularityYear Granularity = "year"
	// GranularityMonth buckets chunks by calendar month ("2024-03").
	GranularityMonth Granularity = "month"
	// GranularityQuarter buckets chunks by calendar quarter ("2024-Q1").
	GranularityQuarter Granularity = "quarter"
)

// ChunkRecord is the atomic retrieval unit: a span of text from a crawled
// page together with its source metadata. Records are immutable once stored;
// the analytics engine only reads them.
type ChunkRecord struct {
	Id          ID
	Text        string
	SourceURL   string
	Title       string
	Domain      string
	PublishDate string // raw date string from the source, possibly empty or unparseable
	ChunkIndex  int
	TotalChunks int
	Vector      []float32 // embedding vector for similarity search (populated by processors)
	InsertedAt  time.Time
	UpdatedAt   time.Time
}

// SimilarityMatch is a chunk returned from vector similarity search together
// with its cosine distance from the query (0 = identical direction).
type SimilarityMatch struct {
	Record   *ChunkRecord
	Distance float64
}

// ScoredResult is a fused retrieval result. VectorScore and KeywordScore are
// each in [0,1]; CombinedScore is their weighted sum and depends on the
// caller-supplied weights. Results are request-scoped and never persisted.
type ScoredResult struct {
	Record        *ChunkRecord
	VectorScore   float64
	KeywordScore  float64
	CombinedScore float64
}

// TrendPoint reports one time bucket of the corpus. Count is always
// populated. Slope, Significance and RSquared describe the linear fit over
// the whole bucket series and are therefore identical on every point of a
// response; they are nil when fewer than three periods exist or the fit
// failed numerically.
//
// Significance is a bounded, monotonic pseudo p-value derived from a
// hyperbolic-tangent approximation, not a Student's-t test. Treat it as a
// relative ranking signal only.
type TrendPoint struct {
	Period       string
	Count        int
	Slope        *float64
	Significance *float64
	RSquared     *float64
}

// TagPair is an unordered pair of controlled-vocabulary tags that co-occur in
// the corpus. TagA < TagB lexicographically. Correlation is in [-1,1]:
// 0 means the pair co-occurs at the rate expected from the individual tag
// frequencies, positive means more often, negative less often.
type TagPair struct {
	TagA        string
	TagB        string
	Count       int
	Correlation float64
}
