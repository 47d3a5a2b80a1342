package ingestion

import (
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// Default chunking parameters. Sizes are in characters of cleaned text.
const (
	DefaultChunkSize      = 1000
	DefaultChunkOverlap   = 200
	DefaultMinChunkLength = 100

	// sentenceSearchWindow is how far back from the chunk end to look for a
	// sentence boundary.
	sentenceSearchWindow = 200
)

// Document is one already-fetched web page submitted for ingestion.
// Crawling happens upstream; ingestion starts from raw page text.
type Document struct {
	Content     string `json:"content"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	PublishDate string `json:"publish_date"`
}

// Web artifact patterns removed during cleaning.
var (
	whitespaceRe  = regexp.MustCompile(`\s+`)
	bracketedRe   = regexp.MustCompile(`\[[^\]]*\]`)
	parentheticRe = regexp.MustCompile(`\([^)]*\)`)
	urlRe         = regexp.MustCompile(`https?://\S+`)
	emailRe       = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phoneRe       = regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)
	ellipsisRe    = regexp.MustCompile(`\.{3,}`)
	bangRe        = regexp.MustCompile(`!{2,}`)
	questionRe    = regexp.MustCompile(`\?{2,}`)
	htmlTagRe     = regexp.MustCompile(`<[^>]+>`)
)

var normalizedDateFormats = []string{
	"2006-01-02",
	"2006-01",
	"2006",
	"January 2, 2006",
	"2 January 2006",
	"01/02/2006",
	"02/01/2006",
}

// Chunker cleans scraped page text and splits it into overlapping chunks.
type Chunker struct {
	chunkSize      int
	chunkOverlap   int
	minChunkLength int
}

// NewChunker creates a chunker with the standard size parameters.
func NewChunker() *Chunker {
	return &Chunker{
		chunkSize:      DefaultChunkSize,
		chunkOverlap:   DefaultChunkOverlap,
		minChunkLength: DefaultMinChunkLength,
	}
}

// CleanContent normalizes scraped text: collapses whitespace and strips
// bracketed asides, URLs, email addresses, phone numbers, and runs of
// punctuation.
func (c *Chunker) CleanContent(content string) string {
	content = whitespaceRe.ReplaceAllString(content, " ")
	content = bracketedRe.ReplaceAllString(content, "")
	content = parentheticRe.ReplaceAllString(content, "")
	content = urlRe.ReplaceAllString(content, "")
	content = emailRe.ReplaceAllString(content, "")
	content = phoneRe.ReplaceAllString(content, "")
	content = ellipsisRe.ReplaceAllString(content, "...")
	content = bangRe.ReplaceAllString(content, "!")
	content = questionRe.ReplaceAllString(content, "?")
	return strings.TrimSpace(content)
}

// ChunkContent cleans the content and splits it into overlapping chunks,
// preferring to break at sentence boundaries. Chunks shorter than the
// minimum length are dropped; surviving chunks keep their original index so
// a source page always maps to stable chunk identities.
// Returns the kept chunks with their indexes and the total chunk count
// before length filtering.
func (c *Chunker) ChunkContent(content string) (chunks []string, indexes []int, total int) {
	cleaned := c.CleanContent(content)
	if cleaned == "" {
		return nil, nil, 0
	}
	runes := []rune(cleaned)

	var raw []string
	if len(runes) <= c.chunkSize {
		raw = []string{cleaned}
	} else {
		start := 0
		for start < len(runes) {
			end := start + c.chunkSize
			sliceEnd := end
			if sliceEnd > len(runes) {
				sliceEnd = len(runes)
			}

			// Prefer a sentence boundary in the tail of the chunk,
			// as long as it doesn't make the chunk too small
			if end < len(runes) {
				searchStart := end - sentenceSearchWindow
				if searchStart < start {
					searchStart = start
				}
				sentenceEnd := lastIndexRune(runes, '.', searchStart, end)
				if sentenceEnd > start+c.chunkSize/2 {
					end = sentenceEnd + 1
					sliceEnd = end
				}
			}

			chunk := strings.TrimSpace(string(runes[start:sliceEnd]))
			if chunk != "" {
				raw = append(raw, chunk)
			}

			start = end - c.chunkOverlap
			if start >= len(runes) {
				break
			}
		}
	}

	total = len(raw)
	for i, chunk := range raw {
		// Single-chunk documents are kept whole even when short; the
		// length filter exists to drop ragged tails of long pages
		if len([]rune(chunk)) < c.minChunkLength && total > 1 {
			continue
		}
		chunks = append(chunks, chunk)
		indexes = append(indexes, i)
	}
	return chunks, indexes, total
}

// lastIndexRune finds the last occurrence of r in runes[start:end).
// Returns -1 if absent.
func lastIndexRune(runes []rune, r rune, start, end int) int {
	if end > len(runes) {
		end = len(runes)
	}
	for i := end - 1; i >= start; i-- {
		if runes[i] == r {
			return i
		}
	}
	return -1
}

// NormalizeDate converts a raw source date to ISO YYYY-MM-DD when one of the
// known formats matches; otherwise the raw string is kept for the analytics
// layer to deal with.
func NormalizeDate(dateStr string) string {
	if dateStr == "" {
		return ""
	}
	for _, format := range normalizedDateFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t.Format("2006-01-02")
		}
	}
	slog.Default().Warn("could not normalize publish date", "date", dateStr)
	return dateStr
}

// CleanTitle strips HTML tags and normalizes separators in a page title.
// Empty titles become "Untitled".
func CleanTitle(title string) string {
	if title == "" {
		return "Untitled"
	}

	title = htmlTagRe.ReplaceAllString(title, "")
	title = whitespaceRe.ReplaceAllString(title, " ")
	title = strings.ReplaceAll(title, " | ", " - ")
	title = strings.ReplaceAll(title, " :: ", " - ")

	return strings.TrimSpace(title)
}

// DomainFromURL extracts the host part of a source URL.
// Returns "" for unparseable URLs.
func DomainFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Host
}
