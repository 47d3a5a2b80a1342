package ingestion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanContent(t *testing.T) {
	chunker := NewChunker()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"collapses whitespace", "too   much\n\nspace", "too much space"},
		{"strips bracketed text", "before [citation needed] after", "before  after"},
		{"strips parenthetical text", "before (aside) after", "before  after"},
		{"strips urls", "visit https://example.com/page for more", "visit  for more"},
		{"strips emails", "contact artist@example.com today", "contact  today"},
		{"strips phone numbers", "call 555-123-4567 now", "call  now"},
		{"caps ellipses", "wait..... what", "wait... what"},
		{"caps exclamation runs", "wow!!! amazing", "wow! amazing"},
		{"caps question runs", "really??? yes", "really? yes"},
		{"trims edges", "  padded  ", "padded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, chunker.CleanContent(tt.input))
		})
	}
}

func TestChunkContentShortDocument(t *testing.T) {
	chunker := NewChunker()

	chunks, indexes, total := chunker.ChunkContent("A short note about generative art practice in small galleries.")
	require.Len(t, chunks, 1)
	assert.Equal(t, []int{0}, indexes)
	assert.Equal(t, 1, total)
}

func TestChunkContentOverlappingChunks(t *testing.T) {
	chunker := NewChunker()

	// Build ~2500 characters of sentence-structured text
	sentence := "The installation used projection mapping across the gallery walls. "
	content := strings.Repeat(sentence, 40)

	chunks, indexes, total := chunker.ChunkContent(content)
	require.Greater(t, len(chunks), 1)
	assert.Equal(t, len(chunks), len(indexes))
	assert.GreaterOrEqual(t, total, len(chunks))

	for i, chunk := range chunks {
		// Every chunk respects the size cap
		assert.LessOrEqual(t, len([]rune(chunk)), DefaultChunkSize)
		// Kept chunks meet the minimum length
		assert.GreaterOrEqual(t, len(chunk), DefaultMinChunkLength)
		// Indexes are strictly increasing
		if i > 0 {
			assert.Greater(t, indexes[i], indexes[i-1])
		}
	}

	// Sentence-boundary preference: non-final chunks end on a period
	for _, chunk := range chunks[:len(chunks)-1] {
		assert.True(t, strings.HasSuffix(chunk, "."), "chunk should end at a sentence boundary: %q", chunk[len(chunk)-20:])
	}
}

func TestChunkContentDropsShortTailChunks(t *testing.T) {
	chunker := NewChunker()
	chunker.minChunkLength = 400

	sentence := "Sensors recorded the movement of every visitor in the room. "
	content := strings.Repeat(sentence, 30)

	chunks, _, total := chunker.ChunkContent(content)
	for _, chunk := range chunks {
		assert.GreaterOrEqual(t, len(chunk), 400)
	}
	assert.GreaterOrEqual(t, total, len(chunks))
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2023-11-05", "2023-11-05"},
		{"2023-11", "2023-11-01"},
		{"2023", "2023-01-01"},
		{"November 5, 2023", "2023-11-05"},
		{"5 November 2023", "2023-11-05"},
		{"11/05/2023", "2023-11-05"},
		{"", ""},
		// Unparseable dates pass through untouched
		{"last Tuesday", "last Tuesday"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDate(tt.input))
		})
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty becomes untitled", "", "Untitled"},
		{"strips html", "<b>Bold</b> Statement", "Bold Statement"},
		{"normalizes pipes", "Art Review | The Gazette", "Art Review - The Gazette"},
		{"normalizes double colons", "Exhibit :: Opening", "Exhibit - Opening"},
		{"collapses whitespace", "Too   Many	Spaces", "Too Many Spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanTitle(tt.input))
		})
	}
}

func TestDomainFromURL(t *testing.T) {
	assert.Equal(t, "example.com", DomainFromURL("https://example.com/articles/1"))
	assert.Equal(t, "blog.example.org", DomainFromURL("http://blog.example.org"))
	assert.Equal(t, "", DomainFromURL("not a url at all %%%"))
}
