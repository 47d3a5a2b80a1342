package search

import "strings"

// KeywordScore computes the fraction of query words that also appear in text.
// Words are lower-cased and whitespace-delimited; no stemming or stop-word
// filtering is applied. Returns a value in [0,1], and 0 for an empty query.
func KeywordScore(query, text string) float64 {
	queryWords := strings.Fields(strings.ToLower(query))
	if len(queryWords) == 0 {
		return 0
	}

	textWords := strings.Fields(strings.ToLower(text))
	textSet := make(map[string]bool, len(textWords))
	for _, word := range textWords {
		textSet[word] = true
	}

	// Distinct query words, counted once each
	querySet := make(map[string]bool, len(queryWords))
	for _, word := range queryWords {
		querySet[word] = true
	}

	overlap := 0
	for word := range querySet {
		if textSet[word] {
			overlap++
		}
	}

	return float64(overlap) / float64(len(querySet))
}
