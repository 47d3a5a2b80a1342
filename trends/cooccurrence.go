package trends

import (
	"sort"
	"strings"

	"github.com/technelab/techne/core"
)

// extractTags returns the vocabulary terms present in the text.
// Matching is a case-insensitive substring check; each term counts at most
// once per chunk.
func extractTags(text string) []string {
	textLower := strings.ToLower(text)
	var found []string
	for _, term := range artTechTerms {
		if strings.Contains(textLower, strings.ToLower(term)) {
			found = append(found, term)
		}
	}
	return found
}

// tagPairKey identifies an unordered tag pair; the lexicographically smaller
// tag always comes first.
type tagPairKey struct {
	a, b string
}

func makeTagPairKey(t1, t2 string) tagPairKey {
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	return tagPairKey{a: t1, b: t2}
}

// cooccurrence computes tag pair counts and correlations over the corpus.
// Only chunks carrying at least one tag contribute; pairs below minCount are
// dropped. Results are sorted by count descending, ties broken by tag names
// ascending so output is deterministic.
func cooccurrence(records []*core.ChunkRecord, minCount int) []*core.TagPair {
	tagCounts := make(map[string]int)
	pairCounts := make(map[tagPairKey]int)
	totalTagged := 0

	for _, record := range records {
		tags := extractTags(record.Text)
		if len(tags) == 0 {
			continue
		}
		totalTagged++

		for _, tag := range tags {
			tagCounts[tag]++
		}
		for i := 0; i < len(tags); i++ {
			for j := i + 1; j < len(tags); j++ {
				pairCounts[makeTagPairKey(tags[i], tags[j])]++
			}
		}
	}

	results := make([]*core.TagPair, 0, len(pairCounts))
	for key, count := range pairCounts {
		if count < minCount {
			continue
		}
		results = append(results, &core.TagPair{
			TagA:        key.a,
			TagB:        key.b,
			Count:       count,
			Correlation: pairCorrelation(tagCounts[key.a], tagCounts[key.b], count, totalTagged),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Count != results[j].Count {
			return results[i].Count > results[j].Count
		}
		if results[i].TagA != results[j].TagA {
			return results[i].TagA < results[j].TagA
		}
		return results[i].TagB < results[j].TagB
	})

	return results
}

// pairCorrelation scores how far the observed co-occurrence deviates from
// the count expected under tag independence, clamped to [-1, 1].
func pairCorrelation(countA, countB, observed, totalTagged int) float64 {
	if countA == 0 || countB == 0 || totalTagged == 0 {
		return 0
	}

	expected := float64(countA) * float64(countB) / float64(totalTagged)
	if expected == 0 {
		return 0
	}

	correlation := (float64(observed) - expected) / expected
	if correlation > 1 {
		return 1
	}
	if correlation < -1 {
		return -1
	}
	return correlation
}
