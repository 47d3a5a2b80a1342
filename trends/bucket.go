package trends

import (
	"fmt"
	"time"

	"github.com/technelab/techne/core"
)

// Publish dates arrive as raw source strings in a handful of shapes.
// ISO forms are tried first, then the looser editorial formats.
var dateFormats = []string{
	"2006-01-02",
	"2006-01",
	"2006",
	"January 2, 2006",
	"2 January 2006",
	"01/02/2006",
	"02/01/2006",
}

// parseDate attempts to parse a date string using the known formats in order.
// Returns false when no format matches; callers drop such records silently.
func parseDate(dateStr string) (time.Time, bool) {
	if dateStr == "" {
		return time.Time{}, false
	}
	for _, format := range dateFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// bucketLabel formats a parsed date into its period label.
// Unknown granularities fall back to the full date.
func bucketLabel(t time.Time, granularity core.Granularity) string {
	switch granularity {
	case core.GranularityYear:
		return t.Format("2006")
	case core.GranularityMonth:
		return t.Format("2006-01")
	case core.GranularityQuarter:
		quarter := (int(t.Month())-1)/3 + 1
		return fmt.Sprintf("%d-Q%d", t.Year(), quarter)
	default:
		return t.Format("2006-01-02")
	}
}

// filterByDateRange keeps records whose publish date parses and falls within
// the inclusive [from, to] bounds. Either bound may be empty. Records with
// missing or unparseable dates are dropped whenever a bound is set.
func filterByDateRange(records []*core.ChunkRecord, fromDate, toDate string) []*core.ChunkRecord {
	if fromDate == "" && toDate == "" {
		return records
	}

	from, hasFrom := parseDate(fromDate)
	to, hasTo := parseDate(toDate)

	filtered := make([]*core.ChunkRecord, 0, len(records))
	for _, record := range records {
		published, ok := parseDate(record.PublishDate)
		if !ok {
			continue
		}
		if hasFrom && published.Before(from) {
			continue
		}
		if hasTo && published.After(to) {
			continue
		}
		filtered = append(filtered, record)
	}
	return filtered
}

// groupByPeriod buckets records into period-label counts.
// Records with missing or unparseable publish dates are dropped.
func groupByPeriod(records []*core.ChunkRecord, granularity core.Granularity) map[string]int {
	groups := make(map[string]int)
	for _, record := range records {
		published, ok := parseDate(record.PublishDate)
		if !ok {
			continue
		}
		groups[bucketLabel(published, granularity)]++
	}
	return groups
}
