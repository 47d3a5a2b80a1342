package trends

import (
	"fmt"
	"strings"

	"github.com/technelab/techne/core"
)

// TrendChart renders trend points as a text bar chart for terminal output.
func TrendChart(points []*core.TrendPoint) string {
	if len(points) == 0 {
		return "No trend data available"
	}

	maxCount := 0
	for _, point := range points {
		if point.Count > maxCount {
			maxCount = point.Count
		}
	}

	var b strings.Builder
	b.WriteString("Trend Analysis:\n")
	b.WriteString(strings.Repeat("=", 50))
	b.WriteString("\n")

	for _, point := range points {
		barLength := 0
		if maxCount > 0 {
			barLength = point.Count * 30 / maxCount
		}
		bar := strings.Repeat("█", barLength)

		indicator := ""
		if point.Slope != nil {
			switch {
			case *point.Slope > 0:
				indicator = " ↗"
			case *point.Slope < 0:
				indicator = " ↘"
			default:
				indicator = " →"
			}
		}

		fmt.Fprintf(&b, "%s: %s %d%s\n", point.Period, bar, point.Count, indicator)
	}

	return strings.TrimSuffix(b.String(), "\n")
}
