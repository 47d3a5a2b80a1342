package trends

import (
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// trendFit holds one regression result shared by every point in a series.
type trendFit struct {
	slope        *float64
	significance *float64
	rSquared     *float64
}

// periodToX converts a sorted period label into a regression x value.
// "YYYY-MM" becomes year*12+month, a bare year becomes the year itself,
// and anything else (quarters, full dates) falls back to its position in
// the sorted label order.
func periodToX(period string, index int) float64 {
	parts := strings.Split(period, "-")
	if len(parts) == 2 {
		year, yearErr := strconv.Atoi(parts[0])
		month, monthErr := strconv.Atoi(parts[1])
		if yearErr == nil && monthErr == nil {
			return float64(year*12 + month)
		}
	}
	if len(parts) == 1 {
		if year, err := strconv.Atoi(period); err == nil {
			return float64(year)
		}
	}
	return float64(index)
}

// fitTrend runs one ordinary least squares fit of count against period over
// the whole series. With fewer than 3 periods all fields stay nil. The same
// fit is reported on every point of the series.
//
// The significance value is a pseudo p-value: residuals are measured against
// slope·x without the intercept and pushed through a tanh approximation of
// the t CDF. It ranks trend strength consistently but is not a Student's-t
// test.
func fitTrend(sortedPeriods []string, counts []int) trendFit {
	if len(sortedPeriods) < 3 {
		return trendFit{}
	}

	xs := make([]float64, len(sortedPeriods))
	ys := make([]float64, len(sortedPeriods))
	for i, period := range sortedPeriods {
		xs[i] = periodToX(period, i)
		ys[i] = float64(counts[i])
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	rSquared := stat.RSquared(xs, ys, nil, alpha, beta)

	significance := pseudoPValue(xs, ys, beta)

	if !isFinite(beta) || !isFinite(rSquared) || !isFinite(significance) {
		return trendFit{}
	}

	return trendFit{
		slope:        &beta,
		significance: &significance,
		rSquared:     &rSquared,
	}
}

// pseudoPValue computes the trend significance score.
// mse of the no-intercept residuals being zero means a perfect line, scored 1.0.
func pseudoPValue(xs, ys []float64, slope float64) float64 {
	n := len(ys)
	if n < 3 {
		return 0
	}

	var sumSq float64
	for i := range ys {
		residual := ys[i] - slope*xs[i]
		sumSq += residual * residual
	}
	mse := sumSq / float64(n)

	if mse == 0 {
		return 1.0
	}

	t := slope / math.Sqrt(mse/float64(n))
	p := 2 * (1 - tanhCDF(math.Abs(t), n-2))

	return math.Max(0, math.Min(1, p))
}

// tanhCDF approximates the t-distribution CDF with a tanh curve.
// For small degrees of freedom the curve is flattened.
func tanhCDF(t float64, df int) float64 {
	if df > 30 {
		return 0.5 + 0.5*math.Tanh(t/2)
	}
	return 0.5 + 0.5*math.Tanh(t/(2+float64(df)/10))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
