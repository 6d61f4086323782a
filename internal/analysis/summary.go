package analysis

import (
	"math"
	"sort"

	domainStats "suicidestats/domain/stats"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// CalculateStatistics summarizes a numeric column.
// NaN cells are treated as missing and dropped before any moment is taken;
// an empty column yields NaN moments and no mode rather than an error.
func CalculateStatistics(column []float64) domainStats.StatSummary {
	data, missing := dropMissing(column)

	summary := domainStats.StatSummary{
		Count:    len(data),
		Missing:  missing,
		Mean:     math.NaN(),
		Median:   math.NaN(),
		Variance: math.NaN(),
		StdDev:   math.NaN(),
		Skewness: math.NaN(),
		Kurtosis: math.NaN(),
	}
	if len(data) == 0 {
		return summary
	}

	summary.Mean, _ = stats.Mean(data)
	summary.Median, _ = stats.Median(data)
	mode := firstMode(data)
	summary.Mode = &mode

	if len(data) >= 2 {
		summary.Variance, _ = stats.SampleVariance(data)
		summary.StdDev, _ = stats.StandardDeviationSample(data)
	}

	spread, _ := stats.StandardDeviationPopulation(data)
	switch {
	case len(data) < 3:
	case spread == 0:
		summary.Skewness = 0
	default:
		summary.Skewness = stat.Skew(data, nil)
	}
	switch {
	case len(data) < 4:
	case spread == 0:
		summary.Kurtosis = 0
	default:
		summary.Kurtosis = stat.ExKurtosis(data, nil)
	}

	return summary
}

// firstMode returns the smallest of the most frequent values.
// Every value is a mode when none repeats, so the minimum is returned then.
func firstMode(data []float64) float64 {
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	best, bestCount := sorted[0], 0
	for i := 0; i < len(sorted); {
		j := i
		for j < len(sorted) && sorted[j] == sorted[i] {
			j++
		}
		if j-i > bestCount {
			best, bestCount = sorted[i], j-i
		}
		i = j
	}
	return best
}

// dropMissing returns the non-NaN values and how many were removed
func dropMissing(column []float64) ([]float64, int) {
	out := make([]float64, 0, len(column))
	for _, v := range column {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out, len(column) - len(out)
}
