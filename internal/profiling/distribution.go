package profiling

import (
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats/scalar"
)

// LengthSummary describes the distribution of value lengths in one column
type LengthSummary struct {
	Mean   float64
	Median float64
	P90    float64
}

// SummarizeLengths computes mean, median and 90th percentile of lengths.
// An empty input yields a zero summary.
func SummarizeLengths(lengths []float64) (LengthSummary, error) {
	var summary LengthSummary
	if len(lengths) == 0 {
		return summary, nil
	}

	mean, err := stats.Mean(lengths)
	if err != nil {
		return summary, err
	}

	median, err := stats.Median(lengths)
	if err != nil {
		return summary, err
	}

	p90, err := stats.Percentile(lengths, 90)
	if err != nil {
		return summary, err
	}

	summary.Mean = scalar.Round(mean, 2)
	summary.Median = scalar.Round(median, 2)
	summary.P90 = scalar.Round(p90, 2)
	return summary, nil
}
