package scoring

import (
	"math"
	"sort"
)

// Summary holds descriptive statistics over a set of final scores.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"std_dev"`
}

// Summarize computes descriptive statistics over scores. An empty input
// yields a zero Summary.
func Summarize(scores []float64) Summary {
	if len(scores) == 0 {
		return Summary{}
	}

	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)

	var sum float64
	for _, s := range sorted {
		sum += s
	}
	mean := sum / float64(len(sorted))

	// Sample standard deviation (n-1 denominator); a single score has no
	// spread to estimate.
	var variance float64
	if len(sorted) > 1 {
		for _, s := range sorted {
			d := s - mean
			variance += d * d
		}
		variance /= float64(len(sorted) - 1)
	}

	return Summary{
		Count:  len(sorted),
		Mean:   mean,
		Median: median(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		StdDev: math.Sqrt(variance),
	}
}

func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2.0
}
