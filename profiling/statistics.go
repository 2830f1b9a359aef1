package profiling

import (
	"math"
	"sort"
)

// Statistics summarizes a sample of timings, in the unit of the sample.
type Statistics struct {
	Mean    float64
	Std     float64
	Median  float64
	Min     float64
	Max     float64
	Samples int
}

// outlierFactor drops samples at or above this multiple of the minimum.
const outlierFactor = 2.0

// ComputeStatistics sorts a copy of samples, trims outliers (values at
// least twice the minimum) when at least three samples survive the trim,
// and summarizes the rest. Std is the sample standard deviation.
func ComputeStatistics(samples []float64) Statistics {
	if len(samples) == 0 {
		return Statistics{}
	}
	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)

	if sorted[0] > 0 {
		threshold := sorted[0] * outlierFactor
		end := len(sorted)
		for end > 0 && sorted[end-1] >= threshold {
			end--
		}
		if end >= 3 {
			sorted = sorted[:end]
		}
	}

	n := len(sorted)
	st := Statistics{
		Min:     sorted[0],
		Max:     sorted[n-1],
		Samples: n,
	}
	if n%2 == 0 {
		st.Median = (sorted[n/2] + sorted[n/2-1]) * 0.5
	} else {
		st.Median = sorted[n/2]
	}
	for _, v := range sorted {
		st.Mean += v / float64(n)
	}
	if n > 1 {
		var sumSq float64
		for _, v := range sorted {
			d := v - st.Mean
			sumSq += d * d
		}
		st.Std = math.Sqrt(sumSq / float64(n-1))
	}
	return st
}
