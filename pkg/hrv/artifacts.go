package hrv

import (
	"math"
	"sort"
)

// MedianFilter returns the running median of data over kernelSize points.
// Windows are truncated at the edges rather than zero-padded, so the first
// and last values are not pulled toward zero. kernelSize must be a positive
// odd integer; other values return nil.
func MedianFilter(data []float64, kernelSize int) []float64 {
	if kernelSize < 1 || kernelSize%2 == 0 {
		return nil
	}
	n := len(data)
	if n == 0 {
		return []float64{}
	}

	half := kernelSize / 2
	result := make([]float64, n)
	window := make([]float64, 0, kernelSize)

	for i := 0; i < n; i++ {
		window = window[:0]
		for j := max(0, i-half); j <= min(n-1, i+half); j++ {
			window = append(window, data[j])
		}

		// Sort and pick median
		sort.Float64s(window)
		m := len(window)
		if m%2 == 1 {
			result[i] = window[m/2]
		} else {
			result[i] = (window[m/2-1] + window[m/2]) / 2
		}
	}
	return result
}

// Artifacts returns the indices of RR intervals that deviate from the local
// median by more than tolerance (a fraction, e.g. 0.2 for 20%). Such
// intervals usually come from missed or spurious beat detections.
func Artifacts(rr []float64, kernelSize int, tolerance float64) []int {
	medians := MedianFilter(rr, kernelSize)
	if medians == nil {
		return nil
	}

	artifacts := []int{}
	for i, x := range rr {
		if math.Abs(x-medians[i]) > tolerance*medians[i] {
			artifacts = append(artifacts, i)
		}
	}
	return artifacts
}
