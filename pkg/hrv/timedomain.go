// Package hrv computes heart-rate-variability statistics from RR-interval
// series, both in the time domain and from the power spectral density.
//
// Every method names the unit of its input. "Seconds" series are RR
// durations in seconds, "samples" series are RR durations counted in ECG
// samples at the engine's SamplingRate, and "millis" series are durations in
// milliseconds.
package hrv

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// TimeDomain computes time-domain and Poincaré statistics
type TimeDomain struct {
	SamplingRate float64 // Hz, converts sample counts to seconds
}

// NewTimeDomain creates a time-domain engine for a recording at samplingRate Hz
func NewTimeDomain(samplingRate float64) *TimeDomain {
	return &TimeDomain{SamplingRate: samplingRate}
}

// TimeStats bundles every time-domain statistic for one RR series
type TimeStats struct {
	Count         int     // number of RR intervals
	MeanRR        float64 // ms
	MeanHeartRate float64 // bpm
	SDNN          float64 // ms
	RMSSD         float64 // ms
	SDSD          float64 // ms
	NN50          int
	PNN50         float64 // fraction of successive differences, 0..1
	SD1           float64 // ms
	SD2           float64 // ms
}

// HeartRates converts each interval (samples) to a whole-number heart rate in
// bpm, truncating toward zero. Non-positive intervals yield 0.
func (td *TimeDomain) HeartRates(samples []float64) []int {
	if len(samples) == 0 {
		return nil
	}
	rates := make([]int, len(samples))
	for i, x := range samples {
		if x <= 0 {
			continue
		}
		rates[i] = int(60 / (x / td.SamplingRate))
	}
	return rates
}

// MeanHeartRate returns 60 / mean interval in bpm. This is the rate of the
// mean interval and generally differs from the mean of HeartRates.
func (td *TimeDomain) MeanHeartRate(samples []float64) float64 {
	if len(samples) == 0 {
		return math.NaN()
	}
	mean := stat.Mean(samples, nil)
	if mean <= 0 {
		return math.NaN()
	}
	return 60 / (mean / td.SamplingRate)
}

// SDNN returns the sample standard deviation of the intervals in ms
func (td *TimeDomain) SDNN(seconds []float64) float64 {
	if len(seconds) < 2 {
		return math.NaN()
	}
	return stat.StdDev(seconds, nil) * 1000
}

// RMSSD returns the root mean square of successive differences in ms
func (td *TimeDomain) RMSSD(seconds []float64) float64 {
	if len(seconds) < 2 {
		return math.NaN()
	}
	return rms(diff(seconds)) * 1000
}

// RMSSDSamples is RMSSD for a series counted in samples. The ×1000 scaling
// is applied before dividing by SamplingRate; the result is in ms.
func (td *TimeDomain) RMSSDSamples(samples []float64) float64 {
	if len(samples) < 2 {
		return math.NaN()
	}
	return rms(diff(samples)) * 1000 / td.SamplingRate
}

// NN50 counts successive differences whose magnitude exceeds 50. The
// threshold is compared without conversion, so millis must be in ms.
func (td *TimeDomain) NN50(millis []float64) int {
	if len(millis) < 2 {
		return 0
	}
	count := 0
	for _, d := range diff(millis) {
		if math.Abs(d) > 50 {
			count++
		}
	}
	return count
}

// PNN50 returns NN50 as a fraction of the n-1 successive differences
func (td *TimeDomain) PNN50(millis []float64) float64 {
	if len(millis) < 2 {
		return math.NaN()
	}
	return float64(td.NN50(millis)) / float64(len(millis)-1)
}

// SDSD returns the standard deviation of successive differences in ms
func (td *TimeDomain) SDSD(samples []float64) float64 {
	if len(samples) < 3 {
		return math.NaN()
	}
	return stat.StdDev(diff(samples), nil) * 1000 / td.SamplingRate
}

// Poincare returns the SD1 and SD2 descriptors of the Poincaré plot in ms
func (td *TimeDomain) Poincare(samples []float64) (sd1, sd2 float64) {
	sdsd := td.SDSD(samples)
	if math.IsNaN(sdsd) {
		return math.NaN(), math.NaN()
	}
	sdnn := stat.StdDev(samples, nil) * 1000 / td.SamplingRate

	sd1 = sdsd / math.Sqrt2
	sd2 = math.Sqrt(2*sdnn*sdnn - 0.5*sdsd*sdsd)
	return sd1, sd2
}

// Summarize evaluates every statistic for an RR series in seconds
func (td *TimeDomain) Summarize(seconds []float64) TimeStats {
	samples := make([]float64, len(seconds))
	floats.ScaleTo(samples, td.SamplingRate, seconds)
	millis := make([]float64, len(seconds))
	floats.ScaleTo(millis, 1000, seconds)

	ts := TimeStats{
		Count:         len(seconds),
		MeanRR:        math.NaN(),
		MeanHeartRate: td.MeanHeartRate(samples),
		SDNN:          td.SDNN(seconds),
		RMSSD:         td.RMSSD(seconds),
		SDSD:          td.SDSD(samples),
		NN50:          td.NN50(millis),
		PNN50:         td.PNN50(millis),
	}
	if len(millis) > 0 {
		ts.MeanRR = stat.Mean(millis, nil)
	}
	ts.SD1, ts.SD2 = td.Poincare(samples)

	return ts
}

func diff(x []float64) []float64 {
	if len(x) < 2 {
		return nil
	}
	d := make([]float64, len(x)-1)
	for i := 1; i < len(x); i++ {
		d[i-1] = x[i] - x[i-1]
	}
	return d
}

func rms(x []float64) float64 {
	return math.Sqrt(floats.Dot(x, x) / float64(len(x)))
}
