package hrv

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/chrissnell/cardiorhythm/pkg/spectral"
)

// Units tells the frequency engine how its inputs are expressed
type Units int

const (
	Seconds Units = iota
	Samples
)

// FrequencyDomain resamples an RR series onto a uniform grid and computes its
// power spectral density
type FrequencyDomain struct {
	SamplingRate   float64 // Hz of the source ECG; normalizes sample inputs and the PSD
	ResamplingRate float64 // Hz of the uniform grid
	Units          Units
	Window         Window
	Interpolator   spectral.Interpolator
	Transformer    spectral.Transformer
}

// NewFrequencyDomain returns an engine with a Hamming window, natural cubic
// spline resampling and gonum's FFT
func NewFrequencyDomain(samplingRate, resamplingRate float64) *FrequencyDomain {
	return &FrequencyDomain{
		SamplingRate:   samplingRate,
		ResamplingRate: resamplingRate,
		Units:          Seconds,
		Window:         Hamming,
		Interpolator:   spectral.CubicSpline{},
		Transformer:    spectral.GonumDFT{},
	}
}

// Spectrum holds every array derived by one Compute call
type Spectrum struct {
	ResamplingRate float64
	Times          []float64 // uniform grid, seconds
	Resampled      []float64 // detrended, windowed series in ms
	Real           []float64
	Imag           []float64
	PSD            []float64 // first half of the spectrum
}

// Compute runs the resample, detrend, window, transform and PSD pipeline
// over values observed at timestamps. Both slices are in f.Units and are
// not modified. Inputs too short to span one grid step produce an empty
// spectrum.
func (f *FrequencyDomain) Compute(values, timestamps []float64) (*Spectrum, error) {
	if len(values) != len(timestamps) {
		return nil, fmt.Errorf("compute spectrum: %d values but %d timestamps", len(values), len(timestamps))
	}

	sp := &Spectrum{
		ResamplingRate: f.ResamplingRate,
		Times:          []float64{},
		Resampled:      []float64{},
		Real:           []float64{},
		Imag:           []float64{},
		PSD:            []float64{},
	}
	if len(values) < 2 {
		return sp, nil
	}

	rr, ts := f.normalize(values), f.normalize(timestamps)

	start, end := ts[0], ts[len(ts)-1]
	size := int(math.Floor((end - start) * f.ResamplingRate))
	if size <= 0 {
		return sp, nil
	}
	sp.Times = make([]float64, size)
	for j := range sp.Times {
		sp.Times[j] = start + float64(j)/f.ResamplingRate
	}

	resampled, err := f.Interpolator.Interpolate(ts, rr, sp.Times)
	if err != nil {
		return nil, fmt.Errorf("compute spectrum: %w", err)
	}

	floats.AddConst(-stat.Mean(resampled, nil), resampled)
	floats.Scale(1000, resampled)
	f.Window.Apply(resampled)
	sp.Resampled = resampled

	sp.Real = make([]float64, size)
	copy(sp.Real, resampled)
	sp.Imag = make([]float64, size)
	if err := f.Transformer.Transform(sp.Real, sp.Imag); err != nil {
		return nil, fmt.Errorf("compute spectrum: %w", err)
	}

	half := size / 2
	sp.PSD = make([]float64, half)
	norm := f.SamplingRate * float64(size)
	for i := 0; i < half; i++ {
		sp.PSD[i] = (sp.Real[i]*sp.Real[i] + sp.Imag[i]*sp.Imag[i]) / norm
	}

	return sp, nil
}

// normalize returns x in seconds
func (f *FrequencyDomain) normalize(x []float64) []float64 {
	out := make([]float64, len(x))
	if f.Units == Samples {
		floats.ScaleTo(out, 1/f.SamplingRate, x)
	} else {
		copy(out, x)
	}
	return out
}
