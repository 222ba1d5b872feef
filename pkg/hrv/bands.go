package hrv

import "math"

// Standard short-term HRV frequency bands, Hz
const (
	VLFLow  = 0.0033
	VLFHigh = 0.04
	LFLow   = 0.04
	LFHigh  = 0.15
	HFLow   = 0.15
	HFHigh  = 0.4
)

// BandPowers summarizes the PSD over the standard bands
type BandPowers struct {
	VLF    float64
	LF     float64
	HF     float64
	Total  float64
	LFHF   float64 // LF/HF ratio, NaN when HF is zero
	LFNorm float64 // LF/(LF+HF), normalized units
	HFNorm float64
	PeakLF float64 // Hz
	PeakHF float64 // Hz
}

// Frequency returns the frequency in Hz of PSD bin i
func (s *Spectrum) Frequency(i int) float64 {
	if len(s.Resampled) == 0 {
		return 0
	}
	return float64(i) * s.ResamplingRate / float64(len(s.Resampled))
}

// Resolution returns the width of one PSD bin in Hz
func (s *Spectrum) Resolution() float64 {
	return s.Frequency(1)
}

// BandPower integrates the PSD over [lo, hi) Hz
func (s *Spectrum) BandPower(lo, hi float64) float64 {
	power := 0.0
	df := s.Resolution()
	for i, p := range s.PSD {
		f := s.Frequency(i)
		if f >= lo && f < hi {
			power += p * df
		}
	}
	return power
}

// PeakFrequency returns the frequency of the largest PSD bin in [lo, hi) Hz,
// or NaN if the band holds no bins
func (s *Spectrum) PeakFrequency(lo, hi float64) float64 {
	peak := math.NaN()
	best := math.Inf(-1)
	for i, p := range s.PSD {
		f := s.Frequency(i)
		if f >= lo && f < hi && p > best {
			best = p
			peak = f
		}
	}
	return peak
}

// Bands computes VLF, LF and HF power and their derived ratios
func (s *Spectrum) Bands() BandPowers {
	b := BandPowers{
		VLF:    s.BandPower(VLFLow, VLFHigh),
		LF:     s.BandPower(LFLow, LFHigh),
		HF:     s.BandPower(HFLow, HFHigh),
		PeakLF: s.PeakFrequency(LFLow, LFHigh),
		PeakHF: s.PeakFrequency(HFLow, HFHigh),
	}
	b.Total = b.VLF + b.LF + b.HF

	b.LFHF, b.LFNorm, b.HFNorm = math.NaN(), math.NaN(), math.NaN()
	if b.HF > 0 {
		b.LFHF = b.LF / b.HF
	}
	if b.LF+b.HF > 0 {
		b.LFNorm = b.LF / (b.LF + b.HF)
		b.HFNorm = b.HF / (b.LF + b.HF)
	}
	return b
}
