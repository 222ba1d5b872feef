package analysis

import (
	"math"
	"time"

	"github.com/chrissnell/cardiorhythm/pkg/ecg"
	"github.com/chrissnell/cardiorhythm/pkg/hrv"
	"github.com/chrissnell/cardiorhythm/pkg/morphology"
	"github.com/chrissnell/cardiorhythm/pkg/rhythm"
)

// Report is the full analysis of one beat sequence. Statistics that are
// undefined for the input (too few intervals) are nil.
type Report struct {
	ID              string                      `json:"id"`
	CreatedAt       time.Time                   `json:"created_at"`
	BeatCount       int                         `json:"beat_count"`
	Intervals       []float64                   `json:"intervals"` // seconds
	Rhythm          []ecg.Class                 `json:"rhythm"`
	Labels          []rhythm.Label              `json:"labels"`
	Episodes        []rhythm.Episode            `json:"episodes"`
	Artifacts       []int                       `json:"artifacts"` // interval indices far from the local median
	Beats           []morphology.Classification `json:"beats"`
	TimeDomain      TimeDomainReport            `json:"time_domain"`
	FrequencyDomain FrequencyDomainReport       `json:"frequency_domain"`
}

// TimeDomainReport carries hrv.TimeStats with NaN mapped to nil
type TimeDomainReport struct {
	Count         int      `json:"count"`
	MeanRR        *float64 `json:"mean_rr_ms"`
	MeanHeartRate *float64 `json:"mean_heart_rate_bpm"`
	SDNN          *float64 `json:"sdnn_ms"`
	RMSSD         *float64 `json:"rmssd_ms"`
	SDSD          *float64 `json:"sdsd_ms"`
	NN50          int      `json:"nn50"`
	PNN50         *float64 `json:"pnn50"`
	SD1           *float64 `json:"sd1_ms"`
	SD2           *float64 `json:"sd2_ms"`
}

// FrequencyDomainReport carries the PSD and its band summary
type FrequencyDomainReport struct {
	ResamplingRate float64   `json:"resampling_rate"`
	Resolution     float64   `json:"resolution_hz"`
	PSD            []float64 `json:"psd"`
	VLF            *float64  `json:"vlf"`
	LF             *float64  `json:"lf"`
	HF             *float64  `json:"hf"`
	Total          *float64  `json:"total"`
	LFHF           *float64  `json:"lf_hf"`
	LFNorm         *float64  `json:"lf_nu"`
	HFNorm         *float64  `json:"hf_nu"`
	PeakLF         *float64  `json:"peak_lf_hz"`
	PeakHF         *float64  `json:"peak_hf_hz"`
}

// Summary is the listing form of a stored report
type Summary struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	BeatCount int       `json:"beat_count"`
	Abnormal  int       `json:"abnormal_intervals"`
}

// Summary condenses the report for listings
func (r *Report) Summary() Summary {
	abnormal := 0
	for _, c := range r.Rhythm {
		if c == ecg.Abnormal {
			abnormal++
		}
	}
	return Summary{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		BeatCount: r.BeatCount,
		Abnormal:  abnormal,
	}
}

func newTimeDomainReport(ts hrv.TimeStats) TimeDomainReport {
	return TimeDomainReport{
		Count:         ts.Count,
		MeanRR:        finite(ts.MeanRR),
		MeanHeartRate: finite(ts.MeanHeartRate),
		SDNN:          finite(ts.SDNN),
		RMSSD:         finite(ts.RMSSD),
		SDSD:          finite(ts.SDSD),
		NN50:          ts.NN50,
		PNN50:         finite(ts.PNN50),
		SD1:           finite(ts.SD1),
		SD2:           finite(ts.SD2),
	}
}

func newFrequencyDomainReport(sp *hrv.Spectrum) FrequencyDomainReport {
	r := FrequencyDomainReport{
		ResamplingRate: sp.ResamplingRate,
		Resolution:     sp.Resolution(),
		PSD:            sp.PSD,
	}
	if len(sp.PSD) == 0 {
		return r
	}

	b := sp.Bands()
	r.VLF = finite(b.VLF)
	r.LF = finite(b.LF)
	r.HF = finite(b.HF)
	r.Total = finite(b.Total)
	r.LFHF = finite(b.LFHF)
	r.LFNorm = finite(b.LFNorm)
	r.HFNorm = finite(b.HFNorm)
	r.PeakLF = finite(b.PeakLF)
	r.PeakHF = finite(b.PeakHF)
	return r
}

// finite returns nil for NaN and infinities, which JSON can't carry
func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
