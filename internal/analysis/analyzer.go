// Package analysis runs the complete rhythm and HRV pipeline over a beat
// sequence and assembles the results into a Report.
package analysis

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chrissnell/cardiorhythm/pkg/config"
	"github.com/chrissnell/cardiorhythm/pkg/ecg"
	"github.com/chrissnell/cardiorhythm/pkg/hrv"
	"github.com/chrissnell/cardiorhythm/pkg/morphology"
	"github.com/chrissnell/cardiorhythm/pkg/rhythm"
	"github.com/chrissnell/cardiorhythm/pkg/spectral"
)

const (
	artifactKernel    = 5
	artifactTolerance = 0.2
)

// Analyzer holds the configured engines. It keeps no per-run state, so one
// Analyzer may serve concurrent requests.
type Analyzer struct {
	timeDomain *hrv.TimeDomain
	freqDomain *hrv.FrequencyDomain
	logger     *zap.SugaredLogger
	now        func() time.Time
}

// New builds an analyzer from the analysis configuration
func New(cfg config.AnalysisData, logger *zap.SugaredLogger) (*Analyzer, error) {
	interpolator, err := spectral.LookupInterpolator(cfg.Interpolation)
	if err != nil {
		return nil, fmt.Errorf("error creating analyzer: %w", err)
	}
	transformer, err := spectral.LookupTransformer(cfg.Transform)
	if err != nil {
		return nil, fmt.Errorf("error creating analyzer: %w", err)
	}
	window, err := hrv.ParseWindow(cfg.Window)
	if err != nil {
		return nil, fmt.Errorf("error creating analyzer: %w", err)
	}
	if cfg.SamplingRate <= 0 || cfg.ResamplingRate <= 0 {
		return nil, fmt.Errorf("error creating analyzer: sampling and resampling rates must be positive")
	}

	fd := hrv.NewFrequencyDomain(cfg.SamplingRate, cfg.ResamplingRate)
	fd.Interpolator = interpolator
	fd.Transformer = transformer
	fd.Window = window

	return &Analyzer{
		timeDomain: hrv.NewTimeDomain(cfg.SamplingRate),
		freqDomain: fd,
		logger:     logger,
		now:        time.Now,
	}, nil
}

// Analyze classifies every interval and beat and computes HRV statistics.
// Short sequences are not an error: they produce a report with Unknown
// classes and nil statistics.
func (a *Analyzer) Analyze(beats []ecg.Heartbeat) (*Report, error) {
	for i := 1; i < len(beats); i++ {
		if beats[i].Time <= beats[i-1].Time {
			return nil, fmt.Errorf("beat %d at %.3fs is not after beat %d at %.3fs", i, beats[i].Time, i-1, beats[i-1].Time)
		}
	}

	seq := ecg.Build(beats)
	rr := seq.Durations()

	if seq.Len() < 2 {
		a.logger.Warnf("only %d RR intervals from %d beats; statistics will be undefined", seq.Len(), len(beats))
	}

	labels := rhythm.Labels(rr)
	classes := make([]ecg.Class, len(labels))
	for i, l := range labels {
		classes[i] = l.Class()
	}

	beatClasses := make([]morphology.Classification, len(beats))
	for i, b := range beats {
		beatClasses[i] = morphology.ClassifyBeat(b)
	}

	spectrum, err := a.freqDomain.Compute(rr, seq.Timestamps())
	if err != nil {
		return nil, fmt.Errorf("frequency-domain analysis failed: %w", err)
	}

	report := &Report{
		ID:              uuid.NewString(),
		CreatedAt:       a.now().UTC(),
		BeatCount:       len(beats),
		Intervals:       rr,
		Rhythm:          classes,
		Labels:          labels,
		Episodes:        rhythm.Episodes(labels),
		Artifacts:       hrv.Artifacts(rr, artifactKernel, artifactTolerance),
		Beats:           beatClasses,
		TimeDomain:      newTimeDomainReport(a.timeDomain.Summarize(rr)),
		FrequencyDomain: newFrequencyDomainReport(spectrum),
	}

	a.logger.Debugf("analyzed %d beats into report %s: %d episodes, %d PSD bins",
		len(beats), report.ID, len(report.Episodes), len(spectrum.PSD))

	return report, nil
}
