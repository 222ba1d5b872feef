// Package morphology classifies individual beats from the shape of their
// QRS complex and their PQ interval.
package morphology

import (
	"errors"
	"fmt"
	"math"

	"github.com/chrissnell/cardiorhythm/pkg/ecg"
)

const (
	MinQRSWidth = 0.05 // seconds
	MaxQRSWidth = 0.13 // seconds
	MaxQToR     = 0.35
	MaxPQ       = 0.25 // seconds

	// R amplitudes closer than this to the baseline make the Q/R ratio meaningless
	minRDeflection = 1e-9
)

// Classification is the verdict for one beat. Reason is empty for normal beats.
type Classification struct {
	Class  ecg.Class `json:"class"`
	Reason string    `json:"reason,omitempty"`
}

// Input is one of QRSInput, BeatInput, QRSBatch or BeatBatch
type Input interface {
	isInput()
}

// QRSInput classifies a bare QRS complex
type QRSInput struct{ QRS ecg.QRSComplex }

// BeatInput classifies a full heartbeat, including its PQ interval
type BeatInput struct{ Beat ecg.Heartbeat }

// QRSBatch is a list of QRS complexes. Batch classification is not supported;
// use the rhythm package for sequence-level decisions.
type QRSBatch []ecg.QRSComplex

// BeatBatch is a list of heartbeats. Batch classification is not supported.
type BeatBatch []ecg.Heartbeat

func (QRSInput) isInput()  {}
func (BeatInput) isInput() {}
func (QRSBatch) isInput()  {}
func (BeatBatch) isInput() {}

// Classify dispatches on the input variant. Single-beat variants always
// return exactly one classification.
func Classify(in Input) ([]Classification, error) {
	switch v := in.(type) {
	case QRSInput:
		return []Classification{ClassifyQRS(v.QRS)}, nil
	case BeatInput:
		return []Classification{ClassifyBeat(v.Beat)}, nil
	case QRSBatch:
		return nil, fmt.Errorf("classify %d QRS complexes: %w", len(v), errors.ErrUnsupported)
	case BeatBatch:
		return nil, fmt.Errorf("classify %d heartbeats: %w", len(v), errors.ErrUnsupported)
	default:
		return nil, fmt.Errorf("classify %T: %w", in, errors.ErrUnsupported)
	}
}

// ClassifyQRS checks QRS width and then the Q-to-R amplitude ratio
func ClassifyQRS(q ecg.QRSComplex) Classification {
	width := q.Width()
	if width < MinQRSWidth || width > MaxQRSWidth {
		return Classification{
			Class:  ecg.Abnormal,
			Reason: fmt.Sprintf("QRS width %.3fs", width),
		}
	}

	rDeflection := math.Abs(q.R - q.Baseline)
	if rDeflection < minRDeflection {
		return Classification{
			Class:  ecg.Abnormal,
			Reason: "R amplitude at baseline",
		}
	}

	q2r := math.Abs(q.Q-q.Baseline) / rDeflection
	if q2r > MaxQToR {
		return Classification{
			Class:  ecg.Abnormal,
			Reason: fmt.Sprintf("Q/R ratio %.2f", q2r),
		}
	}

	return Classification{Class: ecg.Normal}
}

// ClassifyBeat classifies the beat's QRS complex and, if that is normal,
// checks for a prolonged PQ interval.
func ClassifyBeat(b ecg.Heartbeat) Classification {
	c := ClassifyQRS(b.QRS)
	if c.Class == ecg.Abnormal {
		return c
	}

	if b.PQ > 0 && b.PQ > MaxPQ {
		return Classification{
			Class:  ecg.Abnormal,
			Reason: fmt.Sprintf("PQ interval %.3fs", b.PQ),
		}
	}

	return Classification{Class: ecg.Normal}
}
