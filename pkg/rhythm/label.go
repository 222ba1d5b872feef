// Package rhythm implements the rule-based episodic arrhythmia classifier
// that runs over a sequence of RR-interval durations.
package rhythm

import (
	"fmt"
	"strings"

	"github.com/chrissnell/cardiorhythm/pkg/ecg"
)

// Label is the working rhythm class assigned to each RR interval
type Label int

const (
	Unknown Label = iota
	Normal
	PVC // premature ventricular contraction
	VF  // ventricular flutter/fibrillation
	BII // second-degree heart block
)

func (l Label) String() string {
	switch l {
	case Normal:
		return "normal"
	case PVC:
		return "pvc"
	case VF:
		return "vf"
	case BII:
		return "bii"
	default:
		return "unknown"
	}
}

// MarshalText encodes the label by name
func (l Label) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText decodes a label name
func (l *Label) UnmarshalText(text []byte) error {
	for _, candidate := range []Label{Unknown, Normal, PVC, VF, BII} {
		if strings.EqualFold(candidate.String(), string(text)) {
			*l = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown rhythm label %q", text)
}

// Class collapses the working label onto the public ternary class
func (l Label) Class() ecg.Class {
	switch l {
	case Normal:
		return ecg.Normal
	case PVC, VF, BII:
		return ecg.Abnormal
	default:
		return ecg.Unknown
	}
}

// Episode is a contiguous run of intervals sharing one abnormal label.
// Start and End are inclusive interval indices.
type Episode struct {
	Label Label `json:"label"`
	Start int   `json:"start"`
	End   int   `json:"end"`
}

// Len returns the number of intervals in the episode
func (e Episode) Len() int {
	return e.End - e.Start + 1
}

// Episodes groups consecutive PVC, VF or BII labels into episodes
func Episodes(labels []Label) []Episode {
	var episodes []Episode
	for i := 0; i < len(labels); {
		l := labels[i]
		if l.Class() != ecg.Abnormal {
			i++
			continue
		}

		j := i
		for j+1 < len(labels) && labels[j+1] == l {
			j++
		}
		episodes = append(episodes, Episode{Label: l, Start: i, End: j})
		i = j + 1
	}
	return episodes
}
