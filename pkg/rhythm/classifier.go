package rhythm

import (
	"math"

	"github.com/chrissnell/cardiorhythm/pkg/ecg"
)

// Labels assigns a working label to every RR interval in rr (seconds).
// The first two and the last index lack the neighbours the rules need and
// always come back Unknown.
func Labels(rr []float64) []Label {
	n := len(rr)
	labels := make([]Label, n)
	for i := range labels {
		labels[i] = Normal
	}

	for i := 1; i <= n-2; i++ {
		if labels[i] != Normal {
			continue
		}

		if vfTriggered(rr, i) {
			scan := scanVF(rr, labels, i)
			if scan.state == stateConfirmed {
				i = scan.end
				continue
			}
		}

		switch {
		case isPVC(rr[i-1], rr[i], rr[i+1]):
			labels[i] = PVC
		case isBII(rr[i-1], rr[i], rr[i+1]):
			labels[i] = BII
		}
	}

	if n > 0 {
		labels[0] = Unknown
		labels[n-1] = Unknown
	}
	if n > 1 {
		labels[1] = Unknown
	}

	return labels
}

// Classify returns the public class for every RR interval in rr (seconds)
func Classify(rr []float64) []ecg.Class {
	labels := Labels(rr)
	classes := make([]ecg.Class, len(labels))
	for i, l := range labels {
		classes[i] = l.Class()
	}
	return classes
}

func isPVC(rr1, rr2, rr3 float64) bool {
	if 1.15*rr2 < rr1 && 1.15*rr2 < rr3 {
		return true
	}
	if math.Abs(rr1-rr2) < 0.3 && rr1 < 0.8 && rr2 < 0.8 && rr3 > 1.2*(rr1+rr2)/2 {
		return true
	}
	if math.Abs(rr2-rr3) < 0.3 && rr2 < 0.8 && rr3 < 0.8 && rr1 > 1.2*(rr2+rr3)/2 {
		return true
	}
	return false
}

func isBII(rr1, rr2, rr3 float64) bool {
	return rr2 > 2.2 && rr2 < 3.0 && (math.Abs(rr1-rr2) < 0.2 || math.Abs(rr2-rr3) < 0.2)
}
