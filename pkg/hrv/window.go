package hrv

import (
	"fmt"
	"math"
)

// Window tapers a series in place before the transform
type Window int

const (
	Hamming Window = iota
	Hanning
	NoWindow
)

func (w Window) String() string {
	switch w {
	case Hamming:
		return "hamming"
	case Hanning:
		return "hanning"
	default:
		return "none"
	}
}

// ParseWindow maps a configuration name onto a Window
func ParseWindow(name string) (Window, error) {
	switch name {
	case "hamming", "":
		return Hamming, nil
	case "hanning", "hann":
		return Hanning, nil
	case "none":
		return NoWindow, nil
	default:
		return NoWindow, fmt.Errorf("unknown window %q", name)
	}
}

// Apply multiplies y by the window coefficients. The coefficients use the
// full length as the period, 2πj/size, not the symmetric size-1 form.
func (w Window) Apply(y []float64) {
	size := float64(len(y))
	switch w {
	case Hamming:
		for j := range y {
			y[j] *= 0.54 - 0.46*math.Cos(2*math.Pi*float64(j)/size)
		}
	case Hanning:
		for j := range y {
			y[j] *= 0.5 - 0.5*math.Cos(2*math.Pi*float64(j)/size)
		}
	}
}
