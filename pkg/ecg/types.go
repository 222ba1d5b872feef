// Package ecg holds the beat-level data model shared by the rhythm,
// morphology and HRV packages, along with the RR-interval sequence builder.
package ecg

import (
	"fmt"
	"strings"
)

// QRSComplex describes the ventricular deflection of a single beat.
// Times are in seconds, amplitudes are in the detector's native units.
type QRSComplex struct {
	Onset    float64 `json:"onset"`
	Offset   float64 `json:"offset"`
	Q        float64 `json:"q"`
	R        float64 `json:"r"`
	Baseline float64 `json:"baseline"`
	RR       float64 `json:"rr"` // RR interval to the previous beat, seconds
}

// Width returns the QRS duration in seconds
func (q QRSComplex) Width() float64 {
	return q.Offset - q.Onset
}

// Heartbeat is one beat reported by the upstream QRS detector
type Heartbeat struct {
	Time float64    `json:"time"` // R-peak time, seconds from start of recording
	QRS  QRSComplex `json:"qrs"`
	PQ   float64    `json:"pq"` // PQ interval in seconds; <= 0 means not measured
}

// Class is the public rhythm/beat classification
type Class int

const (
	Unknown Class = iota
	Normal
	Abnormal
)

func (c Class) String() string {
	switch c {
	case Normal:
		return "normal"
	case Abnormal:
		return "abnormal"
	default:
		return "unknown"
	}
}

// MarshalText encodes the class by name so reports stay readable
func (c Class) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a class name
func (c *Class) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "unknown":
		*c = Unknown
	case "normal":
		*c = Normal
	case "abnormal":
		*c = Abnormal
	default:
		return fmt.Errorf("unknown class %q", text)
	}
	return nil
}
