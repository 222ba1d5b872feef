package hrv

import (
	"math"
	"testing"
)

const testSamplingRate = 250.0

func TestTimeDomainStatistics(t *testing.T) {
	td := NewTimeDomain(testSamplingRate)
	rr := []float64{0.8, 0.85, 0.9}

	tests := []struct {
		name     string
		got      float64
		expected float64
	}{
		// sample std of {0.8, 0.85, 0.9} is exactly 0.05
		{name: "SDNN", got: td.SDNN(rr), expected: 50},
		{name: "RMSSD", got: td.RMSSD(rr), expected: 1000 * math.Sqrt((0.05*0.05+0.05*0.05)/2)},
		{name: "RMSSD from samples", got: td.RMSSDSamples([]float64{200, 212.5, 225}), expected: 50},
		{name: "mean heart rate", got: td.MeanHeartRate([]float64{200, 250, 187}), expected: 60 / ((637.0 / 3) / testSamplingRate)},
		{name: "pNN50", got: td.PNN50([]float64{800, 870, 860, 930}), expected: 2.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.expected) > 1e-6 {
				t.Errorf("expected %.6f, got %.6f", tt.expected, tt.got)
			}
		})
	}
}

func TestHeartRates(t *testing.T) {
	td := NewTimeDomain(testSamplingRate)

	rates := td.HeartRates([]float64{200, 250, 187, 0})
	expected := []int{75, 60, 80, 0}

	if len(rates) != len(expected) {
		t.Fatalf("expected %d rates, got %d", len(expected), len(rates))
	}
	for i := range rates {
		if rates[i] != expected[i] {
			t.Errorf("interval %d: expected %d bpm, got %d", i, expected[i], rates[i])
		}
	}

	// Mean of the rates is not the rate of the mean interval
	mean := td.MeanHeartRate([]float64{200, 250, 187})
	if math.Abs(mean-(75.0+60.0+80.0)/3) < 0.5 {
		t.Errorf("mean heart rate %.3f should differ from the mean of per-beat rates", mean)
	}
}

func TestNN50ComparesMilliseconds(t *testing.T) {
	td := NewTimeDomain(testSamplingRate)

	tests := []struct {
		name     string
		millis   []float64
		expected int
	}{
		{name: "exactly 50 is not counted", millis: []float64{800, 850, 900}, expected: 0},
		{name: "two large differences", millis: []float64{800, 870, 860, 930}, expected: 2},
		{name: "negative differences count", millis: []float64{900, 800, 700}, expected: 2},
		{name: "single interval", millis: []float64{800}, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := td.NN50(tt.millis); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestPoincare(t *testing.T) {
	td := NewTimeDomain(testSamplingRate)

	// successive differences 12.5, 12.5, -12.5 samples
	sd1, sd2 := td.Poincare([]float64{200, 212.5, 225, 212.5})

	sdsd := math.Sqrt(625.0/3) * 1000 / testSamplingRate
	sdnn := math.Sqrt(312.5/3) * 1000 / testSamplingRate

	if math.Abs(sd1-sdsd/math.Sqrt2) > 1e-6 {
		t.Errorf("SD1: expected %.4f, got %.4f", sdsd/math.Sqrt2, sd1)
	}
	want := math.Sqrt(2*sdnn*sdnn - 0.5*sdsd*sdsd)
	if math.Abs(sd2-want) > 1e-6 {
		t.Errorf("SD2: expected %.4f, got %.4f", want, sd2)
	}
}

func TestInsufficientData(t *testing.T) {
	td := NewTimeDomain(testSamplingRate)

	for _, rr := range [][]float64{nil, {0.8}} {
		if !math.IsNaN(td.SDNN(rr)) {
			t.Errorf("SDNN(%v) should be NaN", rr)
		}
		if !math.IsNaN(td.RMSSD(rr)) {
			t.Errorf("RMSSD(%v) should be NaN", rr)
		}
		if !math.IsNaN(td.PNN50(rr)) {
			t.Errorf("PNN50(%v) should be NaN", rr)
		}
		sd1, sd2 := td.Poincare(rr)
		if !math.IsNaN(sd1) || !math.IsNaN(sd2) {
			t.Errorf("Poincare(%v) should be NaN, got %v %v", rr, sd1, sd2)
		}
	}

	if !math.IsNaN(td.MeanHeartRate(nil)) {
		t.Errorf("MeanHeartRate(nil) should be NaN")
	}
	if td.HeartRates(nil) != nil {
		t.Errorf("HeartRates(nil) should be nil")
	}

	s := td.Summarize([]float64{0.8})
	if s.Count != 1 || s.NN50 != 0 || !math.IsNaN(s.SDNN) {
		t.Errorf("unexpected summary for a single interval: %+v", s)
	}
}

func TestSummarize(t *testing.T) {
	td := NewTimeDomain(testSamplingRate)
	rr := []float64{0.8, 0.87, 0.86, 0.93}

	s := td.Summarize(rr)

	if s.Count != 4 {
		t.Errorf("expected count 4, got %d", s.Count)
	}
	if math.Abs(s.MeanRR-865) > 1e-6 {
		t.Errorf("expected mean RR 865 ms, got %.4f", s.MeanRR)
	}
	if math.Abs(s.MeanHeartRate-60/0.865) > 1e-6 {
		t.Errorf("expected mean HR %.4f, got %.4f", 60/0.865, s.MeanHeartRate)
	}
	if math.Abs(s.SDNN-td.SDNN(rr)) > 1e-9 {
		t.Errorf("SDNN mismatch: %.4f vs %.4f", s.SDNN, td.SDNN(rr))
	}
	if s.NN50 != 2 {
		t.Errorf("expected NN50 2, got %d", s.NN50)
	}
	// The sample-domain statistics must agree with the seconds-domain ones
	samples := []float64{200, 217.5, 215, 232.5}
	if math.Abs(s.RMSSD-td.RMSSDSamples(samples)) > 1e-6 {
		t.Errorf("RMSSD %.6f disagrees with sample form %.6f", s.RMSSD, td.RMSSDSamples(samples))
	}
}
