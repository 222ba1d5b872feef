package spectral

import (
	"fmt"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Transformer computes the forward DFT of (re, im) in place. The arrays
// must have equal length; the length need not be a power of two.
type Transformer interface {
	Transform(re, im []float64) error
}

// GonumDFT uses gonum's mixed-radix complex FFT
type GonumDFT struct{}

// Transform implements Transformer
func (GonumDFT) Transform(re, im []float64) error {
	seq, err := pack(re, im)
	if err != nil || len(seq) == 0 {
		return err
	}

	coeff := fourier.NewCmplxFFT(len(seq)).Coefficients(nil, seq)
	unpack(coeff, re, im)
	return nil
}

// GoDSPDFT uses go-dsp, which falls back to Bluestein's algorithm for
// lengths that are not a power of two
type GoDSPDFT struct{}

// Transform implements Transformer
func (GoDSPDFT) Transform(re, im []float64) error {
	seq, err := pack(re, im)
	if err != nil || len(seq) == 0 {
		return err
	}

	unpack(fft.FFT(seq), re, im)
	return nil
}

func pack(re, im []float64) ([]complex128, error) {
	if len(re) != len(im) {
		return nil, fmt.Errorf("transform: real part has %d values, imaginary part %d", len(re), len(im))
	}
	seq := make([]complex128, len(re))
	for i := range re {
		seq[i] = complex(re[i], im[i])
	}
	return seq, nil
}

func unpack(seq []complex128, re, im []float64) {
	for i, c := range seq {
		re[i] = real(c)
		im[i] = imag(c)
	}
}
