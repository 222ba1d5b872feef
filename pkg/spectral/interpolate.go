// Package spectral provides the interpolation and discrete Fourier
// transform capabilities used by the frequency-domain HRV engine.
package spectral

import (
	"fmt"

	"gonum.org/v1/gonum/interp"
)

// Interpolator resamples an irregular series (xs, ys) onto grid and returns
// exactly one value per grid point, in grid order.
type Interpolator interface {
	Interpolate(xs, ys, grid []float64) ([]float64, error)
}

// predictor is satisfied by gonum's fitted interpolators
type predictor interface {
	Fit(xs, ys []float64) error
	Predict(x float64) float64
}

// Linear interpolates piecewise-linearly between knots
type Linear struct{}

// Interpolate implements Interpolator
func (Linear) Interpolate(xs, ys, grid []float64) ([]float64, error) {
	return fitPredict(&interp.PiecewiseLinear{}, xs, ys, grid)
}

// CubicSpline interpolates with a natural cubic spline. Fewer than three
// knots can't carry a cubic, so those series are interpolated linearly.
type CubicSpline struct{}

// Interpolate implements Interpolator
func (CubicSpline) Interpolate(xs, ys, grid []float64) ([]float64, error) {
	if len(xs) < 3 {
		return Linear{}.Interpolate(xs, ys, grid)
	}
	return fitPredict(&interp.NaturalCubic{}, xs, ys, grid)
}

func fitPredict(p predictor, xs, ys, grid []float64) ([]float64, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("interpolate: %d knots but %d values", len(xs), len(ys))
	}
	if len(grid) == 0 {
		return []float64{}, nil
	}
	if len(xs) < 2 {
		return nil, fmt.Errorf("interpolate: need at least 2 knots, got %d", len(xs))
	}
	// gonum panics on unordered knots
	for i := 1; i < len(xs); i++ {
		if !(xs[i] > xs[i-1]) {
			return nil, fmt.Errorf("interpolate: knots not strictly increasing at %d", i)
		}
	}

	if err := p.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("interpolate: %w", err)
	}

	out := make([]float64, len(grid))
	for i, x := range grid {
		out[i] = p.Predict(x)
	}
	return out, nil
}
