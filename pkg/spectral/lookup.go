package spectral

import "fmt"

const (
	InterpolationLinear = "linear"
	InterpolationCubic  = "cubic"

	TransformGonum = "gonum"
	TransformGoDSP = "godsp"
)

// LookupInterpolator returns the interpolator registered under name
func LookupInterpolator(name string) (Interpolator, error) {
	switch name {
	case InterpolationLinear:
		return Linear{}, nil
	case InterpolationCubic, "":
		return CubicSpline{}, nil
	default:
		return nil, fmt.Errorf("unknown interpolation %q", name)
	}
}

// LookupTransformer returns the transform registered under name
func LookupTransformer(name string) (Transformer, error) {
	switch name {
	case TransformGonum, "":
		return GonumDFT{}, nil
	case TransformGoDSP:
		return GoDSPDFT{}, nil
	default:
		return nil, fmt.Errorf("unknown transform %q", name)
	}
}
