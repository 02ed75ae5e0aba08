package filter

import (
	"math"

	"github.com/tmayer/go-stl-raytracer/pkg/core"
)

// MitchellFilter is a separable Mitchell-Netravali cubic reconstruction
// filter. The two shape coefficients B and C trade blurring against ringing;
// B = C = 1/3 is the recommended setting.
type MitchellFilter struct {
	halfWidth, halfHeight float64
	b, c                  float64
}

// NewMitchellFilter creates a Mitchell filter with the given support radii
// and shape coefficients
func NewMitchellFilter(halfWidth, halfHeight, b, c float64) *MitchellFilter {
	return &MitchellFilter{
		halfWidth:  halfWidth,
		halfHeight: halfHeight,
		b:          b,
		c:          c,
	}
}

// EvalAt evaluates the filter as the product of two 1D cubic polynomials of
// the normalized offset
func (f *MitchellFilter) EvalAt(p core.Vec2) float64 {
	if math.Abs(p.X) > f.halfWidth || math.Abs(p.Y) > f.halfHeight {
		return 0
	}
	return f.mitchell1D(p.X/f.halfWidth) * f.mitchell1D(p.Y/f.halfHeight)
}

// HalfWidth returns half the width of the filter support
func (f *MitchellFilter) HalfWidth() float64 {
	return f.halfWidth
}

// HalfHeight returns half the height of the filter support
func (f *MitchellFilter) HalfHeight() float64 {
	return f.halfHeight
}

// mitchell1D evaluates the piecewise cubic for x in [-1, 1], where the
// support has been normalized to the unit interval on each side
func (f *MitchellFilter) mitchell1D(x float64) float64 {
	b, c := f.b, f.c
	x = math.Abs(2 * x)
	if x > 1 {
		return ((-b-6*c)*x*x*x + (6*b+30*c)*x*x + (-12*b-48*c)*x + (8*b + 24*c)) * (1.0 / 6.0)
	}
	return ((12-9*b-6*c)*x*x*x + (-18+12*b+6*c)*x*x + (6 - 2*b)) * (1.0 / 6.0)
}
