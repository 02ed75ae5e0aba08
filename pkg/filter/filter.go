// Package filter provides image reconstruction kernels. A filter is centered
// at the origin and maps a 2D offset to a scalar weight; outside its support
// rectangle the weight is zero.
package filter

import "github.com/tmayer/go-stl-raytracer/pkg/core"

// Filter is a rectangular reconstruction kernel centered at (0, 0)
type Filter interface {
	// EvalAt returns the filter weight for the given offset from the
	// filter center. It returns 0 for any offset outside
	// [-HalfWidth, HalfWidth] x [-HalfHeight, HalfHeight].
	EvalAt(p core.Vec2) float64

	// HalfWidth returns half the width of the filter support
	HalfWidth() float64

	// HalfHeight returns half the height of the filter support
	HalfHeight() float64
}
