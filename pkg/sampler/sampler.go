// Package sampler generates sequences of n-dimensional sample vectors, where
// each element of a sample vector is in [0, 1). A sampler produces up to a
// fixed number of sample vectors per pixel.
//
// By convention the first five dimensions of a sample vector are consumed by
// the camera: the (x, y) position on the film, the time, and the (u, v)
// position on the lens.
package sampler

import (
	"image"
	"math"

	"github.com/tmayer/go-stl-raytracer/pkg/core"
)

// OneMinusEpsilon is the largest value a sample may take, keeping every
// sample strictly below 1.
var OneMinusEpsilon = math.Nextafter(1, 0)

// Sampler generates a single 1D or 2D sample of the current sample vector at
// a time.
type Sampler interface {
	// SamplesPerPixel returns the number of sample vectors generated for
	// each pixel in the image.
	SamplesPerPixel() int

	// StartPixel resets the sampler to produce samples for the given
	// pixel. All subsequent requests generate samples for that pixel
	// until StartPixel is called again.
	StartPixel(pixel image.Point)

	// Get1D returns a value in [0, 1) for the next dimension of the
	// current sample vector, advancing the dimension cursor by one.
	Get1D() float64

	// Get2D returns a value in [0, 1)^2 for the next two dimensions of
	// the current sample vector, advancing the dimension cursor by two.
	Get2D() core.Vec2

	// StartNextSample advances to the next sample vector for the current
	// pixel and resets the dimension cursor. It must be called before
	// each sample vector is consumed, including the first. It returns
	// false once SamplesPerPixel sample vectors have been produced; the
	// caller must not request further samples after that.
	StartNextSample() bool

	// CloneWithSeed returns an independently seeded sampler with
	// otherwise identical configuration, so that concurrent workers can
	// render disjoint pixels without sharing generator state.
	CloneWithSeed(seed int64) Sampler
}

// GetCameraSample consumes a 2D sample for the film offset, a 1D sample for
// the time, and a 2D sample for the lens point, producing the camera sample
// for the current sample vector at the given pixel.
//
// Each film offset component is in [0, 1), so the continuous film point is in
// [px, px+1) x [py, py+1).
func GetCameraSample(s Sampler, pixel image.Point) core.CameraSample {
	filmOffset := s.Get2D()
	filmPoint := core.NewVec2(float64(pixel.X)+filmOffset.X, float64(pixel.Y)+filmOffset.Y)
	time := s.Get1D()
	lensPoint := s.Get2D()
	return core.CameraSample{
		FilmPoint: filmPoint,
		Time:      time,
		LensPoint: lensPoint,
	}
}
