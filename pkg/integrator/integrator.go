// Package integrator drives the per-pixel render loop and computes the
// radiance carried by camera rays.
package integrator

import (
	"github.com/tmayer/go-stl-raytracer/pkg/core"
	"github.com/tmayer/go-stl-raytracer/pkg/sampler"
	"github.com/tmayer/go-stl-raytracer/pkg/scene"
)

// Integrator computes the radiance arriving along a ray. Different
// implementations trade accuracy for cost; the render loop treats them
// interchangeably.
type Integrator interface {
	// RayColor returns the radiance arriving at the ray origin along
	// -ray.Direction. depth counts the bounces taken so far and maxDepth
	// bounds recursion for implementations that recurse; implementations
	// that never spawn secondary rays may ignore both.
	RayColor(ray core.Ray, sc *scene.Scene, smp sampler.Sampler, depth, maxDepth int) core.Spectrum
}
