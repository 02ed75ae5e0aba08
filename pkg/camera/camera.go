// Package camera maps film-plane samples to world-space rays.
package camera

import "github.com/tmayer/go-stl-raytracer/pkg/core"

// Camera turns a camera sample into a world-space ray
type Camera interface {
	// GenerateRay returns the world-space ray for the given sample
	GenerateRay(sample core.CameraSample) core.Ray

	// GenerateRayDifferential returns the primary ray together with the
	// differential rays for samples offset by one pixel in film x and y
	GenerateRayDifferential(sample core.CameraSample) (core.Ray, core.RayDifferential)
}
