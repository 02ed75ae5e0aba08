package camera

import (
	"image"

	"github.com/tmayer/go-stl-raytracer/pkg/core"
)

// OrthographicCamera generates parallel rays of fixed direction. The film
// sample is mapped linearly onto a screen-space rectangle and the resulting
// camera-space ray is taken to world space by a fixed camera-to-world
// transform. TMax is bounded by the near/far clip range.
type OrthographicCamera struct {
	cameraToWorld core.Matrix4
	zNear, zFar   float64
	screenSize    core.Vec2
	resolution    image.Point
}

// NewOrthographicCamera creates an orthographic camera.
//
// screenSize is the width and height of the screen-space rectangle the film
// maps onto; it is typically sized to the image aspect ratio. zNear and zFar
// bound the rendered depth range in camera space.
func NewOrthographicCamera(cameraToWorld core.Matrix4, zNear, zFar float64, screenSize core.Vec2, resolution image.Point) *OrthographicCamera {
	return &OrthographicCamera{
		cameraToWorld: cameraToWorld,
		zNear:         zNear,
		zFar:          zFar,
		screenSize:    screenSize,
		resolution:    resolution,
	}
}

// cameraSpaceRay maps the film point onto the screen rectangle and returns
// the camera-space ray through it
func (c *OrthographicCamera) cameraSpaceRay(filmPoint core.Vec2) core.Ray {
	origin := core.NewVec3(
		filmPoint.X/float64(c.resolution.X)*c.screenSize.X-c.screenSize.X/2,
		c.screenSize.Y/2-filmPoint.Y/float64(c.resolution.Y)*c.screenSize.Y,
		c.zNear,
	)
	return core.NewRay(origin, core.NewVec3(0, 0, 1), c.zFar-c.zNear)
}

// GenerateRay returns the world-space ray for the given camera sample
func (c *OrthographicCamera) GenerateRay(sample core.CameraSample) core.Ray {
	return c.cameraToWorld.TransformRay(c.cameraSpaceRay(sample.FilmPoint))
}

// GenerateRayDifferential re-derives rays for samples offset by one pixel in
// film x and film y
func (c *OrthographicCamera) GenerateRayDifferential(sample core.CameraSample) (core.Ray, core.RayDifferential) {
	ray := c.cameraSpaceRay(sample.FilmPoint)
	dx := c.cameraSpaceRay(sample.FilmPoint.Add(core.NewVec2(1, 0)))
	dy := c.cameraSpaceRay(sample.FilmPoint.Add(core.NewVec2(0, 1)))

	differential := core.RayDifferential{
		DxOrigin:    dx.Origin,
		DxDirection: dx.Direction,
		DyOrigin:    dy.Origin,
		DyDirection: dy.Direction,
	}
	return c.cameraToWorld.TransformRay(ray), c.cameraToWorld.TransformRayDifferential(differential)
}
