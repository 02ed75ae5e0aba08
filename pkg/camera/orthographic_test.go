package camera

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tmayer/go-stl-raytracer/pkg/core"
)

func newTestCamera() *OrthographicCamera {
	return NewOrthographicCamera(core.Identity(), 0, 10, core.NewVec2(2, 2), image.Pt(100, 100))
}

func TestOrthographicCamera_ParallelRays(t *testing.T) {
	c := newTestCamera()

	corner := c.GenerateRay(core.CameraSample{FilmPoint: core.NewVec2(0, 0)})
	center := c.GenerateRay(core.CameraSample{FilmPoint: core.NewVec2(50, 50)})

	assert.Equal(t, corner.Direction, center.Direction)
	assert.Equal(t, core.NewVec3(0, 0, 1), center.Direction)
	assert.Equal(t, 10.0, center.TMax)
}

func TestOrthographicCamera_FilmToScreenMapping(t *testing.T) {
	c := newTestCamera()

	tests := []struct {
		name      string
		filmPoint core.Vec2
		expected  core.Vec3
	}{
		{"film center maps to screen origin", core.NewVec2(50, 50), core.NewVec3(0, 0, 0)},
		{"top-left film corner maps to (-w/2, +h/2)", core.NewVec2(0, 0), core.NewVec3(-1, 1, 0)},
		{"bottom-right film corner maps to (+w/2, -h/2)", core.NewVec2(100, 100), core.NewVec3(1, -1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := c.GenerateRay(core.CameraSample{FilmPoint: tt.filmPoint})
			assert.InDelta(t, tt.expected.X, ray.Origin.X, 1e-12)
			assert.InDelta(t, tt.expected.Y, ray.Origin.Y, 1e-12)
			assert.InDelta(t, tt.expected.Z, ray.Origin.Z, 1e-12)
		})
	}
}

func TestOrthographicCamera_CameraToWorld(t *testing.T) {
	cameraToWorld := core.Translate(core.NewVec3(0, 0, -5))
	c := NewOrthographicCamera(cameraToWorld, 0, 10, core.NewVec2(2, 2), image.Pt(100, 100))

	ray := c.GenerateRay(core.CameraSample{FilmPoint: core.NewVec2(50, 50)})
	assert.Equal(t, core.NewVec3(0, 0, -5), ray.Origin)
	assert.Equal(t, core.NewVec3(0, 0, 1), ray.Direction)
}

func TestOrthographicCamera_RayDifferentials(t *testing.T) {
	c := newTestCamera()

	sample := core.CameraSample{FilmPoint: core.NewVec2(50, 50)}
	ray, rd := c.GenerateRayDifferential(sample)

	// One pixel is 2/100 screen units wide; y is flipped.
	assert.InDelta(t, ray.Origin.X+0.02, rd.DxOrigin.X, 1e-12)
	assert.InDelta(t, ray.Origin.Y, rd.DxOrigin.Y, 1e-12)
	assert.InDelta(t, ray.Origin.Y-0.02, rd.DyOrigin.Y, 1e-12)
	assert.Equal(t, ray.Direction, rd.DxDirection)
	assert.Equal(t, ray.Direction, rd.DyDirection)
}
