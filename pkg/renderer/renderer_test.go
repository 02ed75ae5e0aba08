package renderer

import (
	"bytes"
	"context"
	"encoding/binary"
	"image"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmayer/go-stl-raytracer/pkg/core"
	"github.com/tmayer/go-stl-raytracer/pkg/geometry"
)

func assertVec3InDelta(t *testing.T, want, got core.Vec3, delta float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta)
	assert.InDelta(t, want.Y, got.Y, delta)
	assert.InDelta(t, want.Z, got.Z, delta)
}

func TestSphericalPosition(t *testing.T) {
	tests := []struct {
		name         string
		position     Spherical
		wantOrigin   core.Vec3
		wantForwards core.Vec3
	}{
		{
			"above the north pole",
			Spherical{Radius: 1, Theta: 0, Phi: 0},
			core.NewVec3(0, 0, 1),
			core.NewVec3(0, 0, -1),
		},
		{
			"on the equator",
			Spherical{Radius: 1, Theta: 90, Phi: 0},
			core.NewVec3(1, 0, 0),
			core.NewVec3(-1, 0, 0),
		},
		{
			"equator, quarter turn",
			Spherical{Radius: 2, Theta: 90, Phi: 90},
			core.NewVec3(0, -2, 0),
			core.NewVec3(0, 1, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := sphericalPosition(tt.position)

			// A camera placed at the transformed origin and looking
			// along its +z axis faces the world origin.
			assertVec3InDelta(t, tt.wantOrigin, m.TransformPoint(core.Vec3{}), 1e-12)
			assertVec3InDelta(t, tt.wantForwards, m.TransformVector(core.NewVec3(0, 0, 1)), 1e-12)
		})
	}
}

func TestOrthographicScreenSize(t *testing.T) {
	assert.Equal(t, core.NewVec2(2, 2), orthographicScreenSize(1))
	assert.Equal(t, core.NewVec2(4, 2), orthographicScreenSize(2))
	assert.Equal(t, core.NewVec2(2, 4), orthographicScreenSize(0.5))
}

func TestNormalizeMesh(t *testing.T) {
	positions := []core.Vec3{
		core.NewVec3(2, 2, 2),
		core.NewVec3(6, 2, 2),
		core.NewVec3(2, 6, 2),
	}
	up := core.NewVec3(0, 0, 1)
	mesh, err := geometry.NewMesh(positions, []core.Vec3{up, up, up}, nil, [][3]int{{0, 1, 2}})
	require.NoError(t, err)

	require.NoError(t, normalizeMesh(mesh, LeftHanded))

	// Centered on the origin and scaled so the farthest vertex sits on
	// the unit sphere.
	bounds, ok := mesh.BoundingBox()
	require.True(t, ok)
	assertVec3InDelta(t, core.Vec3{}, bounds.Center(), 1e-12)

	farthest := 0.0
	for _, p := range mesh.Positions {
		farthest = math.Max(farthest, p.Length())
	}
	assert.InDelta(t, 1.0, farthest, 1e-12)
	assert.False(t, mesh.SwapsHandedness)
}

func TestNormalizeMesh_RightHanded(t *testing.T) {
	positions := []core.Vec3{
		core.NewVec3(-1, -1, 0),
		core.NewVec3(1, -1, 0),
		core.NewVec3(0, 1, 0),
	}
	up := core.NewVec3(0, 0, 1)
	mesh, err := geometry.NewMesh(positions, []core.Vec3{up, up, up}, nil, [][3]int{{0, 1, 2}})
	require.NoError(t, err)

	require.NoError(t, normalizeMesh(mesh, RightHanded))

	// The y axis is mirrored and the handedness flag records the flip.
	assert.True(t, mesh.SwapsHandedness)
	assert.InDelta(t, 1/math.Sqrt(2), mesh.Positions[0].Y, 1e-12)
}

func TestNormalizeMesh_Empty(t *testing.T) {
	mesh, err := geometry.NewMesh(nil, nil, nil, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, normalizeMesh(mesh, LeftHanded), geometry.ErrEmptyMesh)
}

// writeTriangleSTL writes a binary STL holding one triangle in the z=0 plane
// facing +z.
func writeTriangleSTL(t *testing.T) string {
	t.Helper()

	var buf bytes.Buffer
	buf.Write(make([]byte, 80))
	binary.Write(&buf, binary.LittleEndian, uint32(1))
	for _, v := range [][3]float32{
		{0, 0, 1}, // normal
		{-1, -1, 0},
		{1, -1, 0},
		{0, 1, 0},
	} {
		binary.Write(&buf, binary.LittleEndian, v)
	}
	binary.Write(&buf, binary.LittleEndian, uint16(0))

	path := filepath.Join(t.TempDir(), "triangle.stl")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestRenderSTL(t *testing.T) {
	config := DefaultConfig(64, 64)
	config.Sampler.Jitter = false
	config.Lights = []LightConfig{{
		Position:  Spherical{Radius: 5},
		Intensity: [3]float64{25, 25, 25},
	}}
	require.NoError(t, config.Validate())

	img, err := New(config, nil).RenderSTL(context.Background(), writeTriangleSTL(t))
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 64, 64), img.Bounds())

	// The triangle's projected interior covers the image center; the
	// corners lie outside its silhouette.
	_, _, _, a := img.At(32, 32).RGBA()
	assert.NotZero(t, a)
	_, _, _, a = img.At(0, 0).RGBA()
	assert.Zero(t, a)
	_, _, _, a = img.At(63, 63).RGBA()
	assert.Zero(t, a)
}

func TestRenderSTL_SeedChangesOutput(t *testing.T) {
	stl := writeTriangleSTL(t)

	render := func(seed int64) *image.NRGBA {
		config := DefaultConfig(32, 32)
		config.Sampler.Seed = seed
		config.Lights = []LightConfig{{
			Position:  Spherical{Radius: 5},
			Intensity: [3]float64{25, 25, 25},
		}}
		require.NoError(t, config.Validate())

		img, err := New(config, nil).RenderSTL(context.Background(), stl)
		require.NoError(t, err)
		nrgba, ok := img.(*image.NRGBA)
		require.True(t, ok)
		return nrgba
	}

	// Jittered sample positions depend on the configured seed, so two
	// seeds must not produce the same image while repeating a seed must.
	assert.NotEqual(t, render(1).Pix, render(999999).Pix)
	assert.Equal(t, render(1).Pix, render(1).Pix)
}

func TestRenderSTL_Crop(t *testing.T) {
	config := DefaultConfig(64, 64)
	config.Crop = true
	config.Sampler.Jitter = false

	img, err := New(config, nil).RenderSTL(context.Background(), writeTriangleSTL(t))
	require.NoError(t, err)

	// The silhouette does not reach the image edges, so cropping must
	// shrink the output.
	assert.Less(t, img.Bounds().Dx(), 64)
	assert.Less(t, img.Bounds().Dy(), 64)
	assert.Greater(t, img.Bounds().Dx(), 0)
}

func TestRenderSTL_MissingFile(t *testing.T) {
	config := DefaultConfig(16, 16)
	_, err := New(config, nil).RenderSTL(context.Background(), filepath.Join(t.TempDir(), "nope.stl"))
	assert.Error(t, err)
}
