package integrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmayer/go-stl-raytracer/pkg/core"
	"github.com/tmayer/go-stl-raytracer/pkg/geometry"
	"github.com/tmayer/go-stl-raytracer/pkg/lights"
	"github.com/tmayer/go-stl-raytracer/pkg/material"
	"github.com/tmayer/go-stl-raytracer/pkg/scene"
)

// testScene builds a scene over a single mesh with a flat-list aggregate.
func testScene(t *testing.T, positions, normals []core.Vec3, indices [][3]int, mat *material.Material, lightSet []lights.Light) *scene.Scene {
	t.Helper()

	mesh, err := geometry.NewMesh(positions, normals, nil, indices)
	require.NoError(t, err)

	store := geometry.NewMeshStore()
	handle := store.Add(mesh)
	prims := geometry.NewListAggregate(store, geometry.MeshPrimitives(store, handle, mat))

	sc, err := scene.NewScene(store, prims, lightSet)
	require.NoError(t, err)
	return sc
}

// facingTriangle is a triangle in the z=1 plane whose normals face the -z
// half space.
func facingTriangle() ([]core.Vec3, []core.Vec3, [][3]int) {
	positions := []core.Vec3{
		core.NewVec3(-0.5, -0.5, 1),
		core.NewVec3(0.5, -0.5, 1),
		core.NewVec3(0, 0.5, 1),
	}
	toCamera := core.NewVec3(0, 0, -1)
	normals := []core.Vec3{toCamera, toCamera, toCamera}
	return positions, normals, [][3]int{{0, 1, 2}}
}

func TestWhittedIntegrator_MissIsTransparent(t *testing.T) {
	positions, normals, indices := facingTriangle()
	sc := testScene(t, positions, normals, indices, material.Default(),
		[]lights.Light{lights.NewPointLight(core.NewVec3(0, 0, -3), core.NewSpectrum(16, 16, 16))})

	integ := NewWhittedIntegrator()
	ray := core.NewRay(core.NewVec3(5, 5, 0), core.NewVec3(0, 0, 1), 10)

	color := integ.RayColor(ray, sc, nil, 0, 1)
	assert.True(t, color.IsTransparent())
}

func TestWhittedIntegrator_PhongTerms(t *testing.T) {
	positions, normals, indices := facingTriangle()
	mat := material.NewMaterial(core.NewSpectrum(1, 0.5, 0.25), 0.1, 0.6, 0.3, 32)

	// The light sits on the ray axis 4 units from the hit point, so the
	// incident radiance is intensity/16 = (1,1,1), the diffuse cosine is
	// 1 and the mirror reflection lines up exactly with the viewer.
	sc := testScene(t, positions, normals, indices, mat,
		[]lights.Light{lights.NewPointLight(core.NewVec3(0, 0, -3), core.NewSpectrum(16, 16, 16))})

	integ := NewWhittedIntegrator()
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), 10)
	color := integ.RayColor(ray, sc, nil, 0, 1)

	assert.InDelta(t, 1*0.1+1*0.6+0.3, color.R, 1e-9)
	assert.InDelta(t, 0.5*0.1+0.5*0.6+0.3, color.G, 1e-9)
	assert.InDelta(t, 0.25*0.1+0.25*0.6+0.3, color.B, 1e-9)
	assert.Equal(t, 1.0, color.A)
}

func TestWhittedIntegrator_LightBehindSurfaceIsAmbientOnly(t *testing.T) {
	positions, normals, indices := facingTriangle()
	mat := material.NewMaterial(core.NewSpectrum(1, 1, 1), 0.1, 0.6, 0.3, 32)

	// Same distance as the frontal case, but on the far side of the
	// surface: only the ambient term survives.
	sc := testScene(t, positions, normals, indices, mat,
		[]lights.Light{lights.NewPointLight(core.NewVec3(0, 0, 5), core.NewSpectrum(16, 16, 16))})

	integ := NewWhittedIntegrator()
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), 10)
	color := integ.RayColor(ray, sc, nil, 0, 1)

	assert.InDelta(t, 0.1, color.R, 1e-9)
	assert.InDelta(t, 0.1, color.G, 1e-9)
	assert.InDelta(t, 0.1, color.B, 1e-9)
	assert.Equal(t, 1.0, color.A)
}

func TestWhittedIntegrator_ShadowRays(t *testing.T) {
	// A small triangle at z=1 facing -z, with a larger blocker at z=0
	// between it and the light at z=-5.
	positions := []core.Vec3{
		core.NewVec3(-0.5, -0.5, 1),
		core.NewVec3(0.5, -0.5, 1),
		core.NewVec3(0, 0.5, 1),
		core.NewVec3(-2, -2, 0),
		core.NewVec3(2, -2, 0),
		core.NewVec3(0, 2, 0),
	}
	toLight := core.NewVec3(0, 0, -1)
	normals := []core.Vec3{toLight, toLight, toLight, toLight, toLight, toLight}
	indices := [][3]int{{0, 1, 2}, {3, 4, 5}}

	mat := material.NewMaterial(core.NewSpectrum(1, 1, 1), 0.1, 0.6, 0, 32)
	sc := testScene(t, positions, normals, indices, mat,
		[]lights.Light{lights.NewPointLight(core.NewVec3(0, 0, -5), core.NewSpectrum(36, 36, 36))})

	// Start between the blocker and the rear triangle so the camera sees
	// the rear triangle unobstructed.
	ray := core.NewRay(core.NewVec3(0, 0, 0.5), core.NewVec3(0, 0, 1), 10)

	lit := NewWhittedIntegrator().RayColor(ray, sc, nil, 0, 1)
	shadowed := (&WhittedIntegrator{ShadowRays: true}).RayColor(ray, sc, nil, 0, 1)

	// The hit point is 6 units from the light, so the incident radiance
	// is (1,1,1) and the lit pixel carries ambient plus diffuse.
	assert.InDelta(t, 0.1+0.6, lit.R, 1e-9)
	assert.InDelta(t, 0.1, shadowed.R, 1e-9)
	assert.Equal(t, 1.0, shadowed.A)
}

func TestWhittedIntegrator_SumsOverLights(t *testing.T) {
	positions, normals, indices := facingTriangle()
	mat := material.NewMaterial(core.NewSpectrum(1, 1, 1), 0.1, 0.6, 0, 32)

	one := lights.NewPointLight(core.NewVec3(0, 0, -3), core.NewSpectrum(16, 16, 16))
	sc1 := testScene(t, positions, normals, indices, mat, []lights.Light{one})

	positions2, normals2, indices2 := facingTriangle()
	sc2 := testScene(t, positions2, normals2, indices2, mat, []lights.Light{one, one})

	integ := NewWhittedIntegrator()
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), 10)

	single := integ.RayColor(ray, sc1, nil, 0, 1)
	double := integ.RayColor(ray, sc2, nil, 0, 1)
	assert.InDelta(t, 2*single.R, double.R, 1e-9)
	assert.Equal(t, 1.0, double.A)
}
