// Package renderer resolves a declarative configuration into a scene,
// camera, sampler and film, and runs the render pipeline end to end.
package renderer

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"math"

	"github.com/tmayer/go-stl-raytracer/pkg/camera"
	"github.com/tmayer/go-stl-raytracer/pkg/core"
	"github.com/tmayer/go-stl-raytracer/pkg/filter"
	"github.com/tmayer/go-stl-raytracer/pkg/geometry"
	"github.com/tmayer/go-stl-raytracer/pkg/integrator"
	"github.com/tmayer/go-stl-raytracer/pkg/lights"
	"github.com/tmayer/go-stl-raytracer/pkg/loaders"
	"github.com/tmayer/go-stl-raytracer/pkg/material"
	"github.com/tmayer/go-stl-raytracer/pkg/sampler"
	"github.com/tmayer/go-stl-raytracer/pkg/scene"
)

// Sample vector dimensions consumed per camera ray; extra dimensions fall
// back to uniform randoms.
const sampledDimensions = 5

// Renderer renders meshes according to a fixed configuration.
type Renderer struct {
	config Config
	logger *slog.Logger
}

// New creates a renderer for the given configuration. A nil logger falls
// back to slog's default.
func New(config Config, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{config: config, logger: logger}
}

// RenderSTL loads an STL file and renders it. The mesh is centered on the
// origin and scaled into the unit sphere so that any input, whatever its
// units, fills the camera's view.
func (r *Renderer) RenderSTL(ctx context.Context, filename string) (image.Image, error) {
	mesh, err := loaders.LoadSTL(filename)
	if err != nil {
		return nil, err
	}
	r.logger.Info("loaded mesh", "file", filename, "triangles", len(mesh.Indices))
	return r.RenderMesh(ctx, mesh)
}

// RenderMesh normalizes and renders an already loaded mesh.
func (r *Renderer) RenderMesh(ctx context.Context, mesh *geometry.Mesh) (image.Image, error) {
	if err := normalizeMesh(mesh, r.config.Handedness); err != nil {
		return nil, err
	}

	store := geometry.NewMeshStore()
	handle := store.Add(mesh)
	prims := geometry.NewBVHAggregate(store, geometry.MeshPrimitives(store, handle, loadMaterial(r.config.Material)))

	sc, err := scene.NewScene(store, prims, loadLights(r.config.Lights))
	if err != nil {
		return nil, err
	}

	resolution := image.Pt(r.config.Width, r.config.Height)
	cam := loadCamera(r.config.Camera, resolution)
	smp := sampler.NewStratifiedSampler(
		r.config.Sampler.XStrata, r.config.Sampler.YStrata,
		sampledDimensions, r.config.Sampler.Seed, r.config.Sampler.Jitter)
	flt := filter.NewMitchellFilter(2.0, 2.0, 1.0/3.0, 1.0/3.0)

	r.logger.Info("rendering",
		"resolution", fmt.Sprintf("%dx%d", resolution.X, resolution.Y),
		"samples_per_pixel", smp.SamplesPerPixel(),
		"primitives", prims.Len(),
		"lights", len(r.config.Lights))

	renderConfig := integrator.DefaultRenderConfig()
	renderConfig.Seed = r.config.Sampler.Seed

	flm, err := integrator.Render(ctx, sc, cam, smp, flt, resolution,
		integrator.NewWhittedIntegrator(), renderConfig)
	if err != nil {
		return nil, err
	}

	var img image.Image = flm.WriteImage()
	if r.config.Crop {
		img, err = CropToOpaque(img)
		if err != nil {
			return nil, err
		}
		r.logger.Info("cropped transparent border", "bounds", img.Bounds())
	}
	return img, nil
}

// normalizeMesh translates the mesh's bounding box center to the origin,
// scales the mesh to fit the unit sphere, and mirrors right-handed meshes
// into left-handed coordinates.
func normalizeMesh(mesh *geometry.Mesh, handedness string) error {
	bounds, ok := mesh.BoundingBox()
	if !ok {
		return geometry.ErrEmptyMesh
	}

	center := bounds.Center()
	mesh.Transform(core.Translate(center.Negate()))
	mesh.Transform(core.Scale(1 / maxDistanceFromOrigin(mesh)))

	if handedness == RightHanded {
		mesh.TransformSwappingHandedness(core.NonuniformScale(1, -1, 1))
	}
	return nil
}

func maxDistanceFromOrigin(mesh *geometry.Mesh) float64 {
	maxSquared := 0.0
	for _, p := range mesh.Positions {
		maxSquared = math.Max(maxSquared, p.LengthSquared())
	}
	return math.Sqrt(maxSquared)
}

func loadMaterial(config MaterialConfig) *material.Material {
	color := core.NewSpectrum(config.Color[0], config.Color[1], config.Color[2])
	return material.NewMaterial(color, config.Ambient, config.Diffuse, config.Specular, config.Shininess)
}

func loadLights(configs []LightConfig) []lights.Light {
	lightSet := make([]lights.Light, 0, len(configs))
	for _, config := range configs {
		position := sphericalPosition(config.Position).TransformPoint(core.Vec3{})
		intensity := core.NewSpectrum(config.Intensity[0], config.Intensity[1], config.Intensity[2])
		lightSet = append(lightSet, lights.NewPointLight(position, intensity))
	}
	return lightSet
}

func loadCamera(config CameraConfig, resolution image.Point) camera.Camera {
	cameraToWorld := sphericalPosition(config.Position)
	aspectRatio := float64(resolution.X) / float64(resolution.Y)
	return camera.NewOrthographicCamera(
		cameraToWorld, config.ZNear, config.ZFar,
		orthographicScreenSize(aspectRatio), resolution)
}

// sphericalPosition returns the transformation that moves a point at the
// origin to the given spherical coordinates. Applied to a camera coordinate
// system looking toward +z with +y up, the result looks at the origin with
// up roughly toward +y.
func sphericalPosition(position Spherical) core.Matrix4 {
	theta := position.Theta * math.Pi / 180
	phi := position.Phi * math.Pi / 180
	return core.RotateZ(-math.Pi/2 - phi).
		Multiply(core.RotateX(math.Pi - theta)).
		Multiply(core.Translate(core.NewVec3(0, 0, -position.Radius)))
}

// orthographicScreenSize returns the screen extent an orthographic camera
// with the given aspect ratio needs to fit the unit sphere.
func orthographicScreenSize(aspectRatio float64) core.Vec2 {
	const diameter = 2.0
	if aspectRatio >= 1 {
		return core.NewVec2(aspectRatio*diameter, diameter)
	}
	return core.NewVec2(diameter, diameter/aspectRatio)
}
