package integrator

import (
	"math"

	"github.com/tmayer/go-stl-raytracer/pkg/core"
	"github.com/tmayer/go-stl-raytracer/pkg/lights"
	"github.com/tmayer/go-stl-raytracer/pkg/material"
	"github.com/tmayer/go-stl-raytracer/pkg/sampler"
	"github.com/tmayer/go-stl-raytracer/pkg/scene"
)

// Shadow rays stop just short of the light so they don't report the light's
// own distance as an occluder.
const shadowEpsilon = 1e-4

// WhittedIntegrator shades the nearest hit with a Phong-style local
// illumination model summed over all lights. It spawns no secondary rays
// beyond optional shadow rays.
type WhittedIntegrator struct {
	// ShadowRays enables an occlusion test between each hit point and
	// each light. When a light is occluded only its ambient term
	// contributes.
	ShadowRays bool
}

// NewWhittedIntegrator creates a Whitted integrator with shadow rays
// disabled.
func NewWhittedIntegrator() *WhittedIntegrator {
	return &WhittedIntegrator{}
}

// RayColor returns the shaded color of the nearest surface the ray hits, or
// the transparent background on a miss.
func (w *WhittedIntegrator) RayColor(ray core.Ray, sc *scene.Scene, smp sampler.Sampler, depth, maxDepth int) core.Spectrum {
	hit, ok := sc.RayIntersection(ray)
	if !ok {
		return core.Transparent()
	}
	return w.shadeSurfaceInteraction(sc, &hit.Interaction, hit.Primitive.Material)
}

func (w *WhittedIntegrator) shadeSurfaceInteraction(sc *scene.Scene, interaction *core.SurfaceInteraction, mat *material.Material) core.Spectrum {
	var color core.Spectrum
	for _, light := range sc.Lights {
		lit := !w.ShadowRays || !occluded(sc, interaction, light)
		color = color.Add(phong(mat, light, interaction, lit))
	}

	// A surface was hit, so the sample covers its pixel regardless of
	// how the per-light alpha terms combined.
	color.A = 1
	return color
}

// phong evaluates the ambient, diffuse and specular terms of a single light.
// The diffuse and specular terms are dropped when the light is behind the
// surface or occluded; the specular term is additionally dropped when the
// mirror reflection points away from the viewer.
func phong(mat *material.Material, light lights.Light, interaction *core.SurfaceInteraction, lit bool) core.Spectrum {
	incidentLight, toLight := light.Li(interaction)
	effectiveColor := mat.Color.Multiply(incidentLight)
	ambient := effectiveColor.Scale(mat.Ambient)
	if !lit {
		return ambient
	}

	lightDotNormal := toLight.Dot(interaction.Original.Normal)
	if lightDotNormal < 0 {
		return ambient
	}
	diffuse := effectiveColor.Scale(mat.Diffuse * lightDotNormal)

	reflected := toLight.Negate().Reflect(interaction.Original.Normal)
	reflectDotEye := reflected.Dot(interaction.NegRayDirection)
	if reflectDotEye <= 0 {
		return ambient.Add(diffuse)
	}
	specular := incidentLight.Scale(mat.Specular * math.Pow(reflectDotEye, mat.Shininess))

	return ambient.Add(diffuse).Add(specular)
}

// occluded traces a shadow ray from the interaction toward the light,
// offsetting the origin outside the surface's error bound so the surface
// cannot shadow itself.
func occluded(sc *scene.Scene, interaction *core.SurfaceInteraction, light lights.Light) bool {
	toLight := light.Position().Subtract(interaction.Point)
	distance := toLight.Length()
	direction := toLight.Multiply(1 / distance)

	origin := interaction.OffsetRayOrigin(direction)
	shadowRay := core.NewRay(origin, direction, distance*(1-shadowEpsilon))
	_, hit := sc.RayIntersection(shadowRay)
	return hit
}
