// Package lights implements the emitter variants of the scene. Light is a
// closed variant set: each variant carries its own state and implements the
// shared contract, keeping dynamic dispatch off the hot intersection path.
package lights

import (
	"math"

	"github.com/tmayer/go-stl-raytracer/pkg/core"
)

// Flags describe the character of a light source's emission distribution
type Flags uint8

const (
	// DeltaPosition marks lights whose position is a delta distribution,
	// e.g. a point light
	DeltaPosition Flags = 1 << iota

	// DeltaDirection marks lights whose direction is a delta
	// distribution, e.g. a directional light
	DeltaDirection

	// Area marks lights that emit from a surface
	Area

	// Infinite marks lights infinitely far away surrounding the scene
	Infinite
)

// Has reports whether all given flags are set
func (f Flags) Has(other Flags) bool {
	return f&other == other
}

// Kind discriminates the light variants
type Kind uint8

const (
	// KindPoint is a point light emitting uniformly in all directions
	KindPoint Kind = iota
)

// Light is one emitter in the scene. Construct variants with the New*
// functions.
type Light struct {
	kind Kind

	// position is the light's location in world space (point lights)
	position core.Vec3

	// intensity is the power emitted per unit solid angle
	intensity core.Spectrum
}

// NewPointLight creates a point light source that emits the same amount of
// light in all directions.
//
// position is the light's position in world space; intensity is the amount
// of power emitted per unit solid angle.
func NewPointLight(position core.Vec3, intensity core.Spectrum) Light {
	return Light{kind: KindPoint, position: position, intensity: intensity}
}

// Kind returns the variant of this light
func (l Light) Kind() Kind {
	return l.kind
}

// Li returns the radiance arriving at the interaction point due to this
// light, ignoring occlusion, together with the unit direction from the point
// toward the light
func (l Light) Li(interaction *core.SurfaceInteraction) (core.Spectrum, core.Vec3) {
	switch l.kind {
	default: // KindPoint
		lightToPoint := l.position.Subtract(interaction.Point)
		li := l.intensity.Scale(1 / lightToPoint.LengthSquared())
		return li, lightToPoint.Normalize()
	}
}

// SampleLi samples an incident direction toward the light for the given
// interaction, returning the radiance, the direction, and the probability
// density of the sample. A delta-distribution light cannot be sampled
// meaningfully: it returns its single deterministic direction with
// probability 1, ignoring u.
func (l Light) SampleLi(interaction *core.SurfaceInteraction, u core.Vec2) (core.Spectrum, core.Vec3, float64) {
	li, wi := l.Li(interaction)
	return li, wi, 1.0
}

// Power returns an approximation of the light's total emitted power, useful
// for transport algorithms that spend more effort on brighter lights
func (l Light) Power() core.Spectrum {
	switch l.kind {
	default: // KindPoint
		return l.intensity.Scale(4 * math.Pi)
	}
}

// Flags returns the flags describing this light's emission distribution
func (l Light) Flags() Flags {
	switch l.kind {
	default: // KindPoint
		return DeltaPosition
	}
}

// Position returns the light's world space position
func (l Light) Position() core.Vec3 {
	return l.position
}
