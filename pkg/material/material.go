// Package material holds the surface reflectance parameters used by the
// local shading model.
package material

import "github.com/tmayer/go-stl-raytracer/pkg/core"

// Material parameterizes Phong-style local shading
type Material struct {
	Color     core.Spectrum
	Ambient   float64
	Diffuse   float64
	Specular  float64
	Shininess float64
}

// NewMaterial creates a material from its shading parameters
func NewMaterial(color core.Spectrum, ambient, diffuse, specular, shininess float64) *Material {
	return &Material{
		Color:     color,
		Ambient:   ambient,
		Diffuse:   diffuse,
		Specular:  specular,
		Shininess: shininess,
	}
}

// Default returns a matte white material
func Default() *Material {
	return &Material{
		Color:     core.NewSpectrum(1, 1, 1),
		Ambient:   0.05,
		Diffuse:   0.7,
		Specular:  0.0,
		Shininess: 80.0,
	}
}
