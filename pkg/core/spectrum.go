package core

import "math"

// Spectrum is a radiance value with red, green, blue and alpha channels.
// Alpha carries coverage through the film so that pixels no sample ever hit
// finalize as fully transparent.
type Spectrum struct {
	R, G, B, A float64
}

// NewSpectrum creates an opaque spectrum from RGB channel values
func NewSpectrum(r, g, b float64) Spectrum {
	return Spectrum{R: r, G: g, B: b, A: 1}
}

// Transparent returns the fully transparent zero spectrum
func Transparent() Spectrum {
	return Spectrum{}
}

// Black returns an opaque spectrum with zero radiance in every channel
func Black() Spectrum {
	return Spectrum{A: 1}
}

// Add returns the channel-wise sum of two spectra
func (s Spectrum) Add(other Spectrum) Spectrum {
	return Spectrum{s.R + other.R, s.G + other.G, s.B + other.B, s.A + other.A}
}

// Scale returns the spectrum with every channel multiplied by the scalar
func (s Spectrum) Scale(scalar float64) Spectrum {
	return Spectrum{s.R * scalar, s.G * scalar, s.B * scalar, s.A * scalar}
}

// Multiply returns the channel-wise product of two spectra
func (s Spectrum) Multiply(other Spectrum) Spectrum {
	return Spectrum{s.R * other.R, s.G * other.G, s.B * other.B, s.A * other.A}
}

// Clamp returns the spectrum with every channel clamped to [minVal, maxVal]
func (s Spectrum) Clamp(minVal, maxVal float64) Spectrum {
	clamp := func(v float64) float64 {
		return math.Max(minVal, math.Min(maxVal, v))
	}
	return Spectrum{clamp(s.R), clamp(s.G), clamp(s.B), clamp(s.A)}
}

// IsTransparent reports whether the spectrum has zero alpha
func (s Spectrum) IsTransparent() bool {
	return s.A == 0
}
