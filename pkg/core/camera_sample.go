package core

// CameraSample carries the sample values a camera needs to generate a single
// ray. It is produced once per requested sample vector.
type CameraSample struct {
	// FilmPoint is the continuous position of the sample on the film
	// plane, in raster coordinates: x in [px, px+1), y in [py, py+1) for
	// pixel (px, py).
	FilmPoint Vec2

	// Time is the moment within the shutter interval the ray exists at
	Time float64

	// LensPoint is a 2D sample on the lens, reserved for depth of field
	LensPoint Vec2
}
