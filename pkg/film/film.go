// Package film accumulates filter-weighted radiance samples into a pixel
// grid and reconstructs the final image from them.
package film

import (
	"image"
	"image/color"
	"math"

	"github.com/tmayer/go-stl-raytracer/pkg/core"
	"github.com/tmayer/go-stl-raytracer/pkg/filter"
)

// pixel holds the accumulation state for one pixel: the filter-weighted
// radiance sum and the sum of filter weights
type pixel struct {
	sum       core.Spectrum
	weightSum float64
}

// Film accumulates weighted radiance samples over a rectangular region of
// the image. The full-image film covers the whole resolution; tile films
// returned by Tile cover a worker's region (expanded by the filter support)
// and are merged back by pixel-wise summation.
//
// A film is owned by exactly one goroutine while samples are added.
type Film struct {
	bounds image.Rectangle
	filter filter.Filter
	pixels []pixel
}

// New creates a film covering the full image resolution
func New(resolution image.Point, flt filter.Filter) *Film {
	return newFilm(image.Rect(0, 0, resolution.X, resolution.Y), flt)
}

func newFilm(bounds image.Rectangle, flt filter.Filter) *Film {
	return &Film{
		bounds: bounds,
		filter: flt,
		pixels: make([]pixel, bounds.Dx()*bounds.Dy()),
	}
}

// Bounds returns the pixel region this film covers
func (f *Film) Bounds() image.Rectangle {
	return f.bounds
}

// Tile returns an empty film for a worker rendering the given pixel region.
// Its bounds are expanded by the filter support (clipped to this film), so
// samples near the region edge can deposit weight into neighboring pixels.
func (f *Film) Tile(region image.Rectangle) *Film {
	expanded := image.Rect(
		region.Min.X-int(math.Ceil(f.filter.HalfWidth()-0.5)),
		region.Min.Y-int(math.Ceil(f.filter.HalfHeight()-0.5)),
		region.Max.X+int(math.Ceil(f.filter.HalfWidth()-0.5)),
		region.Max.Y+int(math.Ceil(f.filter.HalfHeight()-0.5)),
	)
	return newFilm(expanded.Intersect(f.bounds), f.filter)
}

// AddSample deposits a radiance sample at the given continuous film
// position: every pixel whose center lies within the filter support of the
// position accumulates weight*radiance and weight.
func (f *Film) AddSample(filmPoint core.Vec2, radiance core.Spectrum) {
	x0 := int(math.Ceil(filmPoint.X - 0.5 - f.filter.HalfWidth()))
	x1 := int(math.Floor(filmPoint.X - 0.5 + f.filter.HalfWidth()))
	y0 := int(math.Ceil(filmPoint.Y - 0.5 - f.filter.HalfHeight()))
	y1 := int(math.Floor(filmPoint.Y - 0.5 + f.filter.HalfHeight()))

	for y := max(y0, f.bounds.Min.Y); y <= min(y1, f.bounds.Max.Y-1); y++ {
		for x := max(x0, f.bounds.Min.X); x <= min(x1, f.bounds.Max.X-1); x++ {
			offset := core.NewVec2(
				float64(x)+0.5-filmPoint.X,
				float64(y)+0.5-filmPoint.Y,
			)
			weight := f.filter.EvalAt(offset)
			if weight == 0 {
				continue
			}
			px := &f.pixels[f.index(x, y)]
			px.sum = px.sum.Add(radiance.Scale(weight))
			px.weightSum += weight
		}
	}
}

// Merge adds the accumulation state of a tile film into this film. Merging
// is commutative, so the order tiles complete in does not matter.
func (f *Film) Merge(tile *Film) {
	overlap := f.bounds.Intersect(tile.bounds)
	for y := overlap.Min.Y; y < overlap.Max.Y; y++ {
		for x := overlap.Min.X; x < overlap.Max.X; x++ {
			src := tile.pixels[tile.index(x, y)]
			dst := &f.pixels[f.index(x, y)]
			dst.sum = dst.sum.Add(src.sum)
			dst.weightSum += src.weightSum
		}
	}
}

// PixelValues returns the accumulated weighted sum and weight sum for a
// pixel
func (f *Film) PixelValues(x, y int) (core.Spectrum, float64) {
	px := f.pixels[f.index(x, y)]
	return px.sum, px.weightSum
}

// WriteImage finalizes every pixel as sum/weight, clamps it to [0, 1], and
// returns the raster. Pixels with zero accumulated weight are fully
// transparent.
func (f *Film) WriteImage() *image.NRGBA {
	img := image.NewNRGBA(f.bounds)
	for y := f.bounds.Min.Y; y < f.bounds.Max.Y; y++ {
		for x := f.bounds.Min.X; x < f.bounds.Max.X; x++ {
			px := f.pixels[f.index(x, y)]
			if px.weightSum == 0 {
				img.SetNRGBA(x, y, color.NRGBA{})
				continue
			}
			s := px.sum.Scale(1 / px.weightSum).Clamp(0, 1)
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(s.R*255 + 0.5),
				G: uint8(s.G*255 + 0.5),
				B: uint8(s.B*255 + 0.5),
				A: uint8(s.A*255 + 0.5),
			})
		}
	}
	return img
}

func (f *Film) index(x, y int) int {
	return (y-f.bounds.Min.Y)*f.bounds.Dx() + (x - f.bounds.Min.X)
}
