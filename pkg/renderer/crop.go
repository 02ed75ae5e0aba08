package renderer

import (
	"errors"
	"image"

	"github.com/anthonynsimon/bild/transform"
)

// ErrZeroAreaImage is returned when cropping an image with no opaque content
var ErrZeroAreaImage = errors.New("image has no non-transparent pixels")

// CropToOpaque trims fully transparent rows and columns from the edges of
// the image, leaving the tightest rectangle around any content with nonzero
// alpha.
func CropToOpaque(img image.Image) (image.Image, error) {
	bounds, ok := opaqueBounds(img)
	if !ok {
		return nil, ErrZeroAreaImage
	}
	return transform.Crop(img, bounds), nil
}

// opaqueBounds returns the bounding rectangle of all pixels with nonzero
// alpha, or false if every pixel is transparent.
func opaqueBounds(img image.Image) (image.Rectangle, bool) {
	var bounds image.Rectangle
	found := false

	for y := img.Bounds().Min.Y; y < img.Bounds().Max.Y; y++ {
		for x := img.Bounds().Min.X; x < img.Bounds().Max.X; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			pixel := image.Rect(x, y, x+1, y+1)
			if !found {
				bounds = pixel
				found = true
			} else {
				bounds = bounds.Union(pixel)
			}
		}
	}
	return bounds, found
}
