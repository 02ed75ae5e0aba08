package renderer

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCropToOpaque(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	img.SetNRGBA(2, 3, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(5, 6, color.NRGBA{G: 255, A: 128})

	cropped, err := CropToOpaque(img)
	require.NoError(t, err)
	assert.Equal(t, 4, cropped.Bounds().Dx())
	assert.Equal(t, 4, cropped.Bounds().Dy())
}

func TestCropToOpaque_SinglePixel(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	img.SetNRGBA(7, 2, color.NRGBA{R: 255, A: 255})

	cropped, err := CropToOpaque(img)
	require.NoError(t, err)
	assert.Equal(t, 1, cropped.Bounds().Dx())
	assert.Equal(t, 1, cropped.Bounds().Dy())
}

func TestCropToOpaque_AllTransparent(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	_, err := CropToOpaque(img)
	assert.ErrorIs(t, err, ErrZeroAreaImage)
}

func TestCropToOpaque_FullyOpaque(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{B: 255, A: 255})
		}
	}

	cropped, err := CropToOpaque(img)
	require.NoError(t, err)
	assert.Equal(t, 4, cropped.Bounds().Dx())
	assert.Equal(t, 6, cropped.Bounds().Dy())
}
