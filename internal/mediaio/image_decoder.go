package mediaio

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/disintegration/imaging"
)

// StdImageDecoder decodes still images with the standard library's
// registered codecs and resizes/grayscales with disintegration/imaging,
// the same resampler the teacher uses ahead of its own hash computation.
type StdImageDecoder struct{}

// NewStdImageDecoder constructs a StdImageDecoder.
func NewStdImageDecoder() *StdImageDecoder { return &StdImageDecoder{} }

// DecodeGray implements ImageDecoder.
func (d *StdImageDecoder) DecodeGray(path string, r int) ([]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mediaio: open %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("mediaio: decode %s: %w", path, err)
	}

	return grayBuffer(img, r), nil
}

// grayBuffer resizes img to r×r and flattens it into a row-major
// luminance buffer with values in [0,1].
func grayBuffer(img image.Image, r int) []float64 {
	resized := imaging.Resize(img, r, r, imaging.Lanczos)
	gray := imaging.Grayscale(resized)

	buf := make([]float64, r*r)
	for y := 0; y < r; y++ {
		for x := 0; x < r; x++ {
			lum, _, _, _ := gray.At(x, y).RGBA()
			buf[y*r+x] = float64(lum) / 65535.0
		}
	}
	return buf
}
