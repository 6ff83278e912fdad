package quality

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func checkerboardImage(n int) image.Image {
	img := image.NewGray(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, color.Gray{Y: 255})
			} else {
				img.Set(x, y, color.Gray{Y: 0})
			}
		}
	}
	return img
}

func solidImage(n int, v uint8) image.Image {
	img := image.NewGray(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			img.Set(x, y, color.Gray{Y: v})
		}
	}
	return img
}

func TestSharpnessCheckerboardExceedsSolid(t *testing.T) {
	s := NewSharpnessAnalyzer()

	sharp, err := s.AnalyzeSharpness(checkerboardImage(16))
	assert.NoError(t, err)

	flat, err := s.AnalyzeSharpness(solidImage(16, 128))
	assert.NoError(t, err)

	assert.Greater(t, sharp, flat)
}

func TestExposureMidGrayIsNeutral(t *testing.T) {
	e := NewExposureAnalyzer()

	exposure, err := e.AnalyzeExposure(solidImage(16, 128))
	assert.NoError(t, err)
	assert.InDelta(t, 0.5, exposure, 0.05)
}

func TestExposureDetectsOverAndUnderexposure(t *testing.T) {
	e := NewExposureAnalyzer()

	bright, err := e.AnalyzeExposure(solidImage(16, 255))
	assert.NoError(t, err)
	over, err := e.IsOverexposed(solidImage(16, 255), 0.9)
	assert.NoError(t, err)
	assert.True(t, over)
	assert.Greater(t, bright, 0.9)

	dark, err := e.AnalyzeExposure(solidImage(16, 0))
	assert.NoError(t, err)
	under, err := e.IsUnderexposed(solidImage(16, 0), 0.1)
	assert.NoError(t, err)
	assert.True(t, under)
	assert.Less(t, dark, 0.1)
}

func TestAnalyzerScoresSharpWellExposedImageHighly(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())

	result, err := a.Analyze(checkerboardImage(16))
	assert.NoError(t, err)
	assert.False(t, a.IsLowQuality(result))
}

func TestAnalyzerFlagsBlurryFlatImage(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())

	result, err := a.Analyze(solidImage(16, 128))
	assert.NoError(t, err)
	assert.True(t, a.IsBlurry(result))
}
