package quality

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// ExposureAnalyzer analyzes image exposure levels.
type ExposureAnalyzer struct{}

// NewExposureAnalyzer creates a new exposure analyzer.
func NewExposureAnalyzer() *ExposureAnalyzer {
	return &ExposureAnalyzer{}
}

// AnalyzeExposure assesses image exposure level, 0 (dark) to 1 (bright).
func (e *ExposureAnalyzer) AnalyzeExposure(img image.Image) (float64, error) {
	gray := imaging.Grayscale(img)
	bounds := gray.Bounds()
	totalPixels := bounds.Dx() * bounds.Dy()

	if totalPixels == 0 {
		return 0.5, nil
	}

	var sum float64
	var darkPixels, brightPixels int

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, _, _, _ := gray.At(x, y).RGBA()
			luminance := float64(r) / 65535.0
			sum += luminance

			if luminance < 0.1 {
				darkPixels++
			} else if luminance > 0.9 {
				brightPixels++
			}
		}
	}

	avgLuminance := sum / float64(totalPixels)

	darkRatio := float64(darkPixels) / float64(totalPixels)
	brightRatio := float64(brightPixels) / float64(totalPixels)

	exposure := avgLuminance
	if darkRatio > 0.3 {
		exposure -= (darkRatio - 0.3) * 0.5
	}
	if brightRatio > 0.3 {
		exposure += (brightRatio - 0.3) * 0.5
	}

	exposure = math.Max(0, math.Min(1, exposure))

	return exposure, nil
}

// IsOverexposed checks if image exposure exceeds threshold.
func (e *ExposureAnalyzer) IsOverexposed(img image.Image, threshold float64) (bool, error) {
	exposure, err := e.AnalyzeExposure(img)
	if err != nil {
		return false, err
	}
	return exposure > threshold, nil
}

// IsUnderexposed checks if image exposure falls below threshold.
func (e *ExposureAnalyzer) IsUnderexposed(img image.Image, threshold float64) (bool, error) {
	exposure, err := e.AnalyzeExposure(img)
	if err != nil {
		return false, err
	}
	return exposure < threshold, nil
}
