package quality

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// SharpnessAnalyzer measures image sharpness and blur via the mean absolute Laplacian response.
type SharpnessAnalyzer struct{}

// NewSharpnessAnalyzer creates a new sharpness analyzer.
func NewSharpnessAnalyzer() *SharpnessAnalyzer {
	return &SharpnessAnalyzer{}
}

// AnalyzeSharpness calculates image sharpness as the mean absolute
// Laplacian response, normalized to 0-1.
func (s *SharpnessAnalyzer) AnalyzeSharpness(img image.Image) (float64, error) {
	gray := imaging.Grayscale(img)

	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if width < 3 || height < 3 {
		return 0, nil
	}

	var sum float64
	var count int

	for y := bounds.Min.Y + 1; y < bounds.Max.Y-1; y++ {
		for x := bounds.Min.X + 1; x < bounds.Max.X-1; x++ {
			center := grayValue(gray, x, y)
			top := grayValue(gray, x, y-1)
			bottom := grayValue(gray, x, y+1)
			left := grayValue(gray, x-1, y)
			right := grayValue(gray, x+1, y)

			laplacian := math.Abs(4*center - (top + bottom + left + right))
			sum += laplacian
			count++
		}
	}

	if count == 0 {
		return 0, nil
	}

	variance := sum / float64(count)
	// Empirical divisor; typical sharp 8-bit photos land near this range.
	normalized := math.Min(variance/100.0, 1.0)

	return normalized, nil
}

// IsBlurry determines if an image is blurry based on a sharpness threshold.
func (s *SharpnessAnalyzer) IsBlurry(img image.Image, threshold float64) (bool, error) {
	sharpness, err := s.AnalyzeSharpness(img)
	if err != nil {
		return false, err
	}
	return sharpness < threshold, nil
}

func grayValue(img image.Image, x, y int) float64 {
	r, _, _, _ := img.At(x, y).RGBA()
	return float64(r) / 257.0 // RGBA() returns 16-bit channels; collapse to 8-bit scale
}
