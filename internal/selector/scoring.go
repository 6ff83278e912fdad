package selector

import (
	"math"

	"github.com/HaiderBassem/mediadedupe/pkg/api"
)

// Score computes the spec.md §4.8 additive score for a FileInfo: larger
// is better. Grounded on the teacher's score_calculator.go weighted-sum
// shape, replaced with spec.md's own formula since the teacher scores
// image quality, not candidate-for-best ranking.
func Score(fi api.FileInfo) float64 {
	var score float64

	if fi.Media.Duration > 0 {
		score += 10000
	}
	score += math.Log(fi.Media.Duration+1) * 100

	if fi.Metadata.ImageDate != nil {
		score += 2000
	}
	if fi.Metadata.HasGPS() {
		score += 300
	}
	if fi.Metadata.CameraModel != nil {
		score += 200
	}

	if fi.Metadata.Width > 0 && fi.Metadata.Height > 0 {
		score += math.Sqrt(float64(fi.Metadata.Width) * float64(fi.Metadata.Height))
	}

	if fi.Stats.Size > 0 {
		score += math.Log(float64(fi.Stats.Size)) * 5
	}

	return score
}
