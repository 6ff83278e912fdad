package quality

import "math"

// ScoreCalculator combines sharpness and exposure into a single 0-100
// diagnostic quality score (see api.Metadata.QualityScore). This is a
// supplemental operator-facing signal, separate from the selector's
// representative-ranking score.
type ScoreCalculator struct {
	weights map[string]float64
}

// NewScoreCalculator creates a score calculator with default weights.
func NewScoreCalculator() *ScoreCalculator {
	return &ScoreCalculator{
		weights: map[string]float64{
			"sharpness": 0.6,
			"exposure":  0.4,
		},
	}
}

// CalculateFinalScore computes the overall quality score from sharpness
// and exposure metrics, both in 0-1.
func (sc *ScoreCalculator) CalculateFinalScore(sharpness, exposure float64) float64 {
	// Penalize both under- and overexposure symmetrically around 0.5.
	exposureScore := 1.0 - math.Abs(exposure-0.5)*2

	score := sharpness*sc.weights["sharpness"] + exposureScore*sc.weights["exposure"]

	finalScore := score * 100
	return math.Max(0, math.Min(100, finalScore))
}

// SetWeights allows customizing the weight of each quality metric.
func (sc *ScoreCalculator) SetWeights(weights map[string]float64) {
	sc.weights = weights
}

// GetWeights returns the current weight configuration.
func (sc *ScoreCalculator) GetWeights() map[string]float64 {
	return sc.weights
}

// NormalizeWeights ensures weights sum to 1.0.
func (sc *ScoreCalculator) NormalizeWeights() {
	var total float64
	for _, weight := range sc.weights {
		total += weight
	}

	if total == 0 {
		return
	}

	for key := range sc.weights {
		sc.weights[key] /= total
	}
}
