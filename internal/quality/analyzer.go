// Package quality computes a supplemental, operator-facing diagnostic
// quality score for still images. It is not part of the core duplicate
// detection or representative-selection policy (see internal/selector) —
// callers may attach its result to api.Metadata.QualityScore for reporting.
package quality

import (
	"image"

	"github.com/sirupsen/logrus"
)

// Analyzer performs image quality assessment.
type Analyzer struct {
	config    Config
	logger    *logrus.Logger
	sharpness *SharpnessAnalyzer
	exposure  *ExposureAnalyzer
	scorer    *ScoreCalculator
}

// Config defines quality analysis thresholds.
type Config struct {
	SharpnessThreshold float64
	MinExposure        float64
	MaxExposure        float64
}

// DefaultConfig returns sensible default quality analysis configuration.
func DefaultConfig() Config {
	return Config{
		SharpnessThreshold: 0.1,
		MinExposure:        0.1,
		MaxExposure:        0.9,
	}
}

// NewAnalyzer creates a new image quality analyzer.
func NewAnalyzer(cfg Config) *Analyzer {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)

	return &Analyzer{
		config:    cfg,
		logger:    logger,
		sharpness: NewSharpnessAnalyzer(),
		exposure:  NewExposureAnalyzer(),
		scorer:    NewScoreCalculator(),
	}
}

// Result holds the individual metrics behind a final score.
type Result struct {
	Sharpness  float64
	Exposure   float64
	FinalScore float64
}

// Analyze performs quality assessment on an image, returning the
// component metrics and a composite 0-100 score.
func (a *Analyzer) Analyze(img image.Image) (Result, error) {
	sharpness, err := a.sharpness.AnalyzeSharpness(img)
	if err != nil {
		a.logger.Warnf("sharpness analysis failed: %v", err)
	}

	exposure, err := a.exposure.AnalyzeExposure(img)
	if err != nil {
		a.logger.Warnf("exposure analysis failed: %v", err)
	}

	final := a.scorer.CalculateFinalScore(sharpness, exposure)

	a.logger.Debugf("quality analysis completed: sharpness=%.2f exposure=%.2f final=%.1f",
		sharpness, exposure, final)

	return Result{Sharpness: sharpness, Exposure: exposure, FinalScore: final}, nil
}

// IsBlurry determines if a result is blurry based on the configured
// sharpness threshold.
func (a *Analyzer) IsBlurry(r Result) bool {
	return r.Sharpness < a.config.SharpnessThreshold
}

// IsOverexposed determines if a result is overexposed.
func (a *Analyzer) IsOverexposed(r Result) bool {
	return r.Exposure > a.config.MaxExposure
}

// IsUnderexposed determines if a result is underexposed.
func (a *Analyzer) IsUnderexposed(r Result) bool {
	return r.Exposure < a.config.MinExposure
}

// IsLowQuality determines if a result has overall low quality.
func (a *Analyzer) IsLowQuality(r Result) bool {
	return r.FinalScore < 50.0
}
