// Package mediadedupe re-exports the engine's public surface for
// library consumers who want to embed the pipeline without reaching
// into pkg/engine directly.
package mediadedupe

import (
	"context"

	"github.com/HaiderBassem/mediadedupe/internal/quality"
	"github.com/HaiderBassem/mediadedupe/pkg/api"
	"github.com/HaiderBassem/mediadedupe/pkg/engine"
)

// Engine creation with different tuning profiles.
var (
	NewEngine             = engine.NewEngine
	DefaultConfig         = engine.DefaultConfig
	HighPerformanceConfig = engine.HighPerformanceConfig
	AccuracyConfig        = engine.AccuracyConfig
	FastScanConfig        = engine.FastScanConfig
)

// Common types.
type (
	Config              = engine.Config
	FileID              = api.FileID
	FileInfo            = api.FileInfo
	DuplicateSet        = api.DuplicateSet
	DeduplicationResult = api.DeduplicationResult
	Progress            = api.Progress
)

// Quality analysis, for callers that only need the supplemental
// diagnostic scorer without a full pipeline run.
var NewQualityAnalyzer = quality.NewAnalyzer

// QuickScan runs the default-configuration pipeline once over
// directoryPath and returns the deduplication result.
func QuickScan(directoryPath string) (*DeduplicationResult, error) {
	eng, err := engine.NewEngine(engine.DefaultConfig())
	if err != nil {
		return nil, err
	}
	defer eng.Close()

	return eng.Run(context.Background(), []string{directoryPath}, nil)
}

// FindDuplicatesQuick runs the fast-scan profile over directoryPath and
// returns only the duplicate sets.
func FindDuplicatesQuick(directoryPath string) ([]DuplicateSet, error) {
	eng, err := engine.NewEngine(engine.FastScanConfig())
	if err != nil {
		return nil, err
	}
	defer eng.Close()

	result, err := eng.Run(context.Background(), []string{directoryPath}, nil)
	if err != nil {
		return nil, err
	}
	return result.DuplicateSets, nil
}
