package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/HaiderBassem/mediadedupe/pkg/api"
	"github.com/sirupsen/logrus"
)

// JSONReportGenerator generates JSON format reports.
type JSONReportGenerator struct {
	logger *logrus.Logger
}

// NewJSONReportGenerator creates a new JSON report generator.
func NewJSONReportGenerator() *JSONReportGenerator {
	return &JSONReportGenerator{logger: logrus.New()}
}

// EnhancedReport wraps a DeduplicationResult with derived statistics and
// recommendations for JSON consumers.
type EnhancedReport struct {
	*api.DeduplicationResult
	Statistics      ReportStatistics `json:"statistics"`
	Recommendations []Recommendation `json:"recommendations"`
}

// ReportStatistics contains summary counts and estimated savings.
type ReportStatistics struct {
	UniqueFileCount    int   `json:"unique_file_count"`
	DuplicateSetCount  int   `json:"duplicate_set_count"`
	DuplicateFileCount int   `json:"duplicate_file_count"`
	FailureCount       int   `json:"failure_count"`
	SpaceSavingsBytes  int64 `json:"space_savings_bytes"`
}

// Recommendation represents an action recommendation.
type Recommendation struct {
	Type        string `json:"type"`
	Priority    string `json:"priority"` // low, medium, high
	Description string `json:"description"`
}

// Generate generates a comprehensive JSON report.
func (j *JSONReportGenerator) Generate(result *api.DeduplicationResult, sizeOf SizeOf, outputPath string) error {
	enhanced := j.enhanceReport(result, sizeOf)

	data, err := json.MarshalIndent(enhanced, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON report: %w", err)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("write JSON report: %w", err)
	}

	j.logger.Infof("JSON report saved to: %s", outputPath)
	return nil
}

func (j *JSONReportGenerator) enhanceReport(result *api.DeduplicationResult, sizeOf SizeOf) *EnhancedReport {
	var duplicateFiles int
	for _, set := range result.DuplicateSets {
		duplicateFiles += len(set.Duplicates)
	}

	stats := ReportStatistics{
		UniqueFileCount:    len(result.UniqueFiles),
		DuplicateSetCount:  len(result.DuplicateSets),
		DuplicateFileCount: duplicateFiles,
		FailureCount:       len(result.Failures),
		SpaceSavingsBytes:  spaceSavings(result, sizeOf),
	}

	return &EnhancedReport{
		DeduplicationResult: result,
		Statistics:          stats,
		Recommendations:     j.generateRecommendations(stats),
	}
}

func (j *JSONReportGenerator) generateRecommendations(stats ReportStatistics) []Recommendation {
	var recs []Recommendation

	if stats.DuplicateSetCount > 0 {
		recs = append(recs, Recommendation{
			Type:        "storage_optimization",
			Priority:    "high",
			Description: fmt.Sprintf("Found %d duplicate sets totaling %d redundant files", stats.DuplicateSetCount, stats.DuplicateFileCount),
		})
	}
	if stats.FailureCount > 0 {
		recs = append(recs, Recommendation{
			Type:        "ingest_errors",
			Priority:    "medium",
			Description: fmt.Sprintf("%d files could not be fingerprinted and were excluded from results", stats.FailureCount),
		})
	}

	return recs
}
