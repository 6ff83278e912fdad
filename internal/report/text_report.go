package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/HaiderBassem/mediadedupe/pkg/api"
	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
)

// TextReportGenerator generates human-readable text reports.
type TextReportGenerator struct {
	logger *logrus.Logger
}

// NewTextReportGenerator creates a new text report generator.
func NewTextReportGenerator() *TextReportGenerator {
	return &TextReportGenerator{logger: logrus.New()}
}

// Generate generates a comprehensive text report.
func (t *TextReportGenerator) Generate(result *api.DeduplicationResult, sizeOf SizeOf, outputPath string) error {
	content := t.generateContent(result, sizeOf)

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create text report: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString(content); err != nil {
		return fmt.Errorf("write text report: %w", err)
	}

	t.logger.Infof("text report saved to: %s", outputPath)
	return nil
}

func (t *TextReportGenerator) generateContent(result *api.DeduplicationResult, sizeOf SizeOf) string {
	var sb strings.Builder

	sb.WriteString(t.generateHeader())
	sb.WriteString("\n\n")
	sb.WriteString(t.generateSummary(result, sizeOf))
	sb.WriteString("\n\n")

	if len(result.DuplicateSets) > 0 {
		sb.WriteString(t.generateDuplicateSets(result))
		sb.WriteString("\n\n")
	}

	if len(result.Failures) > 0 {
		sb.WriteString(t.generateFailures(result))
		sb.WriteString("\n\n")
	}

	sb.WriteString(t.generateFooter())

	return sb.String()
}

func (t *TextReportGenerator) generateHeader() string {
	return fmt.Sprintf(`MEDIA DEDUPLICATION REPORT
==========================
Generated: %s`, time.Now().Format("2006-01-02 15:04:05"))
}

func (t *TextReportGenerator) generateSummary(result *api.DeduplicationResult, sizeOf SizeOf) string {
	var duplicateFiles int
	for _, set := range result.DuplicateSets {
		duplicateFiles += len(set.Duplicates)
	}

	return fmt.Sprintf(`SUMMARY
-------
Unique Files: %d
Duplicate Sets: %d
Duplicate Files: %d
Failures: %d
Estimated Space Savings: %s`,
		len(result.UniqueFiles),
		len(result.DuplicateSets),
		duplicateFiles,
		len(result.Failures),
		humanize.Bytes(uint64(spaceSavings(result, sizeOf))),
	)
}

func (t *TextReportGenerator) generateDuplicateSets(result *api.DeduplicationResult) string {
	var sb strings.Builder

	sb.WriteString("DUPLICATE SETS\n")
	sb.WriteString("--------------\n")

	for i, set := range result.DuplicateSets {
		sb.WriteString(fmt.Sprintf("Set %d:\n", i+1))
		sb.WriteString(fmt.Sprintf("  Best File: %s\n", set.BestFile))
		sb.WriteString(fmt.Sprintf("  Representatives: %d\n", len(set.Representatives)))
		sb.WriteString(fmt.Sprintf("  Duplicates: %d files\n", len(set.Duplicates)))

		for j, dup := range set.Duplicates {
			if j >= 3 {
				sb.WriteString(fmt.Sprintf("    ... and %d more\n", len(set.Duplicates)-3))
				break
			}
			sb.WriteString(fmt.Sprintf("    - %s\n", dup))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (t *TextReportGenerator) generateFailures(result *api.DeduplicationResult) string {
	var sb strings.Builder

	sb.WriteString("FAILURES\n")
	sb.WriteString("--------\n")
	for _, f := range result.Failures {
		sb.WriteString(fmt.Sprintf("  - %s (%s): %v\n", f.Path, f.Kind, f.Err))
	}

	return sb.String()
}

func (t *TextReportGenerator) generateFooter() string {
	return fmt.Sprintf("---\nReport generated: %s", time.Now().Format("2006-01-02 15:04:05"))
}

// GenerateBrief generates a short summary report.
func (t *TextReportGenerator) GenerateBrief(result *api.DeduplicationResult, sizeOf SizeOf, outputPath string) error {
	content := fmt.Sprintf(`QUICK SCAN REPORT
=================
Unique Files: %d
Duplicate Sets: %d
Estimated Space Savings: %s
Generated: %s`,
		len(result.UniqueFiles),
		len(result.DuplicateSets),
		humanize.Bytes(uint64(spaceSavings(result, sizeOf))),
		time.Now().Format("2006-01-02 15:04:05"),
	)

	return os.WriteFile(outputPath, []byte(content), 0644)
}
