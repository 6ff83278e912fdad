// Package report renders a DeduplicationResult as text, JSON, or HTML for
// operator consumption.
package report

import (
	"path/filepath"

	"github.com/HaiderBassem/mediadedupe/pkg/api"
	"github.com/sirupsen/logrus"
)

// SizeOf resolves a file's on-disk size, used to estimate space savings.
// Callers typically back this with the FileInfo map assembled during the
// run.
type SizeOf func(id api.FileID) int64

// Generator creates text, JSON, and HTML reports from a DeduplicationResult.
type Generator struct {
	logger *logrus.Logger
	json   *JSONReportGenerator
	text   *TextReportGenerator
	html   *HTMLReportGenerator
}

// NewGenerator creates a new report generator.
func NewGenerator() *Generator {
	return &Generator{
		logger: logrus.New(),
		json:   NewJSONReportGenerator(),
		text:   NewTextReportGenerator(),
		html:   NewHTMLReportGenerator(),
	}
}

// GenerateAll writes text, JSON, and HTML reports into outDir, named
// report.txt, report.json, and report.html.
func (g *Generator) GenerateAll(result *api.DeduplicationResult, sizeOf SizeOf, outDir string) error {
	if err := g.text.Generate(result, sizeOf, filepath.Join(outDir, "report.txt")); err != nil {
		return err
	}
	if err := g.json.Generate(result, sizeOf, filepath.Join(outDir, "report.json")); err != nil {
		return err
	}
	if err := g.html.Generate(result, sizeOf, filepath.Join(outDir, "report.html")); err != nil {
		return err
	}
	g.logger.Infof("reports written to %s", outDir)
	return nil
}

func spaceSavings(result *api.DeduplicationResult, sizeOf SizeOf) int64 {
	var total int64
	for _, set := range result.DuplicateSets {
		for _, id := range set.Duplicates {
			total += sizeOf(id)
		}
	}
	return total
}
