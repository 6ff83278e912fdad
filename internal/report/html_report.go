package report

import (
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/HaiderBassem/mediadedupe/pkg/api"
	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
)

// HTMLReportGenerator generates HTML format reports.
type HTMLReportGenerator struct {
	logger *logrus.Logger
}

// NewHTMLReportGenerator creates a new HTML report generator.
func NewHTMLReportGenerator() *HTMLReportGenerator {
	return &HTMLReportGenerator{logger: logrus.New()}
}

// HTMLReportData is fed to the HTML template.
type HTMLReportData struct {
	*api.DeduplicationResult
	GeneratedAt        time.Time
	DuplicateFileCount int
	SpaceSavings       string
}

// Generate generates a comprehensive HTML report.
func (h *HTMLReportGenerator) Generate(result *api.DeduplicationResult, sizeOf SizeOf, outputPath string) error {
	var duplicateFiles int
	for _, set := range result.DuplicateSets {
		duplicateFiles += len(set.Duplicates)
	}

	data := HTMLReportData{
		DeduplicationResult: result,
		GeneratedAt:         time.Now(),
		DuplicateFileCount:  duplicateFiles,
		SpaceSavings:        humanize.Bytes(uint64(spaceSavings(result, sizeOf))),
	}

	tmpl := template.Must(template.New("report").Funcs(template.FuncMap{
		"formatTime": func(t time.Time) string { return t.Format("2006-01-02 15:04:05") },
	}).Parse(htmlTemplate))

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create HTML report: %w", err)
	}
	defer file.Close()

	if err := tmpl.Execute(file, data); err != nil {
		return fmt.Errorf("execute HTML template: %w", err)
	}

	h.logger.Infof("HTML report saved to: %s", outputPath)
	return nil
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Media Deduplication Report</title>
    <style>
        :root {
            --primary-color: #3498db;
            --secondary-color: #2c3e50;
            --success-color: #27ae60;
            --warning-color: #f39c12;
            --danger-color: #e74c3c;
            --light-bg: #f8f9fa;
        }
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
            line-height: 1.6;
            color: #333;
            background-color: #f5f5f5;
        }
        .container { max-width: 1200px; margin: 0 auto; padding: 20px; }
        .header {
            background: linear-gradient(135deg, var(--primary-color), var(--secondary-color));
            color: white;
            padding: 2rem;
            border-radius: 10px;
            margin-bottom: 2rem;
        }
        .header h1 { font-size: 2.5rem; margin-bottom: 0.5rem; }
        .header .subtitle { font-size: 1.1rem; opacity: 0.9; }
        .stats-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(220px, 1fr));
            gap: 1.5rem;
            margin-bottom: 2rem;
        }
        .stat-card {
            background: white;
            padding: 1.5rem;
            border-radius: 8px;
            box-shadow: 0 2px 4px rgba(0, 0, 0, 0.1);
            text-align: center;
            border-left: 4px solid var(--primary-color);
        }
        .stat-card.highlight { border-left-color: var(--success-color); }
        .stat-number { font-size: 2rem; font-weight: bold; color: var(--secondary-color); }
        .stat-label { color: #666; font-size: 0.9rem; }
        .section {
            background: white;
            padding: 2rem;
            border-radius: 8px;
            box-shadow: 0 2px 4px rgba(0, 0, 0, 0.1);
            margin-bottom: 2rem;
        }
        .section-title {
            font-size: 1.5rem;
            color: var(--secondary-color);
            margin-bottom: 1.5rem;
            padding-bottom: 0.5rem;
            border-bottom: 2px solid var(--light-bg);
        }
        .duplicate-set {
            background: var(--light-bg);
            padding: 1rem;
            border-radius: 6px;
            margin-bottom: 1rem;
            border-left: 4px solid var(--warning-color);
        }
        .file-list {
            max-height: 200px;
            overflow-y: auto;
            background: white;
            padding: 0.5rem;
            border-radius: 4px;
            font-family: monospace;
            font-size: 0.9rem;
        }
        .footer { text-align: center; padding: 2rem; color: #666; font-size: 0.9rem; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Media Deduplication Report</h1>
            <div class="subtitle">Generated on {{.GeneratedAt | formatTime}}</div>
        </div>

        <div class="stats-grid">
            <div class="stat-card">
                <div class="stat-number">{{len .UniqueFiles}}</div>
                <div class="stat-label">Unique Files</div>
            </div>
            <div class="stat-card highlight">
                <div class="stat-number">{{len .DuplicateSets}}</div>
                <div class="stat-label">Duplicate Sets</div>
            </div>
            <div class="stat-card">
                <div class="stat-number">{{.DuplicateFileCount}}</div>
                <div class="stat-label">Duplicate Files</div>
            </div>
            <div class="stat-card">
                <div class="stat-number">{{.SpaceSavings}}</div>
                <div class="stat-label">Estimated Savings</div>
            </div>
        </div>

        {{if .DuplicateSets}}
        <div class="section">
            <h2 class="section-title">Duplicate Sets</h2>
            {{range .DuplicateSets}}
            <div class="duplicate-set">
                <div><strong>Best File:</strong> {{.BestFile}}</div>
                <div><strong>Representatives:</strong> {{len .Representatives}}</div>
                <div><strong>Duplicates:</strong> {{len .Duplicates}} files</div>
                {{if .Duplicates}}
                <details style="margin-top: 0.5rem;">
                    <summary>Show duplicate files</summary>
                    <div class="file-list">
                        {{range .Duplicates}}
                        <div>{{.}}</div>
                        {{end}}
                    </div>
                </details>
                {{end}}
            </div>
            {{end}}
        </div>
        {{end}}

        {{if .Failures}}
        <div class="section">
            <h2 class="section-title">Failures</h2>
            <div class="file-list">
                {{range .Failures}}
                <div>{{.Path}} ({{.Kind}})</div>
                {{end}}
            </div>
        </div>
        {{end}}

        <div class="footer">
            <p>Report generated on {{.GeneratedAt | formatTime}}</p>
        </div>
    </div>
</body>
</html>`
