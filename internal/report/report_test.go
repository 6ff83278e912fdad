package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/HaiderBassem/mediadedupe/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *api.DeduplicationResult {
	return &api.DeduplicationResult{
		UniqueFiles: []api.FileID{"/a.jpg"},
		DuplicateSets: []api.DuplicateSet{
			{
				BestFile:        "/b.jpg",
				Representatives: []api.FileID{"/b.jpg"},
				Duplicates:      []api.FileID{"/c.jpg", "/d.jpg"},
			},
		},
		Failures: []api.FileFailure{
			{Path: "/broken.jpg", Kind: "decode", Err: assert.AnError},
		},
	}
}

func constSizeOf(n int64) SizeOf {
	return func(api.FileID) int64 { return n }
}

func TestTextReportGeneratesFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "report.txt")

	gen := NewTextReportGenerator()
	err := gen.Generate(sampleResult(), constSizeOf(1024), out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "DUPLICATE SETS")
	assert.Contains(t, string(data), "FAILURES")
}

func TestJSONReportGeneratesValidFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "report.json")

	gen := NewJSONReportGenerator()
	err := gen.Generate(sampleResult(), constSizeOf(1024), out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"duplicate_set_count\": 1")
}

func TestHTMLReportGeneratesFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "report.html")

	gen := NewHTMLReportGenerator()
	err := gen.Generate(sampleResult(), constSizeOf(1024), out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Duplicate Sets")
}

func TestGenerateAllWritesAllThreeFormats(t *testing.T) {
	dir := t.TempDir()

	gen := NewGenerator()
	err := gen.GenerateAll(sampleResult(), constSizeOf(2048), dir)
	require.NoError(t, err)

	for _, name := range []string{"report.txt", "report.json", "report.html"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}
