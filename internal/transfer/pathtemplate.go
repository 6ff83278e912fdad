package transfer

import (
	"path/filepath"
	"strings"
	"time"
)

// PathTemplate expands tokens {{year}}, {{month}}, {{day}} and {{camera}}
// against a file's ImageDate/camera metadata (any other {{...}} text is
// left as written), producing a
// destination subdirectory relative to a transfer's root output dir.
// Grounded on the teacher's PathUtils helpers, generalized from simple
// path manipulation to a small templating mini-language.
type PathTemplate struct {
	pattern string
}

// NewPathTemplate builds a PathTemplate from a pattern like
// "{{year}}/{{month}}/{{camera}}".
func NewPathTemplate(pattern string) PathTemplate {
	return PathTemplate{pattern: pattern}
}

// Expand resolves the template against the given date (may be zero) and
// camera model (may be empty), returning a relative directory path.
func (p PathTemplate) Expand(date time.Time, camera string) string {
	out := p.pattern

	if date.IsZero() {
		out = strings.ReplaceAll(out, "{{year}}", "unknown_date")
		out = strings.ReplaceAll(out, "{{month}}", "unknown_date")
		out = strings.ReplaceAll(out, "{{day}}", "unknown_date")
	} else {
		out = strings.ReplaceAll(out, "{{year}}", date.Format("2006"))
		out = strings.ReplaceAll(out, "{{month}}", date.Format("01"))
		out = strings.ReplaceAll(out, "{{day}}", date.Format("02"))
	}

	if camera == "" {
		camera = "unknown_camera"
	}
	out = strings.ReplaceAll(out, "{{camera}}", sanitizeSegment(camera))

	return filepath.Clean(out)
}

// sanitizeSegment removes path separators from a value about to become
// one path segment, preventing directory traversal via metadata.
func sanitizeSegment(s string) string {
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, "..", "_")
	return s
}
