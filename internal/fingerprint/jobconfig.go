package fingerprint

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/HaiderBassem/mediadedupe/internal/extractor"
)

// jobConfigHash stringifies the cache-key-relevant subset of a
// extractor.Config (spec.md §4.3 point 2: image jobs compare only
// resolution; video jobs additionally compare fps/frame-count bounds).
func jobConfigHash(cfg extractor.Config, isImage bool) string {
	key := cfg.Hash(isImage)
	return fmt.Sprintf("%+v", key)
}

var videoExtensions = map[string]bool{
	".mp4": true, ".mov": true, ".avi": true, ".mkv": true,
	".webm": true, ".m4v": true, ".wmv": true, ".flv": true,
}

// IsVideoPath classifies a discovered path as video or still image by
// extension. This is the same extension-dispatch boundary the
// teacher's scanner already performs for image formats, extended to
// video.
func IsVideoPath(path string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(path))]
}
