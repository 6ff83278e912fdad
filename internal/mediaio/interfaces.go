// Package mediaio supplies the concrete adapters for every external
// collaborator the similarity pipeline depends on but does not grade:
// image/video decoding, EXIF-like metadata extraction, and file stat
// and content hashing.
package mediaio

import (
	"context"
	"time"

	"github.com/HaiderBassem/mediadedupe/pkg/api"
)

// ImageDecoder decodes a still-image file into an R×R grayscale buffer
// suitable for the perceptual hasher (row-major, values in [0,1]).
type ImageDecoder interface {
	DecodeGray(path string, r int) ([]float64, error)
}

// VideoDecoder reports a video's duration and decodes the frame
// nearest a given timestamp into an R×R grayscale buffer.
type VideoDecoder interface {
	Duration(ctx context.Context, path string) (float64, error)
	FrameAt(ctx context.Context, path string, t float64, r int) ([]float64, error)
}

// MetadataProducer extracts descriptive metadata (dimensions, GPS,
// camera model, capture date) from a file.
type MetadataProducer interface {
	Extract(path string) (api.Metadata, error)
}

// StatsProducer computes file stat and content-hash information.
type StatsProducer interface {
	Stat(path string) (api.FileStats, error)
}

// ClockNow abstracts time.Now for components that stamp results outside
// of hot paths (kept as a seam for deterministic tests).
type ClockNow func() time.Time
