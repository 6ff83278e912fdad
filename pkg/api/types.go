package api

import (
	"time"

	"github.com/HaiderBassem/mediadedupe/internal/hash/bitvec"
)

// FileID identifies a file within a single pipeline run. It is the
// discovered, absolute path — stable for the run, used as the map key
// that owns the corresponding FileInfo and as the VP-tree point identifier.
type FileID string

// FrameInfo is one sampled frame of a file: its perceptual hash and the
// timestamp (seconds) at which it was captured. Frames within a MediaInfo
// are ordered by timestamp, strictly non-decreasing.
type FrameInfo struct {
	Hash      bitvec.Vector `json:"hash"`
	Timestamp float64       `json:"timestamp_seconds"`
}

// MediaInfo is the perceptual fingerprint of a file's visual content:
// an ordered, non-empty frame sequence plus a duration. Duration==0 is
// the image regime (exactly one frame, at timestamp 0); Duration>0 is
// the video regime (at least MinFrames frames).
type MediaInfo struct {
	Frames   []FrameInfo `json:"frames"`
	Duration float64     `json:"duration_seconds"`
}

// IsImage reports whether this MediaInfo represents a still image.
func (m MediaInfo) IsImage() bool { return m.Duration == 0 }

// Metadata holds EXIF-like descriptive metadata about a file. Missing
// optional fields (GPS, camera model, capture date) mean "unknown," not
// a zero value — hence the pointer/bool-guarded fields below.
type Metadata struct {
	Width       int        `json:"width"`
	Height      int        `json:"height"`
	GPSLat      *float64   `json:"gps_lat,omitempty"`
	GPSLon      *float64   `json:"gps_lon,omitempty"`
	CameraModel *string    `json:"camera_model,omitempty"`
	ImageDate   *time.Time `json:"image_date,omitempty"`

	// QualityScore is a supplemental 0-100 diagnostic score (see
	// internal/quality), not part of the core §4.8 scoring policy.
	QualityScore *float64 `json:"quality_score,omitempty"`
}

// HasGPS reports whether both GPS coordinates are known.
func (m Metadata) HasGPS() bool { return m.GPSLat != nil && m.GPSLon != nil }

// FileStats holds size/time/content-hash information derived from the raw
// file on disk.
type FileStats struct {
	ContentHash string    `json:"content_hash"` // hex MD5 over first+last windows, see StatsProducer
	Size        int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
	ModifiedAt  time.Time `json:"modified_at"`
}

// FileInfo is the fully assembled fingerprint of one discovered file:
// its perceptual media fingerprint, descriptive metadata, and file stats.
type FileInfo struct {
	ID       FileID    `json:"id"`
	Path     string    `json:"path"`
	Media    MediaInfo `json:"media"`
	Metadata Metadata  `json:"metadata"`
	Stats    FileStats `json:"stats"`
}

// Quality returns width*height, the measure used by the representative
// selector (spec §4.7) to compare still-image candidates.
func (fi FileInfo) Quality() int64 {
	return int64(fi.Metadata.Width) * int64(fi.Metadata.Height)
}

// Cluster is a set of file identifiers discovered to be near-duplicates,
// with at least one chosen representative.
type Cluster struct {
	Members         []FileID `json:"members"`
	Representatives []FileID `json:"representatives"`
}

// DuplicateSet is the externally reported form of a Cluster: a single
// best file, the full representative list (bestFile included, first),
// and the remaining duplicates.
type DuplicateSet struct {
	BestFile        FileID   `json:"best_file"`
	Representatives []FileID `json:"representatives"`
	Duplicates      []FileID `json:"duplicates"`
}

// FileFailure records a per-file error that removed it from consideration
// (spec §7: such a file never appears in any duplicate set).
type FileFailure struct {
	Path string `json:"path"`
	Err  error  `json:"-"`
	Kind string `json:"kind"`
}

func (f FileFailure) Error() string { return f.Kind + ": " + f.Path + ": " + f.Err.Error() }

// DeduplicationResult is the output of a full pipeline run.
type DeduplicationResult struct {
	UniqueFiles   []FileID       `json:"unique_files"`
	DuplicateSets []DuplicateSet `json:"duplicate_sets"`
	Failures      []FileFailure  `json:"failures"`
}

// Progress reports pipeline advancement for a single stage.
type Progress struct {
	Stage      string  `json:"stage"`
	Current    int     `json:"current"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
	CurrentRef string  `json:"current_ref"`
}
