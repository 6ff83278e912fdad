package engine

import (
	"github.com/HaiderBassem/mediadedupe/internal/cache"
	"github.com/HaiderBassem/mediadedupe/internal/distance"
	"github.com/HaiderBassem/mediadedupe/internal/extractor"
	"github.com/HaiderBassem/mediadedupe/internal/transfer"
	"github.com/HaiderBassem/mediadedupe/pkg/api"
)

// Config defines the configuration for the deduplication engine: the
// cache backend, scanner/extractor/hasher knobs, the clustering
// thresholds, and where relocated files land.
type Config struct {
	CacheType cache.Type `yaml:"cache_type"`
	CachePath string     `yaml:"cache_path"`

	NumWorkers int    `yaml:"num_workers"`
	LogLevel   string `yaml:"log_level"`

	Extractor  extractor.Config         `yaml:"extractor"`
	HashBits   int                      `yaml:"hash_bits"`
	Thresholds distance.ThresholdConfig `yaml:"thresholds"`
	MinPts     int                      `yaml:"min_pts"`

	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`

	Transfer transfer.Config `yaml:"transfer"`
}

// DefaultConfig returns the engine's balanced default configuration,
// mirroring the teacher's DefaultConfig/HighPerformanceConfig/AccuracyConfig
// spread: one baseline plus named variants tuned for a single axis.
func DefaultConfig() Config {
	return Config{
		CacheType:  cache.TypeBolt,
		CachePath:  "mediadedupe-cache.db",
		NumWorkers: 4,
		LogLevel:   "info",
		Extractor: extractor.Config{
			Resolution:           32,
			MinFrames:            3,
			MaxSceneFrames:       12,
			TargetFPS:            1,
			SceneChangeThreshold: 0.08,
			ShortVideoThreshold:  3,
			Concurrency:          4,
		},
		HashBits: 64,
		Thresholds: distance.ThresholdConfig{
			ImageSimilarityThreshold:      0.90,
			ImageVideoSimilarityThreshold: 0.90,
			VideoSimilarityThreshold:      0.85,
			StepSize:                      1,
		},
		MinPts: api.MinPts,
		Transfer: transfer.Config{
			Mode: transfer.ModeMove,
		},
	}
}

// HighPerformanceConfig favors throughput: a larger worker pool, a
// coarser hash, and an in-memory cache that skips disk I/O entirely.
func HighPerformanceConfig() Config {
	cfg := DefaultConfig()
	cfg.NumWorkers = 16
	cfg.Extractor.Concurrency = 16
	cfg.Extractor.Resolution = 16
	cfg.HashBits = 36
	cfg.CacheType = cache.TypeMemory
	return cfg
}

// AccuracyConfig favors recall/precision over speed: a finer hash, more
// sampled video frames, and tighter similarity thresholds.
func AccuracyConfig() Config {
	cfg := DefaultConfig()
	cfg.Extractor.Resolution = 64
	cfg.Extractor.MaxSceneFrames = 24
	cfg.HashBits = 144
	cfg.Thresholds.ImageSimilarityThreshold = 0.95
	cfg.Thresholds.ImageVideoSimilarityThreshold = 0.95
	cfg.Thresholds.VideoSimilarityThreshold = 0.92
	return cfg
}

// FastScanConfig favors a quick first pass: fewer frames per video and a
// looser acceptance threshold, at the cost of missing marginal duplicates.
func FastScanConfig() Config {
	cfg := DefaultConfig()
	cfg.Extractor.MinFrames = 2
	cfg.Extractor.MaxSceneFrames = 6
	cfg.Thresholds.ImageSimilarityThreshold = 0.85
	cfg.Thresholds.VideoSimilarityThreshold = 0.80
	return cfg
}
