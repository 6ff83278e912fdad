// Package distance implements the similarity pipeline's distance
// function (spec.md §4.4): d(a,b) = 1 - sim(a,b) over two MediaInfo
// values, dispatching on image/image, image/video, and video/video
// regimes.
package distance

import (
	"github.com/HaiderBassem/mediadedupe/internal/hash/bitvec"
	"github.com/HaiderBassem/mediadedupe/pkg/api"
)

// ThresholdConfig holds the three regime-specific similarity
// thresholds and the windowing parameters used by the video/video
// regime.
type ThresholdConfig struct {
	ImageSimilarityThreshold      float64
	ImageVideoSimilarityThreshold float64
	VideoSimilarityThreshold      float64
	StepSize                      float64
}

// MinThreshold returns the minimum of the three regime thresholds,
// which governs the VP-tree range query radius (spec.md §4.4).
func (c ThresholdConfig) MinThreshold() float64 {
	min := c.ImageSimilarityThreshold
	if c.ImageVideoSimilarityThreshold < min {
		min = c.ImageVideoSimilarityThreshold
	}
	if c.VideoSimilarityThreshold < min {
		min = c.VideoSimilarityThreshold
	}
	return min
}

// Similarity computes sim(a,b) in [0,1], dispatching to the regime
// implied by whether a and b are images (duration==0) or videos.
func Similarity(a, b api.MediaInfo, cfg ThresholdConfig) (float64, error) {
	if len(a.Frames) == 0 || len(b.Frames) == 0 {
		return 0, api.ErrDistancePrecondition
	}

	switch {
	case a.IsImage() && b.IsImage():
		return imageImageSimilarity(a, b), nil
	case a.IsImage() != b.IsImage():
		image, video := a, b
		if b.IsImage() {
			image, video = b, a
		}
		return imageVideoSimilarity(image, video, cfg.ImageVideoSimilarityThreshold), nil
	default:
		return videoVideoSimilarity(a, b, cfg), nil
	}
}

// Distance returns 1 - Similarity(a,b).
func Distance(a, b api.MediaInfo, cfg ThresholdConfig) (float64, error) {
	sim, err := Similarity(a, b, cfg)
	if err != nil {
		return 0, err
	}
	return 1 - sim, nil
}

func imageImageSimilarity(a, b api.MediaInfo) float64 {
	return a.Frames[0].Hash.Similarity(b.Frames[0].Hash)
}

// imageVideoSimilarity slides a single-frame match across the video's
// frames, returning the maximum image/image similarity and
// short-circuiting once it reaches threshold.
func imageVideoSimilarity(image, video api.MediaInfo, threshold float64) float64 {
	best := 0.0
	imgHash := image.Frames[0].Hash
	for _, f := range video.Frames {
		sim := imgHash.Similarity(f.Hash)
		if sim > best {
			best = sim
		}
		if best >= threshold {
			return best
		}
	}
	return best
}

// videoVideoSimilarity slides a window of length shorter.Duration
// across longer.Duration in increments of cfg.StepSize, computing a
// DTW-based sequence similarity between the full shorter sequence and
// the longer sequence's frames falling within each window. Returns the
// best (maximum), short-circuiting once it reaches threshold.
func videoVideoSimilarity(a, b api.MediaInfo, cfg ThresholdConfig) float64 {
	shorter, longer := a, b
	if b.Duration < a.Duration {
		shorter, longer = b, a
	}

	step := cfg.StepSize
	if step <= 0 {
		step = 1
	}

	shorterHashes := hashesOf(shorter.Frames)

	best := 0.0
	windowLen := shorter.Duration
	maxStart := longer.Duration - windowLen
	if maxStart < 0 {
		maxStart = 0
	}

	for start := 0.0; ; start += step {
		end := start + windowLen
		windowFrames := framesInWindow(longer.Frames, start, end)
		sim := sequenceSimilarity(shorterHashes, hashesOf(windowFrames))
		if sim > best {
			best = sim
		}
		if best >= cfg.VideoSimilarityThreshold {
			return best
		}
		if start >= maxStart {
			break
		}
	}
	return best
}

func hashesOf(frames []api.FrameInfo) []bitvec.Vector {
	out := make([]bitvec.Vector, len(frames))
	for i, f := range frames {
		out[i] = f.Hash
	}
	return out
}

func framesInWindow(frames []api.FrameInfo, start, end float64) []api.FrameInfo {
	var out []api.FrameInfo
	for _, f := range frames {
		if f.Timestamp >= start && f.Timestamp <= end {
			out = append(out, f)
		}
	}
	return out
}
