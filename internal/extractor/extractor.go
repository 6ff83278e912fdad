// Package extractor implements the adaptive frame extraction algorithm
// (spec.md §4.2): one frame for images, scene-change-driven sampling
// bounded by min/max frame counts for video.
package extractor

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/HaiderBassem/mediadedupe/internal/hash"
	"github.com/HaiderBassem/mediadedupe/internal/mediaio"
	"github.com/HaiderBassem/mediadedupe/pkg/api"
)

// Extractor turns a file on disk into its api.MediaInfo fingerprint.
type Extractor struct {
	Images mediaio.ImageDecoder
	Videos mediaio.VideoDecoder
	Hasher *hash.Hasher
	Config Config
}

// New constructs an Extractor.
func New(images mediaio.ImageDecoder, videos mediaio.VideoDecoder, hasher *hash.Hasher, cfg Config) *Extractor {
	return &Extractor{Images: images, Videos: videos, Hasher: hasher, Config: cfg}
}

// ExtractImage implements the image regime: resize to R×R grayscale,
// compute one hash at timestamp 0, duration 0.
func (e *Extractor) ExtractImage(path string) (api.MediaInfo, error) {
	buf, err := e.Images.DecodeGray(path, e.Config.Resolution)
	if err != nil {
		return api.MediaInfo{}, fmt.Errorf("extractor: %w: %v", api.ErrInvalidInput, err)
	}
	h, err := e.Hasher.Compute(buf)
	if err != nil {
		return api.MediaInfo{}, fmt.Errorf("extractor: %w: %v", api.ErrInvalidInput, err)
	}
	return api.MediaInfo{
		Frames:   []api.FrameInfo{{Hash: h, Timestamp: 0}},
		Duration: 0,
	}, nil
}

// ExtractVideo implements the video regime of spec.md §4.2.
func (e *Extractor) ExtractVideo(ctx context.Context, path string) (api.MediaInfo, error) {
	duration, err := e.Videos.Duration(ctx, path)
	if err != nil {
		return api.MediaInfo{}, fmt.Errorf("extractor: %w: %v", api.ErrInvalidInput, err)
	}
	if duration <= 0 {
		return api.MediaInfo{}, fmt.Errorf("extractor: %w: non-positive duration", api.ErrInvalidInput)
	}

	var timestamps []float64
	if duration <= e.Config.ShortVideoThreshold {
		timestamps = evenlySpaced(duration, e.Config.MinFrames)
	} else {
		timestamps, err = e.sceneChangeTimestamps(ctx, path, duration)
		if err != nil {
			return api.MediaInfo{}, err
		}
		if len(timestamps) < e.Config.MinFrames {
			timestamps = mergeSorted(timestamps, evenlySpaced(duration, e.Config.MinFrames))
		}
		maxAllowed := int(e.Config.TargetFPS * duration)
		if e.Config.MaxSceneFrames > maxAllowed {
			maxAllowed = e.Config.MaxSceneFrames
		}
		if len(timestamps) > maxAllowed {
			timestamps = subsampleUniform(timestamps, maxAllowed)
		}
	}

	frames, err := e.hashFramesAt(ctx, path, timestamps)
	if err != nil {
		return api.MediaInfo{}, err
	}

	return api.MediaInfo{Frames: frames, Duration: duration}, nil
}

// sceneChangeTimestamps probes the video at MaxSceneFrames*4 evenly
// spaced timestamps (at least MinFrames), decoding
// candidate frames concurrently (bounded by Config.Concurrency, the
// same shape as the pack's parallel frame-analysis extractor), then
// walks the probe results in timestamp order comparing successive mean
// luminance to find scene changes.
func (e *Extractor) sceneChangeTimestamps(ctx context.Context, path string, duration float64) ([]float64, error) {
	probeCount := e.Config.MaxSceneFrames * 4
	if probeCount < e.Config.MinFrames {
		probeCount = e.Config.MinFrames
	}
	probeTimes := evenlySpaced(duration, probeCount)

	lumas := make([]float64, len(probeTimes))
	errs := make([]error, len(probeTimes))

	concurrency := e.Config.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i, t := range probeTimes {
		wg.Add(1)
		go func(idx int, ts float64) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			buf, err := e.Videos.FrameAt(ctx, path, ts, e.Config.Resolution)
			if err != nil {
				errs[idx] = err
				return
			}
			lumas[idx] = meanOf(buf)
		}(i, t)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("extractor: %w: %v", api.ErrInvalidInput, err)
		}
	}

	var changes []float64
	for i := 1; i < len(lumas); i++ {
		if absFloat(lumas[i]-lumas[i-1]) > e.Config.SceneChangeThreshold {
			changes = append(changes, probeTimes[i])
		}
	}
	return changes, nil
}

// hashFramesAt decodes and hashes the video at each timestamp
// concurrently, then returns frames sorted by timestamp.
func (e *Extractor) hashFramesAt(ctx context.Context, path string, timestamps []float64) ([]api.FrameInfo, error) {
	frames := make([]api.FrameInfo, len(timestamps))
	errs := make([]error, len(timestamps))

	concurrency := e.Config.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i, t := range timestamps {
		wg.Add(1)
		go func(idx int, ts float64) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			buf, err := e.Videos.FrameAt(ctx, path, ts, e.Config.Resolution)
			if err != nil {
				errs[idx] = err
				return
			}
			h, err := e.Hasher.Compute(buf)
			if err != nil {
				errs[idx] = err
				return
			}
			frames[idx] = api.FrameInfo{Hash: h, Timestamp: ts}
		}(i, t)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("extractor: %w: %v", api.ErrInvalidInput, err)
		}
	}

	sort.Slice(frames, func(i, j int) bool { return frames[i].Timestamp < frames[j].Timestamp })
	return frames, nil
}

func evenlySpaced(duration float64, n int) []float64 {
	if n <= 1 {
		return []float64{0}
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = duration * float64(i) / float64(n-1)
	}
	return out
}

func mergeSorted(a, b []float64) []float64 {
	out := append([]float64{}, a...)
	out = append(out, b...)
	sort.Float64s(out)
	return dedupe(out)
}

func dedupe(sorted []float64) []float64 {
	if len(sorted) == 0 {
		return sorted
	}
	out := sorted[:1]
	for _, v := range sorted[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// subsampleUniform picks n evenly spaced indices from sorted (already
// timestamp-sorted) timestamps.
func subsampleUniform(sorted []float64, n int) []float64 {
	if n >= len(sorted) {
		return sorted
	}
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		idx := i * (len(sorted) - 1) / maxInt(1, n-1)
		out[i] = sorted[idx]
	}
	return out
}

func meanOf(buf []float64) float64 {
	if len(buf) == 0 {
		return 0
	}
	var sum float64
	for _, v := range buf {
		sum += v
	}
	return sum / float64(len(buf))
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
