package selector

import (
	"testing"
	"time"

	"github.com/HaiderBassem/mediadedupe/internal/distance"
	"github.com/HaiderBassem/mediadedupe/internal/hash/bitvec"
	"github.com/HaiderBassem/mediadedupe/pkg/api"
	"github.com/stretchr/testify/assert"
)

var selCfg = distance.ThresholdConfig{
	ImageSimilarityThreshold:      0.9,
	ImageVideoSimilarityThreshold: 0.9,
	VideoSimilarityThreshold:      0.9,
	StepSize:                      1,
}

func makeResolver(files map[api.FileID]api.FileInfo) Resolver {
	return func(id api.FileID) api.FileInfo { return files[id] }
}

func TestSelectPicksImageWhenNoVideoPresent(t *testing.T) {
	hashA := bitvec.New(64)
	hashA.Set(1)
	files := map[api.FileID]api.FileInfo{
		"small": {ID: "small", Media: api.MediaInfo{Frames: []api.FrameInfo{{Hash: hashA}}}, Metadata: api.Metadata{Width: 100, Height: 100}, Stats: api.FileStats{Size: 100}},
		"large": {ID: "large", Media: api.MediaInfo{Frames: []api.FrameInfo{{Hash: hashA}}}, Metadata: api.Metadata{Width: 4000, Height: 3000}, Stats: api.FileStats{Size: 5000000}},
	}

	reps := Select([]api.FileID{"small", "large"}, makeResolver(files), selCfg)
	assert.Equal(t, []api.FileID{"large"}, reps)
}

func TestSelectPrefersVideoAndAppendsStillCapture(t *testing.T) {
	hashA := bitvec.New(64)
	hashA.Set(1)
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	videoMedia := api.MediaInfo{
		Duration: 10,
		Frames: []api.FrameInfo{
			{Hash: hashA, Timestamp: 0},
		},
	}
	imageMedia := api.MediaInfo{Frames: []api.FrameInfo{{Hash: hashA, Timestamp: 0}}}

	files := map[api.FileID]api.FileInfo{
		"video": {
			ID: "video", Media: videoMedia,
			Metadata: api.Metadata{Width: 1920, Height: 1080, ImageDate: &date},
			Stats:    api.FileStats{Size: 10000000},
		},
		"still": {
			ID: "still", Media: imageMedia,
			Metadata: api.Metadata{Width: 4000, Height: 3000, ImageDate: &date},
			Stats:    api.FileStats{Size: 8000000},
		},
	}

	reps := Select([]api.FileID{"video", "still"}, makeResolver(files), selCfg)
	assert.Equal(t, []api.FileID{"video", "still"}, reps)
}

func TestSelectExcludesLowerQualityStillWithoutDate(t *testing.T) {
	hashA := bitvec.New(64)
	hashA.Set(1)
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	videoMedia := api.MediaInfo{Duration: 10, Frames: []api.FrameInfo{{Hash: hashA}}}
	imageMedia := api.MediaInfo{Frames: []api.FrameInfo{{Hash: hashA}}}

	files := map[api.FileID]api.FileInfo{
		"video": {
			ID: "video", Media: videoMedia,
			Metadata: api.Metadata{Width: 1920, Height: 1080, ImageDate: &date},
			Stats:    api.FileStats{Size: 10000000},
		},
		"lowres_still": {
			ID: "lowres_still", Media: imageMedia,
			Metadata: api.Metadata{Width: 320, Height: 240}, // lower quality than video, no date
			Stats:    api.FileStats{Size: 10000},
		},
	}

	reps := Select([]api.FileID{"video", "lowres_still"}, makeResolver(files), selCfg)
	assert.Equal(t, []api.FileID{"video"}, reps)
}

func TestScoreVideoOutscoresImage(t *testing.T) {
	video := api.FileInfo{Media: api.MediaInfo{Duration: 5}, Metadata: api.Metadata{Width: 100, Height: 100}, Stats: api.FileStats{Size: 100}}
	image := api.FileInfo{Media: api.MediaInfo{Duration: 0}, Metadata: api.Metadata{Width: 100, Height: 100}, Stats: api.FileStats{Size: 100}}
	assert.Greater(t, Score(video), Score(image))
}
