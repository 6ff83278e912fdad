package distance

import (
	"testing"

	"github.com/HaiderBassem/mediadedupe/internal/hash/bitvec"
	"github.com/HaiderBassem/mediadedupe/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hashWithBit(n int, bit int) bitvec.Vector {
	v := bitvec.New(n)
	if bit >= 0 {
		v.Set(bit)
	}
	return v
}

var defaultCfg = ThresholdConfig{
	ImageSimilarityThreshold:      0.98,
	ImageVideoSimilarityThreshold: 0.93,
	VideoSimilarityThreshold:      0.93,
	StepSize:                      1,
}

func TestSimilarityIdenticalImages(t *testing.T) {
	h := hashWithBit(64, -1)
	a := api.MediaInfo{Frames: []api.FrameInfo{{Hash: h, Timestamp: 0}}}
	b := api.MediaInfo{Frames: []api.FrameInfo{{Hash: h, Timestamp: 0}}}

	sim, err := Similarity(a, b, defaultCfg)
	require.NoError(t, err)
	assert.Equal(t, 1.0, sim)
}

func TestSimilarityEmptyFramesIsPrecondition(t *testing.T) {
	a := api.MediaInfo{Frames: nil}
	b := api.MediaInfo{Frames: []api.FrameInfo{{Hash: hashWithBit(64, -1)}}}

	_, err := Similarity(a, b, defaultCfg)
	assert.ErrorIs(t, err, api.ErrDistancePrecondition)
}

func TestSimilarityImageVideoFindsMatchingFrame(t *testing.T) {
	target := hashWithBit(64, 3)
	image := api.MediaInfo{Frames: []api.FrameInfo{{Hash: target, Timestamp: 0}}}
	video := api.MediaInfo{
		Duration: 10,
		Frames: []api.FrameInfo{
			{Hash: hashWithBit(64, 40), Timestamp: 0},
			{Hash: target, Timestamp: 5},
			{Hash: hashWithBit(64, 50), Timestamp: 9},
		},
	}

	sim, err := Similarity(image, video, defaultCfg)
	require.NoError(t, err)
	assert.Equal(t, 1.0, sim)
}

func TestSimilarityVideoVideoIdenticalSequences(t *testing.T) {
	frames := []api.FrameInfo{
		{Hash: hashWithBit(64, 1), Timestamp: 0},
		{Hash: hashWithBit(64, 2), Timestamp: 2},
		{Hash: hashWithBit(64, 3), Timestamp: 4},
	}
	a := api.MediaInfo{Duration: 4, Frames: frames}
	b := api.MediaInfo{Duration: 4, Frames: frames}

	sim, err := Similarity(a, b, defaultCfg)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sim, 1e-9)
}

func TestDTWIdenticalSequencesHasZeroDistance(t *testing.T) {
	seq := []bitvec.Vector{hashWithBit(8, 0), hashWithBit(8, 1), hashWithBit(8, 2)}
	assert.Equal(t, 0.0, dtw(seq, seq))
}

func TestDTWEmptySequenceCostsLength(t *testing.T) {
	seq := []bitvec.Vector{hashWithBit(8, 0), hashWithBit(8, 1)}
	assert.Equal(t, float64(len(seq)), dtw(nil, seq))
}
