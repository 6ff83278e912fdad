package cluster

import (
	"sort"
	"testing"

	"github.com/HaiderBassem/mediadedupe/internal/distance"
	"github.com/HaiderBassem/mediadedupe/internal/hash/bitvec"
	"github.com/HaiderBassem/mediadedupe/pkg/api"
	"github.com/stretchr/testify/assert"
)

func imageMedia(bit int) api.MediaInfo {
	v := bitvec.New(64)
	if bit >= 0 {
		v.Set(bit)
	}
	return api.MediaInfo{Frames: []api.FrameInfo{{Hash: v, Timestamp: 0}}}
}

var testCfg = Config{
	Thresholds: distance.ThresholdConfig{
		ImageSimilarityThreshold:      0.9,
		ImageVideoSimilarityThreshold: 0.9,
		VideoSimilarityThreshold:      0.9,
		StepSize:                      1,
	},
	MinPts:      2,
	Concurrency: 1,
}

func TestRunGroupsIdenticalImagesTogether(t *testing.T) {
	far := bitvec.New(64)
	for i := 32; i < 64; i++ {
		far.Set(i)
	}
	points := []Point{
		{ID: "a", Media: imageMedia(-1)},
		{ID: "b", Media: imageMedia(-1)},
		{ID: "c", Media: imageMedia(-1)},
		{ID: "d", Media: api.MediaInfo{Frames: []api.FrameInfo{{Hash: far, Timestamp: 0}}}}, // 32 bits from a/b/c
	}

	clusters := Run(points, testCfg)

	var found bool
	for _, c := range clusters {
		sort.Slice(c.Members, func(i, j int) bool { return c.Members[i] < c.Members[j] })
		if len(c.Members) == 3 {
			assert.Equal(t, []api.FileID{"a", "b", "c"}, c.Members)
			found = true
		}
	}
	assert.True(t, found, "expected a,b,c to form one cluster")
}

func TestRunSingletonBelowMinPts(t *testing.T) {
	points := []Point{
		{ID: "a", Media: imageMedia(1)},
		{ID: "b", Media: imageMedia(30)},
	}
	clusters := Run(points, testCfg)
	assert.Len(t, clusters, 2)
	for _, c := range clusters {
		assert.Len(t, c.Members, 1)
	}
}

func TestRunEmptyInput(t *testing.T) {
	assert.Empty(t, Run(nil, testCfg))
}

func TestRunParallelChunksMergeConsistently(t *testing.T) {
	points := []Point{
		{ID: "a", Media: imageMedia(-1)},
		{ID: "b", Media: imageMedia(-1)},
		{ID: "c", Media: imageMedia(-1)},
		{ID: "d", Media: imageMedia(-1)},
	}
	cfgParallel := testCfg
	cfgParallel.Concurrency = 2 // 4 points split into 2 chunks

	clusters := Run(points, cfgParallel)
	require := assert.New(t)
	require.Len(clusters, 1)
	sort.Slice(clusters[0].Members, func(i, j int) bool { return clusters[0].Members[i] < clusters[0].Members[j] })
	require.Equal([]api.FileID{"a", "b", "c", "d"}, clusters[0].Members)
}
