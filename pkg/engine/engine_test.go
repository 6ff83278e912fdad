package engine

import (
	"testing"

	"github.com/HaiderBassem/mediadedupe/internal/distance"
	"github.com/HaiderBassem/mediadedupe/internal/hash/bitvec"
	"github.com/HaiderBassem/mediadedupe/pkg/api"
	"github.com/stretchr/testify/assert"
)

var testThresholds = distance.ThresholdConfig{
	ImageSimilarityThreshold:      0.9,
	ImageVideoSimilarityThreshold: 0.9,
	VideoSimilarityThreshold:      0.9,
	StepSize:                      1,
}

func TestDefaultConfigVariantsTuneExpectedKnobs(t *testing.T) {
	def := DefaultConfig()
	assert.Equal(t, api.MinPts, def.MinPts)

	hp := HighPerformanceConfig()
	assert.Greater(t, hp.NumWorkers, def.NumWorkers)
	assert.Less(t, hp.HashBits, def.HashBits)

	acc := AccuracyConfig()
	assert.Greater(t, acc.HashBits, def.HashBits)
	assert.GreaterOrEqual(t, acc.Thresholds.ImageSimilarityThreshold, def.Thresholds.ImageSimilarityThreshold)

	fast := FastScanConfig()
	assert.LessOrEqual(t, fast.Thresholds.ImageSimilarityThreshold, def.Thresholds.ImageSimilarityThreshold)
}

func TestBuildDuplicateSetSeparatesRepresentativesFromDuplicates(t *testing.T) {
	members := []api.FileID{"a", "b", "c"}
	reps := []api.FileID{"b"}

	set := buildDuplicateSet(members, reps)
	assert.Equal(t, api.FileID("b"), set.BestFile)
	assert.Equal(t, []api.FileID{"b"}, set.Representatives)
	assert.ElementsMatch(t, []api.FileID{"a", "c"}, set.Duplicates)
}

func TestHasTransferTargetsReflectsConfiguredDirs(t *testing.T) {
	e := &Engine{}
	assert.False(t, e.hasTransferTargets())

	e.config.Transfer.DuplicatesDir = "/tmp/dupes"
	assert.True(t, e.hasTransferTargets())
}

func TestClusterAndSelectGroupsIdenticalHashesAndLeavesSingletonsUnique(t *testing.T) {
	shared := bitvec.New(64)
	shared.Set(3)
	unique := bitvec.New(64)
	for i := 32; i < 64; i++ {
		unique.Set(i)
	}

	infos := map[api.FileID]api.FileInfo{
		"a": {ID: "a", Media: api.MediaInfo{Frames: []api.FrameInfo{{Hash: shared}}}, Metadata: api.Metadata{Width: 100, Height: 100}},
		"b": {ID: "b", Media: api.MediaInfo{Frames: []api.FrameInfo{{Hash: shared}}}, Metadata: api.Metadata{Width: 200, Height: 200}},
		"c": {ID: "c", Media: api.MediaInfo{Frames: []api.FrameInfo{{Hash: unique}}}, Metadata: api.Metadata{Width: 100, Height: 100}},
	}

	e := &Engine{config: Config{Thresholds: testThresholds, MinPts: 1}}
	result := e.clusterAndSelect(infos, nil)

	assert.Len(t, result.DuplicateSets, 1)
	assert.ElementsMatch(t, []api.FileID{"a", "b"}, append(append([]api.FileID{}, result.DuplicateSets[0].Representatives...), result.DuplicateSets[0].Duplicates...))
	assert.Equal(t, []api.FileID{"c"}, result.UniqueFiles)
}
