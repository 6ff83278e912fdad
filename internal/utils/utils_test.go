package utils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleConfig struct {
	Concurrency int    `yaml:"concurrency"`
	CacheDir    string `yaml:"cache_dir"`
}

func TestConfigManagerSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cm := NewConfigManager(path)

	saved := sampleConfig{Concurrency: 8, CacheDir: "/tmp/cache"}
	require.NoError(t, cm.SaveConfig(&saved))
	assert.True(t, cm.ConfigExists())

	var loaded sampleConfig
	require.NoError(t, cm.LoadConfig(&loaded))
	assert.Equal(t, saved, loaded)
}

func TestProgressTrackerSnapshotReflectsCurrent(t *testing.T) {
	tracker := NewProgressTracker(10, "fingerprinting")
	tracker.Set(4)

	snap := tracker.Snapshot()
	assert.Equal(t, "fingerprinting", snap.Stage)
	assert.Equal(t, 4, snap.Current)
	assert.Equal(t, 10, snap.Total)
	assert.InDelta(t, 40.0, snap.Percentage, 0.001)
}

func TestNewLoggerDefaultsToInfoLevelOnInvalidLevel(t *testing.T) {
	logger, err := NewLogger(LogConfig{Level: "not-a-level"})
	require.NoError(t, err)
	assert.Equal(t, "info", logger.GetLevel().String())
}
