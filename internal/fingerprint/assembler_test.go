package fingerprint

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/HaiderBassem/mediadedupe/internal/cache"
	"github.com/HaiderBassem/mediadedupe/internal/extractor"
	"github.com/HaiderBassem/mediadedupe/internal/hash"
	"github.com/HaiderBassem/mediadedupe/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeImageDecoder struct{ calls int }

func (f *fakeImageDecoder) DecodeGray(path string, r int) ([]float64, error) {
	f.calls++
	buf := make([]float64, r*r)
	for i := range buf {
		buf[i] = 0.5
	}
	return buf, nil
}

type fakeStatsProducer struct{ calls int }

func (f *fakeStatsProducer) Stat(path string) (api.FileStats, error) {
	f.calls++
	info, err := os.Stat(path)
	if err != nil {
		return api.FileStats{}, err
	}
	return api.FileStats{
		ContentHash: "fixed-hash",
		Size:        info.Size(),
		CreatedAt:   info.ModTime(),
		ModifiedAt:  info.ModTime(),
	}, nil
}

type fakeMetadataProducer struct{ calls int }

func (f *fakeMetadataProducer) Extract(path string) (api.Metadata, error) {
	f.calls++
	return api.Metadata{Width: 100, Height: 100}, nil
}

func TestGetFileInfoComputesOnceAndCachesOnSecondCall(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.jpg")
	require.NoError(t, os.WriteFile(path, []byte("fake jpeg bytes"), 0o644))

	imgDecoder := &fakeImageDecoder{}
	statsProd := &fakeStatsProducer{}
	metaProd := &fakeMetadataProducer{}
	h := hash.NewHasher(8, 4)
	ext := extractor.New(imgDecoder, nil, h, extractor.Config{Resolution: 8})
	store := cache.NewMemoryStore()

	asm := New(store, statsProd, metaProd, ext, extractor.Config{Resolution: 8})

	first, err := asm.GetFileInfo(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, api.FileID(path), first.ID)
	assert.Len(t, first.Media.Frames, 1)
	assert.Equal(t, 1, imgDecoder.calls)
	assert.Equal(t, 1, metaProd.calls)

	second, err := asm.GetFileInfo(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, first.Media, second.Media)
	// Extraction and metadata jobs hit the per-content-hash cache on
	// the second call; only the stat invalidation check re-runs.
	assert.Equal(t, 1, imgDecoder.calls)
	assert.Equal(t, 1, metaProd.calls)
}

func TestGetFileInfoSkipsStatRecomputeWhenUnchanged(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.jpg")
	require.NoError(t, os.WriteFile(path, []byte("fake jpeg bytes"), 0o644))

	imgDecoder := &fakeImageDecoder{}
	statsProd := &fakeStatsProducer{}
	metaProd := &fakeMetadataProducer{}
	h := hash.NewHasher(8, 4)
	ext := extractor.New(imgDecoder, nil, h, extractor.Config{Resolution: 8})
	store := cache.NewMemoryStore()
	asm := New(store, statsProd, metaProd, ext, extractor.Config{Resolution: 8})

	_, err := asm.GetFileInfo(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, statsProd.calls)

	_, err = asm.GetFileInfo(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, statsProd.calls, "stat producer should not be called again when size/mtime are unchanged")
}
