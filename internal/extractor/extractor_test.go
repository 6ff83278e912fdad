package extractor

import (
	"context"
	"testing"

	"github.com/HaiderBassem/mediadedupe/internal/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeImageDecoder struct {
	buf []float64
	err error
}

func (f *fakeImageDecoder) DecodeGray(path string, r int) ([]float64, error) {
	return f.buf, f.err
}

type fakeVideoDecoder struct {
	duration float64
	// frameAt returns a buffer whose mean luminance is a function of t,
	// to exercise scene-change detection deterministically.
	frameAt func(t float64, r int) []float64
}

func (f *fakeVideoDecoder) Duration(ctx context.Context, path string) (float64, error) {
	return f.duration, nil
}

func (f *fakeVideoDecoder) FrameAt(ctx context.Context, path string, t float64, r int) ([]float64, error) {
	return f.frameAt(t, r), nil
}

func solidBuffer(r int, v float64) []float64 {
	buf := make([]float64, r*r)
	for i := range buf {
		buf[i] = v
	}
	return buf
}

func TestExtractImageProducesOneFrameAtZero(t *testing.T) {
	h := hash.NewHasher(16, 16)
	ext := New(&fakeImageDecoder{buf: solidBuffer(16, 0.5)}, nil, h, Config{Resolution: 16})

	media, err := ext.ExtractImage("photo.jpg")
	require.NoError(t, err)
	assert.Equal(t, float64(0), media.Duration)
	require.Len(t, media.Frames, 1)
	assert.Equal(t, float64(0), media.Frames[0].Timestamp)
	assert.True(t, media.IsImage())
}

func TestExtractShortVideoUsesEvenlySpacedFrames(t *testing.T) {
	h := hash.NewHasher(16, 16)
	video := &fakeVideoDecoder{
		duration: 10,
		frameAt:  func(t float64, r int) []float64 { return solidBuffer(r, 0.5) },
	}
	cfg := Config{Resolution: 16, MinFrames: 3, ShortVideoThreshold: 15, Concurrency: 2}
	ext := New(nil, video, h, cfg)

	media, err := ext.ExtractVideo(context.Background(), "clip.mp4")
	require.NoError(t, err)
	assert.Equal(t, float64(10), media.Duration)
	assert.Len(t, media.Frames, 3)
	assert.Equal(t, float64(0), media.Frames[0].Timestamp)
	assert.Equal(t, float64(10), media.Frames[len(media.Frames)-1].Timestamp)
}

func TestExtractLongVideoDetectsSceneChanges(t *testing.T) {
	h := hash.NewHasher(16, 16)
	video := &fakeVideoDecoder{
		duration: 60,
		frameAt: func(t float64, r int) []float64 {
			// Luminance jumps at t>=30 to create exactly one scene change.
			if t >= 30 {
				return solidBuffer(r, 1.0)
			}
			return solidBuffer(r, 0.0)
		},
	}
	cfg := Config{
		Resolution:           16,
		MinFrames:            3,
		MaxSceneFrames:       10,
		TargetFPS:            0.1,
		SceneChangeThreshold: 0.3,
		ShortVideoThreshold:  15,
		Concurrency:          4,
	}
	ext := New(nil, video, h, cfg)

	media, err := ext.ExtractVideo(context.Background(), "movie.mp4")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(media.Frames), cfg.MinFrames)
	for i := 1; i < len(media.Frames); i++ {
		assert.LessOrEqual(t, media.Frames[i-1].Timestamp, media.Frames[i].Timestamp)
	}
}

func TestSubsampleUniformKeepsEndpoints(t *testing.T) {
	sorted := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	out := subsampleUniform(sorted, 4)
	require.Len(t, out, 4)
	assert.Equal(t, 0.0, out[0])
	assert.Equal(t, 9.0, out[len(out)-1])
}
