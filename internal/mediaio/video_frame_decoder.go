package mediaio

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	"os/exec"
	"strconv"
	"strings"

	"github.com/nfnt/resize"
)

// FFmpegVideoDecoder decodes video frames by shelling out to ffprobe
// (duration) and ffmpeg (single-frame extraction to an in-memory JPEG).
// Real container demuxing is out of scope for this pipeline; this is
// the thin external-process boundary the pipeline depends on instead.
type FFmpegVideoDecoder struct {
	FFmpegPath  string
	FFprobePath string
}

// NewFFmpegVideoDecoder constructs a decoder using the given binaries,
// defaulting to "ffmpeg"/"ffprobe" on PATH.
func NewFFmpegVideoDecoder(ffmpegPath, ffprobePath string) *FFmpegVideoDecoder {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &FFmpegVideoDecoder{FFmpegPath: ffmpegPath, FFprobePath: ffprobePath}
}

// Duration implements VideoDecoder by asking ffprobe for the container
// duration in seconds.
func (d *FFmpegVideoDecoder) Duration(ctx context.Context, path string) (float64, error) {
	cmd := exec.CommandContext(ctx, d.FFprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("mediaio: ffprobe duration %s: %w", path, err)
	}
	dur, err := strconv.ParseFloat(strings.TrimSpace(out.String()), 64)
	if err != nil {
		return 0, fmt.Errorf("mediaio: parse ffprobe duration output %q: %w", out.String(), err)
	}
	return dur, nil
}

// FrameAt implements VideoDecoder by asking ffmpeg to seek to timestamp
// t and emit a single JPEG frame on stdout, then resizing/graying it
// with nfnt/resize rather than imaging, so both of the teacher's
// resampling libraries are exercised on distinct code paths.
func (d *FFmpegVideoDecoder) FrameAt(ctx context.Context, path string, t float64, r int) ([]float64, error) {
	cmd := exec.CommandContext(ctx, d.FFmpegPath,
		"-ss", strconv.FormatFloat(t, 'f', 3, 64),
		"-i", path,
		"-frames:v", "1",
		"-f", "image2pipe",
		"-vcodec", "mjpeg",
		"-",
	)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("mediaio: ffmpeg frame at %.3fs of %s: %w", t, path, err)
	}

	img, _, err := image.Decode(bytes.NewReader(out.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("mediaio: decode ffmpeg frame output: %w", err)
	}

	resized := resize.Resize(uint(r), uint(r), img, resize.Lanczos3)
	buf := make([]float64, r*r)
	for y := 0; y < r; y++ {
		for x := 0; x < r; x++ {
			rr, gg, bb, _ := resized.At(x, y).RGBA()
			lum := (float64(rr) + float64(gg) + float64(bb)) / 3.0 / 65535.0
			buf[y*r+x] = lum
		}
	}
	return buf, nil
}
