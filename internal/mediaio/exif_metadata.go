package mediaio

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/HaiderBassem/mediadedupe/pkg/api"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
)

func init() {
	exif.RegisterParsers(mknote.All...)
}

// EXIFMetadataProducer implements MetadataProducer using goexif,
// falling back to decoded image bounds when EXIF is absent or the file
// carries none (e.g. most video containers).
type EXIFMetadataProducer struct{}

// NewEXIFMetadataProducer constructs an EXIFMetadataProducer.
func NewEXIFMetadataProducer() *EXIFMetadataProducer { return &EXIFMetadataProducer{} }

// Extract implements MetadataProducer.
func (p *EXIFMetadataProducer) Extract(path string) (api.Metadata, error) {
	var meta api.Metadata

	width, height, err := probeDimensions(path)
	if err != nil {
		return meta, fmt.Errorf("mediaio: probe dimensions %s: %w", path, err)
	}
	meta.Width = width
	meta.Height = height

	file, err := os.Open(path)
	if err != nil {
		return meta, fmt.Errorf("mediaio: open %s: %w", path, err)
	}
	defer file.Close()

	x, err := exif.Decode(file)
	if err != nil {
		// No EXIF data is not an error for this producer: many video
		// files and some images simply carry none.
		return meta, nil
	}

	if model, err := x.Get(exif.Model); err == nil {
		if s, err := model.StringVal(); err == nil {
			meta.CameraModel = &s
		}
	}
	if makeTag, err := x.Get(exif.Make); err == nil {
		if s, err := makeTag.StringVal(); err == nil && meta.CameraModel != nil {
			combined := s + " " + *meta.CameraModel
			meta.CameraModel = &combined
		} else if err == nil {
			meta.CameraModel = &s
		}
	}
	if dt, err := x.Get(exif.DateTime); err == nil {
		if s, err := dt.StringVal(); err == nil {
			if takenAt, err := parseEXIFTime(s); err == nil {
				meta.ImageDate = &takenAt
			}
		}
	}
	if lat, lon, err := x.LatLong(); err == nil {
		meta.GPSLat = &lat
		meta.GPSLon = &lon
	}

	return meta, nil
}

func probeDimensions(path string) (int, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}
