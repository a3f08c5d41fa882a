// Package record assembles per-photo report records from image files.
package record

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/disintegration/imaging"

	"github.com/bstardust/photo-evidence/internal/exifmeta"
	"github.com/bstardust/photo-evidence/internal/geocode"
	"github.com/bstardust/photo-evidence/internal/gps"
	"github.com/bstardust/photo-evidence/internal/logger"
)

// ErrNoCaptureDate means neither date tag is present or parseable. Files
// without a capture date cannot be placed in the chronology and are
// skipped.
var ErrNoCaptureDate = errors.New("no parseable capture date")

// Sentinels shown in the report when a field could not be determined.
const (
	ModelUnknown  = "Model unknown"
	NoCoordinates = "Coordinates unavailable"
)

// EXIF timestamps carry no zone; interpret them as local time.
const exifTimeLayout = "2006:01:02 15:04:05"

// Record is everything the report needs for one photo. Immutable once
// built, consumed exactly once by the renderer.
type Record struct {
	Path        string
	Image       image.Image // nil when the pixels could not be decoded
	TakenAt     time.Time
	CameraModel string
	Address     string
}

// Builder assembles records. The metadata reader and the address resolver
// are injected so tests run without real files or network access.
type Builder struct {
	reader   exifmeta.Reader
	resolver geocode.Resolver
}

// NewBuilder creates a Builder.
func NewBuilder(reader exifmeta.Reader, resolver geocode.Resolver) *Builder {
	return &Builder{reader: reader, resolver: resolver}
}

// Build extracts one record from the file at path. A skip returns one of
// exifmeta.ErrUnreadableImage, exifmeta.ErrNoExif or ErrNoCaptureDate;
// the caller decides whether skipping is fatal for the batch (it is not).
func (b *Builder) Build(ctx context.Context, path string) (*Record, error) {
	meta, err := b.reader.Read(path)
	if err != nil {
		return nil, err
	}

	takenAt, err := captureTime(meta.Tags)
	if err != nil {
		return nil, err
	}

	model := meta.Tags["Model"]
	if model == "" {
		model = ModelUnknown
	}

	address := NoCoordinates
	if coords, ok := gps.ToDecimalDegrees(meta.GPS); ok {
		address = b.resolver.ResolveAddress(ctx, coords)
	}

	return &Record{
		Path:        path,
		Image:       decodePixels(path),
		TakenAt:     takenAt,
		CameraModel: model,
		Address:     address,
	}, nil
}

// captureTime reads DateTimeOriginal, falling back to DateTime.
func captureTime(tags map[string]string) (time.Time, error) {
	raw := tags["DateTimeOriginal"]
	if raw == "" {
		raw = tags["DateTime"]
	}
	if raw == "" {
		return time.Time{}, ErrNoCaptureDate
	}

	t, err := time.ParseInLocation(exifTimeLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrNoCaptureDate, err)
	}
	return t, nil
}

// decodePixels loads the pixel data for the thumbnail, honoring the EXIF
// orientation. A record without pixels is still usable; the renderer
// emits a placeholder cell.
func decodePixels(path string) image.Image {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		logger.Warn("could not decode pixels of %s: %v", path, err)
		return nil
	}
	return img
}
