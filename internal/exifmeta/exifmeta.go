// Package exifmeta reads the embedded metadata of an image file into a
// flat tag map plus the raw GPS block.
package exifmeta

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
	"github.com/rwcarlsen/goexif/tiff"

	"github.com/bstardust/photo-evidence/internal/gps"
	"github.com/bstardust/photo-evidence/internal/logger"
)

var (
	// ErrUnreadableImage means the file could not be opened or parsed at all.
	ErrUnreadableImage = errors.New("image cannot be read")
	// ErrNoExif means the file carries no usable metadata directory.
	ErrNoExif = errors.New("no exif metadata")
)

func init() {
	// Vendor maker-note parsers so manufacturer fields decode correctly.
	exif.RegisterParsers(mknote.All...)
}

// Metadata is the flat metadata view of one image. Tags maps tag names to
// their string form; GPS carries the raw sub-block separately because its
// values stay rationals until normalization.
type Metadata struct {
	Tags map[string]string
	GPS  gps.Fragment
}

// Reader extracts metadata from an image file.
type Reader interface {
	Read(path string) (*Metadata, error)
}

// FileReader reads metadata straight from files on disk, picking the
// parser by extension: the HEIC container needs its own EXIF extraction,
// everything else goes through the plain EXIF decoder.
type FileReader struct{}

// Read implements Reader.
func (FileReader) Read(path string) (*Metadata, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".heic", ".heif":
		return readHEIC(path)
	default:
		return readEXIF(path)
	}
}

func readEXIF(path string) (*Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableImage, err)
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoExif, err)
	}

	m := &Metadata{Tags: make(map[string]string)}
	if err := x.Walk(tagWalker{m.Tags}); err != nil {
		logger.Warn("tag walk aborted for %s: %v", path, err)
	}
	m.GPS = gpsFragment(x)
	return m, nil
}

type tagWalker struct {
	tags map[string]string
}

func (w tagWalker) Walk(name exif.FieldName, tag *tiff.Tag) error {
	if v := tagString(tag); v != "" {
		w.tags[string(name)] = v
	}
	return nil
}

// tagString favors the decoded ASCII value and falls back to the tag's
// formatted representation for numeric and undefined types.
func tagString(tag *tiff.Tag) string {
	if s, err := tag.StringVal(); err == nil {
		return sanitize(s)
	}
	return sanitize(tag.String())
}

// sanitize drops NUL padding and bytes that do not decode as UTF-8.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")
	s = strings.ToValidUTF8(s, "")
	return strings.TrimSpace(s)
}

// gpsFragment pulls the raw GPS sub-block out of the decoded directory. A
// malformed or absent block yields an empty fragment, never an error;
// extraction of the remaining tags must not be aborted by bad GPS data.
func gpsFragment(x *exif.Exif) gps.Fragment {
	return gps.Fragment{
		Latitude:     rationals(x, exif.GPSLatitude),
		Longitude:    rationals(x, exif.GPSLongitude),
		LatitudeRef:  refString(x, exif.GPSLatitudeRef),
		LongitudeRef: refString(x, exif.GPSLongitudeRef),
	}
}

func rationals(x *exif.Exif, name exif.FieldName) []gps.Rational {
	tag, err := x.Get(name)
	if err != nil {
		return nil
	}

	out := make([]gps.Rational, 0, tag.Count)
	for i := 0; i < int(tag.Count); i++ {
		num, den, err := tag.Rat2(i)
		if err != nil {
			logger.Warn("malformed GPS rational in %s: %v", name, err)
			return nil
		}
		out = append(out, gps.Rational{Num: num, Den: den})
	}
	return out
}

func refString(x *exif.Exif, name exif.FieldName) string {
	tag, err := x.Get(name)
	if err != nil {
		return ""
	}
	s, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return sanitize(s)
}
