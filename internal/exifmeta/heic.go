package exifmeta

import (
	"fmt"
	"strings"

	exifv3 "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
	heicexif "github.com/dsoprea/go-heic-exif-extractor"

	"github.com/bstardust/photo-evidence/internal/gps"
)

const gpsIfdPath = "IFD/GPSInfo"

// readHEIC extracts the EXIF blob from the HEIC/HEIF container and
// flattens it. The plain EXIF decoder cannot walk the ISOBMFF boxes, so
// this path goes through the dedicated extractor.
func readHEIC(path string) (*Metadata, error) {
	mc, err := heicexif.NewHeicExifMediaParser().ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableImage, err)
	}

	_, rawExif, err := mc.Exif()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoExif, err)
	}

	entries, _, err := exifv3.GetFlatExifData(rawExif, &exifv3.ScanOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoExif, err)
	}

	m := &Metadata{Tags: make(map[string]string, len(entries))}
	for _, entry := range entries {
		if entry.IfdPath == gpsIfdPath {
			collectGPSEntry(&m.GPS, entry)
			continue
		}
		if entry.TagName == "" {
			continue
		}

		// The formatted value can carry NUL-joined repetitions; the first
		// segment is the value proper.
		value := entry.FormattedFirst
		if i := strings.IndexByte(value, 0); i >= 0 {
			value = value[:i]
		}
		value = sanitize(value)
		if value == "" {
			continue
		}

		// Prefer the primary directory over the thumbnail one.
		if _, seen := m.Tags[entry.TagName]; !seen || entry.IfdPath != exifv3.ThumbnailFqIfdPath {
			m.Tags[entry.TagName] = value
		}
	}

	if len(m.Tags) == 0 && !m.GPS.HasCoordinates() {
		return nil, fmt.Errorf("%w: empty tag set", ErrNoExif)
	}
	return m, nil
}

func collectGPSEntry(frag *gps.Fragment, entry exifv3.ExifTag) {
	switch entry.TagName {
	case "GPSLatitude":
		frag.Latitude = toRationals(entry.Value)
	case "GPSLongitude":
		frag.Longitude = toRationals(entry.Value)
	case "GPSLatitudeRef":
		if s, ok := entry.Value.(string); ok {
			frag.LatitudeRef = sanitize(s)
		}
	case "GPSLongitudeRef":
		if s, ok := entry.Value.(string); ok {
			frag.LongitudeRef = sanitize(s)
		}
	}
}

func toRationals(v interface{}) []gps.Rational {
	rats, ok := v.([]exifcommon.Rational)
	if !ok {
		return nil
	}
	out := make([]gps.Rational, len(rats))
	for i, r := range rats {
		out[i] = gps.Rational{Num: int64(r.Numerator), Den: int64(r.Denominator)}
	}
	return out
}
