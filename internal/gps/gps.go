// Package gps converts raw EXIF GPS values into signed decimal coordinates.
package gps

import (
	"fmt"
	"math"

	"github.com/bstardust/photo-evidence/internal/logger"
)

// Rational is a single EXIF rational value.
type Rational struct {
	Num int64
	Den int64
}

// Fragment holds the raw GPS block of one image: degree/minute/second
// triples plus the hemisphere reference characters. A missing coordinate
// triple means the photo simply has no GPS data.
type Fragment struct {
	Latitude     []Rational
	Longitude    []Rational
	LatitudeRef  string
	LongitudeRef string
}

// HasCoordinates reports whether both coordinate triples are present.
func (f Fragment) HasCoordinates() bool {
	return len(f.Latitude) > 0 && len(f.Longitude) > 0
}

// Coordinates is a signed decimal-degree pair, rounded to 6 decimal places.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%.6f, %.6f", c.Latitude, c.Longitude)
}

// ToDecimalDegrees converts a raw GPS fragment to decimal degrees. The
// second return value is false when either coordinate is absent or
// unusable; that is the common case for indoor photos and never an error.
//
// The sign rule negates an axis unless its reference is exactly "N" or
// "E". Any other value, absence included, selects the negative
// hemisphere. The normalizer tests document this.
func ToDecimalDegrees(f Fragment) (Coordinates, bool) {
	if !f.HasCoordinates() {
		return Coordinates{}, false
	}

	lat, err := toDegrees(f.Latitude)
	if err != nil {
		logger.Warn("unusable GPS latitude: %v", err)
		return Coordinates{}, false
	}
	lon, err := toDegrees(f.Longitude)
	if err != nil {
		logger.Warn("unusable GPS longitude: %v", err)
		return Coordinates{}, false
	}

	if f.LatitudeRef != "N" {
		lat = -lat
	}
	if f.LongitudeRef != "E" {
		lon = -lon
	}

	c := Coordinates{Latitude: round6(lat), Longitude: round6(lon)}
	if c.Latitude < -90 || c.Latitude > 90 || c.Longitude < -180 || c.Longitude > 180 {
		logger.Warn("GPS coordinates out of range: %s", c)
		return Coordinates{}, false
	}
	return c, true
}

// toDegrees folds a degrees/minutes/seconds triple into decimal degrees.
func toDegrees(v []Rational) (float64, error) {
	if len(v) != 3 {
		return 0, fmt.Errorf("want 3 DMS components, got %d", len(v))
	}

	divisors := [3]float64{1, 60, 3600}
	var deg float64
	for i, r := range v {
		if r.Den == 0 {
			return 0, fmt.Errorf("zero denominator in component %d", i)
		}
		deg += float64(r.Num) / float64(r.Den) / divisors[i]
	}
	return deg, nil
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
