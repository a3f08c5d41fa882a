package gps

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func dms(deg, min, sec int64) []Rational {
	return []Rational{{deg, 1}, {min, 1}, {sec, 1}}
}

func TestToDecimalDegreesKnownValue(t *testing.T) {
	frag := Fragment{
		Latitude:     dms(41, 30, 0),
		Longitude:    dms(12, 15, 0),
		LatitudeRef:  "N",
		LongitudeRef: "E",
	}

	c, ok := ToDecimalDegrees(frag)
	assert.True(t, ok)
	assert.Equal(t, 41.5, c.Latitude)
	assert.Equal(t, 12.25, c.Longitude)
}

// Anything other than an explicit "N"/"E" reference — "S", "W", garbage or
// an absent tag — selects the negative hemisphere. This matches the
// behavior the tool has always had; change it only deliberately.
func TestHemisphereSignRule(t *testing.T) {
	tests := []struct {
		name    string
		latRef  string
		lonRef  string
		wantLat float64
		wantLon float64
	}{
		{"north east", "N", "E", 10.5, 20.5},
		{"south west", "S", "W", -10.5, -20.5},
		{"absent refs", "", "", -10.5, -20.5},
		{"garbage refs", "X", "?", -10.5, -20.5},
		{"lowercase refs", "n", "e", -10.5, -20.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frag := Fragment{
				Latitude:     dms(10, 30, 0),
				Longitude:    dms(20, 30, 0),
				LatitudeRef:  tt.latRef,
				LongitudeRef: tt.lonRef,
			}

			c, ok := ToDecimalDegrees(frag)
			assert.True(t, ok)
			assert.Equal(t, tt.wantLat, c.Latitude)
			assert.Equal(t, tt.wantLon, c.Longitude)
		})
	}
}

func TestMissingCoordinatesReturnNoValue(t *testing.T) {
	tests := []struct {
		name string
		frag Fragment
	}{
		{"empty fragment", Fragment{}},
		{"latitude only", Fragment{Latitude: dms(10, 0, 0), LatitudeRef: "N"}},
		{"longitude only", Fragment{Longitude: dms(10, 0, 0), LongitudeRef: "E"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ToDecimalDegrees(tt.frag)
			assert.False(t, ok)
		})
	}
}

func TestMalformedRationalsReturnNoValue(t *testing.T) {
	tests := []struct {
		name string
		frag Fragment
	}{
		{
			"zero denominator",
			Fragment{
				Latitude:     []Rational{{41, 1}, {30, 0}, {0, 1}},
				Longitude:    dms(12, 15, 0),
				LatitudeRef:  "N",
				LongitudeRef: "E",
			},
		},
		{
			"wrong component count",
			Fragment{
				Latitude:     []Rational{{41, 1}, {30, 1}},
				Longitude:    dms(12, 15, 0),
				LatitudeRef:  "N",
				LongitudeRef: "E",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ToDecimalDegrees(tt.frag)
			assert.False(t, ok)
		})
	}
}

func TestResultRoundedToSixDecimals(t *testing.T) {
	// 1 second = 1/3600 degree = 0.0002777..., rounds to 0.000278.
	frag := Fragment{
		Latitude:     dms(0, 0, 1),
		Longitude:    dms(0, 0, 1),
		LatitudeRef:  "N",
		LongitudeRef: "E",
	}

	c, ok := ToDecimalDegrees(frag)
	assert.True(t, ok)
	assert.Equal(t, 0.000278, c.Latitude)
	assert.Equal(t, 0.000278, c.Longitude)
}

func TestOutOfRangeCoordinatesRejected(t *testing.T) {
	frag := Fragment{
		Latitude:     dms(95, 0, 0),
		Longitude:    dms(12, 0, 0),
		LatitudeRef:  "N",
		LongitudeRef: "E",
	}
	_, ok := ToDecimalDegrees(frag)
	assert.False(t, ok)

	frag = Fragment{
		Latitude:     dms(41, 0, 0),
		Longitude:    dms(200, 0, 0),
		LatitudeRef:  "N",
		LongitudeRef: "E",
	}
	_, ok = ToDecimalDegrees(frag)
	assert.False(t, ok)
}

func TestCoordinatesString(t *testing.T) {
	c := Coordinates{Latitude: 41.5, Longitude: -12.25}
	assert.Equal(t, "41.500000, -12.250000", c.String())
}
