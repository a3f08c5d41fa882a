package geocode

import (
	"context"
	"errors"
	"time"

	"googlemaps.github.io/maps"

	"github.com/bstardust/photo-evidence/internal/gps"
	"github.com/bstardust/photo-evidence/internal/logger"
)

// Google resolves addresses through the Google Maps Geocoding API. It is
// selected when an API key is configured.
type Google struct {
	client   *maps.Client
	language string
	timeout  time.Duration
}

// NewGoogle creates a resolver backed by the Google Maps client.
func NewGoogle(apiKey, language string, timeout time.Duration) (*Google, error) {
	c, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &Google{client: c, language: language, timeout: timeout}, nil
}

// ResolveAddress implements Resolver.
func (g *Google) ResolveAddress(ctx context.Context, c gps.Coordinates) string {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	addr, err := g.reverse(ctx, c)
	if err != nil {
		logger.Warn("reverse geocoding failed for %s: %v", c, err)
		return FallbackAddress(c)
	}
	return addr
}

func (g *Google) reverse(ctx context.Context, c gps.Coordinates) (string, error) {
	results, err := g.client.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng:   &maps.LatLng{Lat: c.Latitude, Lng: c.Longitude},
		Language: g.language,
	})
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", errors.New("no geocoding results")
	}
	return results[0].FormattedAddress, nil
}
