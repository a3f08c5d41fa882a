// Package geocode resolves decimal coordinates into display addresses.
package geocode

import (
	"context"
	"fmt"

	"github.com/bstardust/photo-evidence/internal/gps"
)

// Resolver turns coordinates into the location string shown in the
// report. Implementations never fail: any lookup problem degrades to the
// formatted coordinate pair.
type Resolver interface {
	ResolveAddress(ctx context.Context, c gps.Coordinates) string
}

// FallbackAddress is what the report shows when no address could be
// resolved: the coordinate pair to 6 decimal places.
func FallbackAddress(c gps.Coordinates) string {
	return fmt.Sprintf("%.6f, %.6f", c.Latitude, c.Longitude)
}
