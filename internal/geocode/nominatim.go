package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bstardust/photo-evidence/internal/gps"
	"github.com/bstardust/photo-evidence/internal/logger"
)

const (
	defaultEndpoint = "https://nominatim.openstreetmap.org/reverse"

	// Nominatim's usage policy requires an identifying user agent.
	userAgent = "court_photo_evidence"
)

// Nominatim resolves addresses against the OpenStreetMap Nominatim
// reverse-geocoding API. One blocking round trip per call, no retries and
// no caching.
type Nominatim struct {
	endpoint string
	language string
	client   *http.Client
}

// NewNominatim creates a resolver. An empty endpoint selects the public
// OpenStreetMap instance; timeout bounds each lookup.
func NewNominatim(endpoint, language string, timeout time.Duration) *Nominatim {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &Nominatim{
		endpoint: endpoint,
		language: language,
		client:   &http.Client{Timeout: timeout},
	}
}

// ResolveAddress implements Resolver.
func (n *Nominatim) ResolveAddress(ctx context.Context, c gps.Coordinates) string {
	addr, err := n.reverse(ctx, c)
	if err != nil {
		logger.Warn("reverse geocoding failed for %s: %v", c, err)
		return FallbackAddress(c)
	}
	return addr
}

func (n *Nominatim) reverse(ctx context.Context, c gps.Coordinates) (string, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", strconv.FormatFloat(c.Latitude, 'f', 6, 64))
	q.Set("lon", strconv.FormatFloat(c.Longitude, 'f', 6, 64))
	if n.language != "" {
		q.Set("accept-language", n.language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := n.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	var payload struct {
		DisplayName string `json:"display_name"`
		Error       string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	if payload.Error != "" {
		return "", errors.New(payload.Error)
	}
	if payload.DisplayName == "" {
		return "", errors.New("empty display name in response")
	}
	return payload.DisplayName, nil
}
