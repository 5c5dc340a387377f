// Package geocoding resolves addresses and IP addresses into points through an
// HTTP geolocation API, optionally behind a Redis cache.
package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"movers/internal/core/domain/model/kernel"
	"movers/internal/core/ports"
	"movers/internal/pkg/errs"
)

const (
	maxResponseSize = 1 << 20

	upstreamName = "geocoder"
)

var _ ports.Geocoder = (*HTTPGeocoder)(nil)

// HTTPGeocoderConfig points at the two lookup endpoints. Both answer with a
// JSON object carrying "latitude" and "longitude".
type HTTPGeocoderConfig struct {
	AddressURL string
	IPURL      string
	APIKey     string
	Timeout    time.Duration
}

type HTTPGeocoder struct {
	cfg    HTTPGeocoderConfig
	client *http.Client
}

func NewHTTPGeocoder(cfg HTTPGeocoderConfig, client *http.Client) *HTTPGeocoder {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &HTTPGeocoder{cfg: cfg, client: client}
}

type geolocationResponse struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Geocode treats a parseable IP address as an IP lookup and anything else as
// a postal address.
func (g *HTTPGeocoder) Geocode(ctx context.Context, addressOrIP string) (kernel.Location, error) {
	endpoint, param := g.cfg.AddressURL, "address"
	if net.ParseIP(addressOrIP) != nil {
		endpoint, param = g.cfg.IPURL, "ip_address"
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return kernel.Location{}, fmt.Errorf("failed to parse geocoder url | %w", err)
	}
	q := u.Query()
	q.Set("api_key", g.cfg.APIKey)
	q.Set(param, addressOrIP)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return kernel.Location{}, fmt.Errorf("failed to build geocoder request | %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		if errs.IsTimeout(err) {
			return kernel.Location{}, errs.NewUpstreamTimeoutError(upstreamName, err)
		}
		return kernel.Location{}, fmt.Errorf("failed to call geocoder | %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return kernel.Location{}, errs.NewObjectNotFoundError("location", addressOrIP)
	case resp.StatusCode != http.StatusOK:
		return kernel.Location{}, fmt.Errorf("geocoder responded with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		if errs.IsTimeout(err) {
			return kernel.Location{}, errs.NewUpstreamTimeoutError(upstreamName, err)
		}
		return kernel.Location{}, fmt.Errorf("failed to read geocoder response | %w", err)
	}

	var out geolocationResponse
	if err = json.Unmarshal(body, &out); err != nil {
		return kernel.Location{}, fmt.Errorf("failed to decode geocoder response | %w", err)
	}
	if out.Latitude == nil || out.Longitude == nil {
		return kernel.Location{}, errs.NewObjectNotFoundError("location", addressOrIP)
	}

	return kernel.NewLocation(*out.Latitude, *out.Longitude)
}
