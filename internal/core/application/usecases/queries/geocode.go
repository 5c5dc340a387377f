package queries

import (
	"context"
	"errors"

	"movers/internal/core/domain/model/kernel"
	"movers/internal/core/ports"
	"movers/internal/pkg/errs"
)

const geocoderUpstream = "geocoder"

// geocode resolves addressOrIP. Any deadline hit inside the geocoder surfaces
// as an upstream timeout regardless of which adapter produced it.
func geocode(ctx context.Context, geocoder ports.Geocoder, addressOrIP string) (kernel.Location, error) {
	loc, err := geocoder.Geocode(ctx, addressOrIP)
	if err == nil {
		return loc, nil
	}
	if errs.IsTimeout(err) && !errors.Is(err, errs.ErrUpstreamTimeout) {
		return kernel.Location{}, errs.NewUpstreamTimeoutError(geocoderUpstream, err)
	}
	return kernel.Location{}, err
}
