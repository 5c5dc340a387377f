package ports

import (
	"context"

	"movers/internal/core/domain/model/kernel"
)

// Geocoder resolves a postal address or an IP address into a point.
// An unresolvable query yields a not-found error.
type Geocoder interface {
	Geocode(ctx context.Context, addressOrIP string) (kernel.Location, error)
}
