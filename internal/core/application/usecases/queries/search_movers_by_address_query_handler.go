package queries

import (
	"context"

	"movers/internal/core/ports"
)

// nearestMoversFinder is the part of FindNearestMoversQueryHandler the search needs.
type nearestMoversFinder interface {
	Handle(ctx context.Context, query FindNearestMoversQuery) ([]MoverMatchResponse, error)
}

type SearchMoversByAddressQueryHandler struct {
	geocoder ports.Geocoder
	finder   nearestMoversFinder
}

func NewSearchMoversByAddressQueryHandler(
	geocoder ports.Geocoder,
	finder nearestMoversFinder,
) SearchMoversByAddressQueryHandler {
	return SearchMoversByAddressQueryHandler{geocoder: geocoder, finder: finder}
}

// Handle geocodes the address and ranks movers around the resolved point.
func (h SearchMoversByAddressQueryHandler) Handle(
	ctx context.Context,
	query SearchMoversByAddressQuery,
) ([]MoverMatchResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	origin, err := geocode(ctx, h.geocoder, query.Address())
	if err != nil {
		return nil, err
	}

	nearest, err := NewFindNearestMoversQuery(origin, query.Limit(), query.RadiusKm())
	if err != nil {
		return nil, err
	}

	return h.finder.Handle(ctx, nearest)
}
