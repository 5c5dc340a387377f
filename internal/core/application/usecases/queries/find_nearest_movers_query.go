package queries

import (
	"errors"
	"fmt"
	"math"

	"movers/internal/core/domain/model/kernel"
	"movers/internal/pkg/errs"
	"movers/internal/pkg/guard"
)

var ErrFindNearestMoversQueryIsNotConstructed = errors.New(
	"FindNearestMoversQuery must be created via NewFindNearestMoversQuery constructor",
)

// FindNearestMoversQuery asks for eligible movers closest to origin.
// limit <= 0 returns every eligible mover. radiusKm <= 0 disables the radius filter.
//
// Example:
//
//	origin, _ := kernel.NewLocation(40.0, -73.0)
//	query, _ := NewFindNearestMoversQuery(origin, 5, 0)
//	matches, err := handler.Handle(ctx, query)
type FindNearestMoversQuery struct {
	origin   kernel.Location
	limit    int
	radiusKm float64

	guard guard.ConstructorGuard
}

func NewFindNearestMoversQuery(origin kernel.Location, limit int, radiusKm float64) (FindNearestMoversQuery, error) {
	if err := origin.Validate(); err != nil {
		return FindNearestMoversQuery{}, err
	}
	if math.IsNaN(radiusKm) || math.IsInf(radiusKm, 0) {
		return FindNearestMoversQuery{}, errs.NewValueIsInvalidErrorWithCause("radiusKm",
			fmt.Errorf("%v is not a finite number", radiusKm))
	}

	return FindNearestMoversQuery{
		origin:   origin,
		limit:    limit,
		radiusKm: radiusKm,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q FindNearestMoversQuery) Validate() error {
	return q.guard.Validate(ErrFindNearestMoversQueryIsNotConstructed)
}

func (q FindNearestMoversQuery) Origin() kernel.Location {
	return q.origin
}

func (q FindNearestMoversQuery) Limit() int {
	return q.limit
}

func (q FindNearestMoversQuery) RadiusKm() float64 {
	return q.radiusKm
}

// MoverMatchResponse is an eligible mover with its distance from the origin.
type MoverMatchResponse struct {
	MoverResponse
	DistanceKm float64
}
