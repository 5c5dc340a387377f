package queries

import (
	"context"
	"fmt"
	"math"

	"movers/internal/core/domain/model/kernel"
	"movers/internal/core/domain/model/mover"
	"movers/internal/core/domain/services"

	sq "github.com/Masterminds/squirrel"
)

// FindNearestMoversQueryHandler loads eligible movers and ranks them with the
// mover matcher. With a radius the store narrows candidates to a bounding box
// first; the exact great-circle cut is applied after ranking.
type FindNearestMoversQueryHandler struct {
	db      DB
	matcher services.MoverMatcher
}

func NewFindNearestMoversQueryHandler(db DB, matcher services.MoverMatcher) FindNearestMoversQueryHandler {
	return FindNearestMoversQueryHandler{db: db, matcher: matcher}
}

func (h FindNearestMoversQueryHandler) Handle(
	ctx context.Context,
	query FindNearestMoversQuery,
) ([]MoverMatchResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	candidates, err := h.loadCandidates(ctx, query)
	if err != nil {
		return nil, err
	}

	limit := query.Limit()
	if query.RadiusKm() > 0 {
		// the radius cut happens after ranking, so rank everything first
		limit = 0
	}

	matches, err := h.matcher.Match(query.Origin(), candidates, limit)
	if err != nil {
		return nil, err
	}

	result := make([]MoverMatchResponse, 0, len(matches))
	for _, match := range matches {
		if query.RadiusKm() > 0 && match.DistanceKm > query.RadiusKm() {
			break
		}
		if query.Limit() > 0 && len(result) == query.Limit() {
			break
		}
		result = append(result, MoverMatchResponse{
			MoverResponse: newMoverResponse(match.Mover),
			DistanceKm:    match.DistanceKm,
		})
	}

	return result, nil
}

func (h FindNearestMoversQueryHandler) loadCandidates(ctx context.Context, query FindNearestMoversQuery) ([]*mover.Mover, error) {
	b := psql.Select(moverColumns...).
		From("movers").
		Where(sq.Eq{"identity_verified": true, "background_check_passed": true})

	if box, ok := boundingBox(query.Origin(), query.RadiusKm()); ok {
		b = b.Where(sq.And{
			sq.GtOrEq{"location_latitude": box.minLat},
			sq.LtOrEq{"location_latitude": box.maxLat},
			sq.GtOrEq{"location_longitude": box.minLng},
			sq.LtOrEq{"location_longitude": box.maxLng},
		})
	}

	sqlQuery, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build movers query | %w", err)
	}

	rows, err := h.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query movers | %w", err)
	}
	defer rows.Close()

	candidates := make([]*mover.Mover, 0)
	for rows.Next() {
		m, scanErr := scanMover(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan mover | %w", scanErr)
		}
		candidates = append(candidates, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read movers | %w", err)
	}

	return candidates, nil
}

type box struct {
	minLat, maxLat, minLng, maxLng float64
}

// boundingBox returns a lat/lng box that contains the circle of radiusKm
// around origin. ok is false when the box would wrap a pole or the
// antimeridian; callers then skip the prefilter.
func boundingBox(origin kernel.Location, radiusKm float64) (box, bool) {
	if radiusKm <= 0 {
		return box{}, false
	}

	angular := radiusKm / kernel.EarthRadiusKm
	dLat := angular * 180 / math.Pi
	b := box{
		minLat: origin.Latitude() - dLat,
		maxLat: origin.Latitude() + dLat,
	}
	if b.minLat < kernel.LatitudeMin || b.maxLat > kernel.LatitudeMax {
		return box{}, false
	}

	ratio := math.Sin(angular) / math.Cos(origin.Latitude()*math.Pi/180)
	if ratio >= 1 {
		return box{}, false
	}
	dLng := math.Asin(ratio) * 180 / math.Pi
	b.minLng = origin.Longitude() - dLng
	b.maxLng = origin.Longitude() + dLng
	if b.minLng < kernel.LongitudeMin || b.maxLng > kernel.LongitudeMax {
		return box{}, false
	}

	return b, true
}
