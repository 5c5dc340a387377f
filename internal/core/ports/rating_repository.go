package ports

import (
	"context"

	"movers/internal/core/domain/model/kernel"
	"movers/internal/core/domain/model/rating"
	"movers/internal/core/domain/services"
)

// RatingRepository persists append-only Rating entities.
type RatingRepository interface {
	Add(ctx context.Context, r *rating.Rating) error

	// ScoreAggregate returns the sum and count of every score stored for the mover.
	ScoreAggregate(ctx context.Context, moverID kernel.UUID) (services.ScoreAggregate, error)
}
