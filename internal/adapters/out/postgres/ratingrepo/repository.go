package ratingrepo

import (
	"context"

	"movers/internal/core/domain/model/kernel"
	"movers/internal/core/domain/model/rating"
	"movers/internal/core/domain/services"

	"gorm.io/gorm"
)

// GormRatingRepository implements RatingRepository using GORM.
type GormRatingRepository struct {
	db *gorm.DB
}

func NewGormRatingRepository(db *gorm.DB) *GormRatingRepository {
	return &GormRatingRepository{db: db}
}

func (r *GormRatingRepository) Add(ctx context.Context, aggregate *rating.Rating) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ScoreAggregate sums in the database; individual ratings are never loaded.
func (r *GormRatingRepository) ScoreAggregate(ctx context.Context, moverID kernel.UUID) (services.ScoreAggregate, error) {
	if err := moverID.Validate(); err != nil {
		return services.ScoreAggregate{}, err
	}

	var row struct {
		Sum   int64
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&RatingDTO{}).
		Select("COALESCE(SUM(score), 0) AS sum, COUNT(*) AS count").
		Where("mover_id = ?", moverID.Bytes()).
		Scan(&row).Error
	if err != nil {
		return services.ScoreAggregate{}, err
	}

	return services.ScoreAggregate{Sum: row.Sum, Count: row.Count}, nil
}
