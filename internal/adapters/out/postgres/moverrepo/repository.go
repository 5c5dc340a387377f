package moverrepo

import (
	"context"
	"errors"

	"movers/internal/core/domain/model/kernel"
	"movers/internal/core/domain/model/mover"
	"movers/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormMoverRepository implements MoverRepository using GORM.
type GormMoverRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormMoverRepository(db *gorm.DB, tracker aggregateTracker) *GormMoverRepository {
	return &GormMoverRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormMoverRepository) Add(ctx context.Context, aggregate *mover.Mover) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes every mutable column. Boolean and zero values are written too,
// so the update uses a column map instead of a struct.
func (r *GormMoverRepository) Update(ctx context.Context, aggregate *mover.Mover) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&MoverDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"name":                    dto.Name,
			"phone":                   dto.Phone,
			"vehicle":                 dto.Vehicle,
			"location_latitude":       dto.Location.Latitude,
			"location_longitude":      dto.Location.Longitude,
			"identity_verified":       dto.IdentityVerified,
			"background_check_passed": dto.BackgroundCheckPassed,
			"rating":                  dto.Rating,
			"rating_count":            dto.RatingCount,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("mover", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormMoverRepository) Get(ctx context.Context, id kernel.UUID) (*mover.Mover, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate takes a row lock held until the surrounding transaction ends.
func (r *GormMoverRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*mover.Mover, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormMoverRepository) get(db *gorm.DB, id kernel.UUID) (*mover.Mover, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto MoverDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("mover", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
