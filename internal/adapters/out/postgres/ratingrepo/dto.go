// Package ratingrepo stores append-only ratings and serves the per-mover
// score aggregate.
package ratingrepo

import (
	"time"

	"movers/internal/core/domain/model/rating"

	"github.com/google/uuid"
)

type RatingDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null"`
	MoverID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	OrderID   *uuid.UUID `gorm:"type:uuid"`
	Score     int        `gorm:"type:smallint;not null;check:chk_ratings_score,score BETWEEN 1 AND 5"`
	Comment   string     `gorm:"type:text"`
	CreatedAt time.Time  `gorm:"not null"`
}

func (RatingDTO) TableName() string {
	return "ratings"
}

func fromDomain(r *rating.Rating) RatingDTO {
	var orderID *uuid.UUID
	if id := r.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	return RatingDTO{
		ID:        r.ID().Bytes(),
		UserID:    r.UserID().Bytes(),
		MoverID:   r.MoverID().Bytes(),
		OrderID:   orderID,
		Score:     r.Score(),
		Comment:   r.Comment(),
		CreatedAt: r.CreatedAt(),
	}
}
