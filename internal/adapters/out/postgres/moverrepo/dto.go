// Package moverrepo maps Mover aggregates to the movers table.
package moverrepo

import (
	"time"

	"movers/internal/core/domain/model/kernel"
	"movers/internal/core/domain/model/mover"

	"github.com/google/uuid"
)

type MoverDTO struct {
	ID                    uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Name                  string      `gorm:"type:varchar(255);not null"`
	Phone                 string      `gorm:"type:varchar(32);not null"`
	Vehicle               string      `gorm:"type:varchar(255)"`
	Location              LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	IdentityVerified      bool        `gorm:"not null;default:false"`
	BackgroundCheckPassed bool        `gorm:"not null;default:false"`
	Rating                float64     `gorm:"type:double precision;not null;default:0"`
	RatingCount           int64       `gorm:"not null;default:0"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (MoverDTO) TableName() string {
	return "movers"
}

// LocationDTO is the mover's current position in decimal degrees.
type LocationDTO struct {
	Latitude  float64 `gorm:"type:double precision;not null"`
	Longitude float64 `gorm:"type:double precision;not null"`
}

func fromDomain(m *mover.Mover) MoverDTO {
	return MoverDTO{
		ID:      m.ID().Bytes(),
		Name:    m.Name(),
		Phone:   m.Phone(),
		Vehicle: m.Vehicle(),
		Location: LocationDTO{
			Latitude:  m.Location().Latitude(),
			Longitude: m.Location().Longitude(),
		},
		IdentityVerified:      m.IdentityVerified(),
		BackgroundCheckPassed: m.BackgroundCheckPassed(),
		Rating:                m.Rating(),
		RatingCount:           m.RatingCount(),
	}
}

func toDomain(dto MoverDTO) (*mover.Mover, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	loc, err := kernel.NewLocation(dto.Location.Latitude, dto.Location.Longitude)
	if err != nil {
		return nil, err
	}

	return mover.RestoreMover(
		id,
		dto.Name,
		dto.Phone,
		dto.Vehicle,
		loc,
		dto.IdentityVerified,
		dto.BackgroundCheckPassed,
		dto.Rating,
		dto.RatingCount,
	)
}
