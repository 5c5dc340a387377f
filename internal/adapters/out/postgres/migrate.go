package postgres

import (
	"movers/internal/adapters/out/postgres/customerrepo"
	"movers/internal/adapters/out/postgres/moverrepo"
	"movers/internal/adapters/out/postgres/orderrepo"
	"movers/internal/adapters/out/postgres/ratingrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the application tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&customerrepo.CustomerDTO{},
		&moverrepo.MoverDTO{},
		&orderrepo.OrderDTO{},
		&ratingrepo.RatingDTO{},
	)
}
