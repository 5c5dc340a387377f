package ports

import (
	"context"

	"movers/internal/core/domain/model/customer"
	"movers/internal/core/domain/model/kernel"
)

// CustomerRepository persists Customer entities.
type CustomerRepository interface {
	// Add stores a newly registered customer. A duplicate email is a validation error.
	Add(ctx context.Context, c *customer.Customer) error

	// Get loads a customer by id. Returns a not-found error for an unknown customer.
	Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error)
}
