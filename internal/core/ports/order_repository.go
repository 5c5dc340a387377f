package ports

import (
	"context"
	"time"

	"movers/internal/core/domain/model/kernel"
	"movers/internal/core/domain/model/order"
)

// OrderRepository persists Order aggregates.
type OrderRepository interface {
	// Add stores a new order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the order only if the stored status still equals
	// aggregate.PersistedStatus(). When another writer got there first the
	// update fails with an invalid transition error and nothing is written.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads an order by id. Returns a not-found error for an unknown order.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListOverduePending returns up to limit pending orders whose start time is not after now,
	// oldest first.
	ListOverduePending(ctx context.Context, now time.Time, limit int) ([]*order.Order, error)
}
