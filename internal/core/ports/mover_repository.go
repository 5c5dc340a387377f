// Package ports defines the contracts between the movers core and its adapters:
// repositories, the unit of work and the external providers the core calls.
package ports

import (
	"context"

	"movers/internal/core/domain/model/kernel"
	"movers/internal/core/domain/model/mover"
)

// MoverRepository persists Mover aggregates.
type MoverRepository interface {
	// Add stores a newly registered mover.
	Add(ctx context.Context, aggregate *mover.Mover) error

	// Update stores the mover's current state. Returns a not-found error for an unknown mover.
	Update(ctx context.Context, aggregate *mover.Mover) error

	// Get loads a mover by id. Returns a not-found error for an unknown mover.
	Get(ctx context.Context, id kernel.UUID) (*mover.Mover, error)

	// GetForUpdate loads a mover and locks it until the surrounding transaction ends.
	// Concurrent read-modify-write of the same mover serializes on this lock.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*mover.Mover, error)
}
