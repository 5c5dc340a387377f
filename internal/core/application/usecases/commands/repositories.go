// Package commands contains business operations that modify system state.
// Every command is built through its constructor, which validates input; the
// handler then runs the use case inside a unit of work.
package commands

import (
	"context"

	"movers/internal/core/ports"
)

// Unit of Work interfaces narrowed to the repositories each handler needs.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	MoverRepoFactory interface {
		MoverRepository() ports.MoverRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	RatingRepoFactory interface {
		RatingRepository() ports.RatingRepository
	}

	// CustomerUoW is used by customer registration.
	CustomerUoW interface {
		TxManager
		CustomerRepoFactory
	}

	CustomerUoWFactory interface {
		Create() CustomerUoW
	}

	// MoverUoW is used by vetting and location commands.
	MoverUoW interface {
		TxManager
		MoverRepoFactory
	}

	MoverUoWFactory interface {
		Create() MoverUoW
	}

	// OrderUoW is used by lifecycle transitions.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// BookingUoW reads the customer and the mover and writes the order in one
	// transaction.
	BookingUoW interface {
		TxManager
		CustomerRepoFactory
		MoverRepoFactory
		OrderRepoFactory
	}

	BookingUoWFactory interface {
		Create() BookingUoW
	}

	// RatingUoW appends a rating and updates the mover aggregate atomically. The
	// customer and the rated order are read in the same transaction.
	RatingUoW interface {
		TxManager
		CustomerRepoFactory
		MoverRepoFactory
		OrderRepoFactory
		RatingRepoFactory
	}

	RatingUoWFactory interface {
		Create() RatingUoW
	}
)
