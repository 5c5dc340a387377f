package commands

import (
	"errors"

	"movers/internal/core/domain/model/kernel"
	"movers/internal/pkg/guard"
)

var ErrUpdateMoverLocationCommandIsNotConstructed = errors.New(
	"UpdateMoverLocationCommand must be created via NewUpdateMoverLocationCommand constructor",
)

// UpdateMoverLocationCommand moves a mover to a new current position.
type UpdateMoverLocationCommand struct {
	moverID  kernel.UUID
	location kernel.Location

	guard guard.ConstructorGuard
}

func NewUpdateMoverLocationCommand(moverID kernel.UUID, location kernel.Location) (UpdateMoverLocationCommand, error) {
	if err := errors.Join(moverID.Validate(), location.Validate()); err != nil {
		return UpdateMoverLocationCommand{}, err
	}

	return UpdateMoverLocationCommand{
		moverID:  moverID,
		location: location,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateMoverLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateMoverLocationCommandIsNotConstructed)
}

func (c UpdateMoverLocationCommand) MoverID() kernel.UUID {
	return c.moverID
}

func (c UpdateMoverLocationCommand) Location() kernel.Location {
	return c.location
}
