package commands

import (
	"errors"

	"movers/internal/core/domain/model/kernel"
	"movers/internal/pkg/guard"
)

var ErrRecordBackgroundCheckCommandIsNotConstructed = errors.New(
	"RecordBackgroundCheckCommand must be created via NewRecordBackgroundCheckCommand constructor",
)

// RecordBackgroundCheckCommand stores the asynchronously delivered outcome of a
// mover's background check.
type RecordBackgroundCheckCommand struct {
	moverID kernel.UUID
	passed  bool

	guard guard.ConstructorGuard
}

func NewRecordBackgroundCheckCommand(moverID kernel.UUID, passed bool) (RecordBackgroundCheckCommand, error) {
	if err := moverID.Validate(); err != nil {
		return RecordBackgroundCheckCommand{}, err
	}

	return RecordBackgroundCheckCommand{
		moverID: moverID,
		passed:  passed,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c RecordBackgroundCheckCommand) Validate() error {
	return c.guard.Validate(ErrRecordBackgroundCheckCommandIsNotConstructed)
}

func (c RecordBackgroundCheckCommand) MoverID() kernel.UUID {
	return c.moverID
}

func (c RecordBackgroundCheckCommand) Passed() bool {
	return c.passed
}
