package commands

import (
	"errors"

	"movers/internal/core/domain/model/kernel"
	"movers/internal/pkg/guard"
)

var ErrRecomputeMoverRatingCommandIsNotConstructed = errors.New(
	"RecomputeMoverRatingCommand must be created via NewRecomputeMoverRatingCommand constructor",
)

// RecomputeMoverRatingCommand rebuilds a mover's average from stored ratings.
type RecomputeMoverRatingCommand struct {
	moverID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewRecomputeMoverRatingCommand(moverID kernel.UUID) (RecomputeMoverRatingCommand, error) {
	if err := moverID.Validate(); err != nil {
		return RecomputeMoverRatingCommand{}, err
	}
	return RecomputeMoverRatingCommand{moverID: moverID, guard: guard.NewConstructorGuard()}, nil
}

func (c RecomputeMoverRatingCommand) Validate() error {
	return c.guard.Validate(ErrRecomputeMoverRatingCommandIsNotConstructed)
}

func (c RecomputeMoverRatingCommand) MoverID() kernel.UUID {
	return c.moverID
}
