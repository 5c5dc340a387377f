package commands

import (
	"errors"

	"movers/internal/core/domain/model/kernel"
	"movers/internal/pkg/guard"
)

var ErrSubmitRatingCommandIsNotConstructed = errors.New(
	"SubmitRatingCommand must be created via NewSubmitRatingCommand constructor",
)

// SubmitRatingCommand records a customer's score for a mover. The order
// reference is optional.
type SubmitRatingCommand struct { //nolint:recvcheck //using for validation
	ratingID kernel.UUID
	userID   kernel.UUID
	moverID  kernel.UUID
	orderID  *kernel.UUID
	score    int
	comment  string

	guard guard.ConstructorGuard
}

func NewSubmitRatingCommand(
	ratingID, userID, moverID kernel.UUID,
	orderID *kernel.UUID,
	score int,
	comment string,
) (SubmitRatingCommand, error) {
	if err := errors.Join(
		ratingID.Validate(),
		userID.Validate(),
		moverID.Validate(),
	); err != nil {
		return SubmitRatingCommand{}, err
	}

	cmd := SubmitRatingCommand{
		ratingID: ratingID,
		userID:   userID,
		moverID:  moverID,
		score:    score,
		comment:  comment,
		guard:    guard.NewConstructorGuard(),
	}
	if orderID != nil {
		id := *orderID
		cmd.orderID = &id
	}

	return cmd, nil
}

func (c SubmitRatingCommand) Validate() error {
	return c.guard.Validate(ErrSubmitRatingCommandIsNotConstructed)
}

func (c SubmitRatingCommand) RatingID() kernel.UUID {
	return c.ratingID
}

func (c SubmitRatingCommand) UserID() kernel.UUID {
	return c.userID
}

func (c SubmitRatingCommand) MoverID() kernel.UUID {
	return c.moverID
}

// OrderID returns nil when the rating is not tied to an order.
func (c SubmitRatingCommand) OrderID() *kernel.UUID {
	if c.orderID == nil {
		return nil
	}
	id := *c.orderID
	return &id
}

func (c SubmitRatingCommand) Score() int {
	return c.score
}

func (c SubmitRatingCommand) Comment() string {
	return c.comment
}
