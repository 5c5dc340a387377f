// Package rating holds the Rating entity: a customer's score for a mover.
// Ratings are append-only and never modified after creation.
package rating

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"movers/internal/core/domain/model/kernel"
	"movers/internal/pkg/errs"
	"movers/internal/pkg/guard"
)

const (
	MinScore = 1
	MaxScore = 5

	MaxCommentLength = 2000
)

var ErrRatingIsNotConstructed = errors.New("Rating must be created via NewRating constructor")

type Rating struct {
	id        kernel.UUID
	userID    kernel.UUID
	moverID   kernel.UUID
	orderID   *kernel.UUID
	score     int
	comment   string
	createdAt time.Time
	guard     guard.ConstructorGuard
}

// NewRating validates score in [MinScore..MaxScore]. orderID may be nil for
// ratings not tied to a specific order.
func NewRating(
	id, userID, moverID kernel.UUID,
	orderID *kernel.UUID,
	score int,
	comment string,
	createdAt time.Time,
) (*Rating, error) {
	r := &Rating{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setUserID(userID),
		r.setMoverID(moverID),
		r.setOrderID(orderID),
		r.setScore(score),
		r.setComment(comment),
		r.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Rating) Validate() error {
	if r == nil {
		return ErrRatingIsNotConstructed
	}
	return r.guard.Validate(ErrRatingIsNotConstructed)
}

func (r *Rating) ID() kernel.UUID {
	return r.id
}

func (r *Rating) UserID() kernel.UUID {
	return r.userID
}

func (r *Rating) MoverID() kernel.UUID {
	return r.moverID
}

func (r *Rating) OrderID() *kernel.UUID {
	if r.orderID == nil {
		return nil
	}
	id := *r.orderID
	return &id
}

func (r *Rating) Score() int {
	return r.score
}

func (r *Rating) Comment() string {
	return r.comment
}

func (r *Rating) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Rating) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Rating) setUserID(id kernel.UUID) error {
	if id.IsZero() {
		return errs.NewValueIsRequiredError("userId")
	}
	r.userID = id
	return nil
}

func (r *Rating) setMoverID(id kernel.UUID) error {
	if id.IsZero() {
		return errs.NewValueIsRequiredError("moverId")
	}
	r.moverID = id
	return nil
}

func (r *Rating) setOrderID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if id.IsZero() {
		return errs.NewValueIsInvalidError("orderId")
	}
	orderID := *id
	r.orderID = &orderID
	return nil
}

func (r *Rating) setScore(score int) error {
	if score < MinScore || score > MaxScore {
		return errs.NewValueIsOutOfRangeError("score", score, MinScore, MaxScore)
	}
	r.score = score
	return nil
}

func (r *Rating) setComment(comment string) error {
	comment = strings.TrimSpace(comment)
	if len(comment) > MaxCommentLength {
		return errs.NewValueIsInvalidErrorWithCause("comment",
			fmt.Errorf("length %d exceeds %d", len(comment), MaxCommentLength))
	}
	r.comment = comment
	return nil
}

func (r *Rating) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	r.createdAt = createdAt.UTC()
	return nil
}
