package queries

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movers/internal/core/domain/model/kernel"
	"movers/internal/pkg/errs"
	"movers/internal/pkg/guard"

	sq "github.com/Masterminds/squirrel"
)

const (
	DefaultRatingsPageSize = 50
	MaxRatingsPageSize     = 200
)

var ErrListMoverRatingsQueryIsNotConstructed = errors.New(
	"ListMoverRatingsQuery must be created via NewListMoverRatingsQuery constructor",
)

// ListMoverRatingsQuery pages through a mover's ratings, newest first.
type ListMoverRatingsQuery struct {
	moverID kernel.UUID
	limit   uint64
	offset  uint64
	guard   guard.ConstructorGuard
}

// NewListMoverRatingsQuery uses DefaultRatingsPageSize for limit <= 0.
func NewListMoverRatingsQuery(moverID kernel.UUID, limit, offset int) (ListMoverRatingsQuery, error) {
	if err := moverID.Validate(); err != nil {
		return ListMoverRatingsQuery{}, err
	}
	if limit <= 0 {
		limit = DefaultRatingsPageSize
	}
	if limit > MaxRatingsPageSize {
		return ListMoverRatingsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxRatingsPageSize)
	}
	if offset < 0 {
		return ListMoverRatingsQuery{}, errs.NewValueIsInvalidErrorWithCause("offset",
			fmt.Errorf("%d is negative", offset))
	}

	return ListMoverRatingsQuery{
		moverID: moverID,
		limit:   uint64(limit),
		offset:  uint64(offset),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q ListMoverRatingsQuery) Validate() error {
	return q.guard.Validate(ErrListMoverRatingsQueryIsNotConstructed)
}

func (q ListMoverRatingsQuery) MoverID() kernel.UUID {
	return q.moverID
}

type RatingResponse struct {
	ID        kernel.UUID
	UserID    kernel.UUID
	MoverID   kernel.UUID
	OrderID   *kernel.UUID
	Score     int
	Comment   string
	CreatedAt time.Time
}

type ListMoverRatingsQueryHandler struct {
	db DB
}

func NewListMoverRatingsQueryHandler(db DB) ListMoverRatingsQueryHandler {
	return ListMoverRatingsQueryHandler{db: db}
}

// Handle returns an empty slice for a mover without ratings, known or not.
func (h ListMoverRatingsQueryHandler) Handle(ctx context.Context, query ListMoverRatingsQuery) ([]RatingResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlQuery, args, err := psql.Select(
		"id::text",
		"user_id::text",
		"order_id::text",
		"score",
		"COALESCE(comment, '')",
		"created_at",
	).
		From("ratings").
		Where(sq.Eq{"mover_id": query.MoverID().String()}).
		OrderBy("created_at DESC", "id").
		Limit(query.limit).
		Offset(query.offset).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build ratings query | %w", err)
	}

	rows, err := h.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ratings | %w", err)
	}
	defer rows.Close()

	ratings := make([]RatingResponse, 0)
	for rows.Next() {
		var (
			r          RatingResponse
			id, userID string
			orderID    *string
		)
		if err = rows.Scan(&id, &userID, &orderID, &r.Score, &r.Comment, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rating | %w", err)
		}

		if r.ID, err = kernel.UUIDFromString(id); err != nil {
			return nil, err
		}
		if r.UserID, err = kernel.UUIDFromString(userID); err != nil {
			return nil, err
		}
		if orderID != nil {
			parsed, parseErr := kernel.UUIDFromString(*orderID)
			if parseErr != nil {
				return nil, parseErr
			}
			r.OrderID = &parsed
		}
		r.MoverID = query.MoverID()

		ratings = append(ratings, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ratings | %w", err)
	}

	return ratings, nil
}
