package queries

import (
	"context"
	"errors"

	"movers/internal/core/domain/model/kernel"
	"movers/internal/pkg/guard"

	sq "github.com/Masterminds/squirrel"
)

var ErrGetMoverQueryIsNotConstructed = errors.New(
	"GetMoverQuery must be created via NewGetMoverQuery constructor",
)

type GetMoverQuery struct {
	moverID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetMoverQuery(moverID kernel.UUID) (GetMoverQuery, error) {
	if err := moverID.Validate(); err != nil {
		return GetMoverQuery{}, err
	}
	return GetMoverQuery{moverID: moverID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetMoverQuery) Validate() error {
	return q.guard.Validate(ErrGetMoverQueryIsNotConstructed)
}

func (q GetMoverQuery) MoverID() kernel.UUID {
	return q.moverID
}

type GetMoverQueryHandler struct {
	db DB
}

func NewGetMoverQueryHandler(db DB) GetMoverQueryHandler {
	return GetMoverQueryHandler{db: db}
}

// Handle returns a not-found error for an unknown mover.
func (h GetMoverQueryHandler) Handle(ctx context.Context, query GetMoverQuery) (MoverResponse, error) {
	if err := query.Validate(); err != nil {
		return MoverResponse{}, err
	}

	b := psql.Select(moverColumns...).
		From("movers").
		Where(sq.Eq{"id": query.MoverID().String()})

	m, err := queryOne(ctx, h.db, b, "mover", query.MoverID(), scanMover)
	if err != nil {
		return MoverResponse{}, err
	}

	return newMoverResponse(m), nil
}
