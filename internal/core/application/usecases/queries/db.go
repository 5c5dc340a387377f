// Package queries contains read operations. Handlers read straight from
// PostgreSQL through pgx and return flat read models; they never open a unit
// of work and never change state.
package queries

import (
	"context"
	"errors"
	"fmt"

	"movers/internal/core/domain/model/kernel"
	"movers/internal/core/domain/model/mover"
	"movers/internal/pkg/errs"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

// DB is the read connection. *pgxpool.Pool satisfies it.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var moverColumns = []string{
	"id::text",
	"name",
	"phone",
	"vehicle",
	"location_latitude",
	"location_longitude",
	"identity_verified",
	"background_check_passed",
	"rating",
	"rating_count",
}

// MoverResponse is the public view of a mover.
type MoverResponse struct {
	ID                    kernel.UUID
	Name                  string
	Phone                 string
	Vehicle               string
	Location              kernel.Location
	IdentityVerified      bool
	BackgroundCheckPassed bool
	Eligible              bool
	Rating                float64
	RatingCount           int64
}

func newMoverResponse(m *mover.Mover) MoverResponse {
	return MoverResponse{
		ID:                    m.ID(),
		Name:                  m.Name(),
		Phone:                 m.Phone(),
		Vehicle:               m.Vehicle(),
		Location:              m.Location(),
		IdentityVerified:      m.IdentityVerified(),
		BackgroundCheckPassed: m.BackgroundCheckPassed(),
		Eligible:              m.IsEligible(),
		Rating:                m.Rating(),
		RatingCount:           m.RatingCount(),
	}
}

func scanMover(row pgx.Row) (*mover.Mover, error) {
	var (
		id, name, phone, vehicle string
		lat, lng                 float64
		identity, background     bool
		rating                   float64
		ratingCount              int64
	)
	if err := row.Scan(&id, &name, &phone, &vehicle, &lat, &lng,
		&identity, &background, &rating, &ratingCount); err != nil {
		return nil, err
	}

	moverID, err := kernel.UUIDFromString(id)
	if err != nil {
		return nil, err
	}
	loc, err := kernel.NewLocation(lat, lng)
	if err != nil {
		return nil, err
	}

	return mover.RestoreMover(moverID, name, phone, vehicle, loc, identity, background, rating, ratingCount)
}

func queryOne[T any](ctx context.Context, db DB, b sq.SelectBuilder, entity string, id kernel.UUID,
	scan func(pgx.Row) (T, error),
) (T, error) {
	var zero T

	query, args, err := b.ToSql()
	if err != nil {
		return zero, fmt.Errorf("failed to build %s query | %w", entity, err)
	}

	result, err := scan(db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return zero, errs.NewObjectNotFoundError(entity, id.String())
	}
	if err != nil {
		return zero, fmt.Errorf("failed to query %s | %w", entity, err)
	}

	return result, nil
}
