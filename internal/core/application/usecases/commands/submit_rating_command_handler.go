package commands

import (
	"context"
	"time"

	"movers/internal/core/domain/model/rating"
	"movers/internal/core/domain/services"
)

// SubmitRatingCommandHandler appends a rating and refreshes the mover's average.
//
// The rating customer must exist. A referenced order must exist and satisfy
// Order.EnsureRatableBy. The mover row is then locked, so concurrent
// submissions for the same mover run one after another and each recomputes
// from the full stored aggregate.
type SubmitRatingCommandHandler struct {
	uowFactory RatingUoWFactory
	aggregator services.RatingAggregator
	now        func() time.Time
}

func NewSubmitRatingCommandHandler(
	uowFactory RatingUoWFactory,
	aggregator services.RatingAggregator,
) SubmitRatingCommandHandler {
	return SubmitRatingCommandHandler{
		uowFactory: uowFactory,
		aggregator: aggregator,
		now:        time.Now,
	}
}

func (h *SubmitRatingCommandHandler) Handle(ctx context.Context, cmd SubmitRatingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	r, err := rating.NewRating(
		cmd.RatingID(),
		cmd.UserID(),
		cmd.MoverID(),
		cmd.OrderID(),
		cmd.Score(),
		cmd.Comment(),
		h.now(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err = uow.CustomerRepository().Get(ctx, cmd.UserID()); err != nil {
		return err
	}

	if orderID := cmd.OrderID(); orderID != nil {
		o, getErr := uow.OrderRepository().Get(ctx, *orderID)
		if getErr != nil {
			return getErr
		}
		if err = o.EnsureRatableBy(cmd.UserID(), cmd.MoverID()); err != nil {
			return err
		}
	}

	moverRepo := uow.MoverRepository()
	m, err := moverRepo.GetForUpdate(ctx, cmd.MoverID())
	if err != nil {
		return err
	}

	ratingRepo := uow.RatingRepository()
	if err = ratingRepo.Add(ctx, r); err != nil {
		return err
	}

	agg, err := ratingRepo.ScoreAggregate(ctx, cmd.MoverID())
	if err != nil {
		return err
	}

	if err = h.aggregator.Apply(m, agg); err != nil {
		return err
	}

	if err = moverRepo.Update(ctx, m); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
