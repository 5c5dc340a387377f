package commands

import (
	"context"

	"movers/internal/core/domain/services"
)

type RecomputeMoverRatingCommandHandler struct {
	uowFactory RatingUoWFactory
	aggregator services.RatingAggregator
}

func NewRecomputeMoverRatingCommandHandler(
	uowFactory RatingUoWFactory,
	aggregator services.RatingAggregator,
) RecomputeMoverRatingCommandHandler {
	return RecomputeMoverRatingCommandHandler{
		uowFactory: uowFactory,
		aggregator: aggregator,
	}
}

func (h *RecomputeMoverRatingCommandHandler) Handle(ctx context.Context, cmd RecomputeMoverRatingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	moverRepo := uow.MoverRepository()
	m, err := moverRepo.GetForUpdate(ctx, cmd.MoverID())
	if err != nil {
		return err
	}

	agg, err := uow.RatingRepository().ScoreAggregate(ctx, cmd.MoverID())
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
