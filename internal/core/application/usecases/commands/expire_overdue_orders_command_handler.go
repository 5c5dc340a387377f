package commands

import (
	"context"
	"errors"

	"movers/internal/core/domain/model/kernel"
	"movers/internal/core/domain/model/order"
	"movers/internal/pkg/errs"
)

var errNoLongerOverdue = errors.New("order is no longer overdue")

// ExpireOverdueOrdersCommandHandler cancels each overdue order in its own
// transaction through the same compare-and-set as CancelOrder. Orders that were
// confirmed or cancelled after the listing are skipped.
type ExpireOverdueOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewExpireOverdueOrdersCommandHandler(uowFactory OrderUoWFactory) ExpireOverdueOrdersCommandHandler {
	return ExpireOverdueOrdersCommandHandler{uowFactory: uowFactory}
}

func (h *ExpireOverdueOrdersCommandHandler) Handle(ctx context.Context, cmd ExpireOverdueOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	ids, err := h.listOverdue(ctx, cmd)
	if err != nil {
		return err
	}

	var result error
	for _, id := range ids {
		err = transitionOrder(ctx, h.uowFactory, id, func(o *order.Order) error {
			if !o.IsOverdue(cmd.Now()) {
				return errs.NewInvalidTransitionErrorWithCause(o.Status().String(), order.Cancelled.String(),
					errNoLongerOverdue)
			}
			return o.Cancel()
		})
		if err != nil && !errors.Is(err, errs.ErrInvalidTransition) {
			result = errors.Join(result, err)
		}
	}

	return result
}

func (h *ExpireOverdueOrdersCommandHandler) listOverdue(
	ctx context.Context,
	cmd ExpireOverdueOrdersCommand,
) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders, err := uow.OrderRepository().ListOverduePending(ctx, cmd.Now(), cmd.Limit())
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID())
	}
	return ids, nil
}
