package commands

import (
	"context"

	"movers/internal/core/domain/model/order"
)

// CreateOrderCommandHandler creates a pending order for an eligible mover.
//
// The order is built before the transaction opens, so malformed input never
// reaches the store. The customer and the mover are read in the same
// transaction the order is written in; an unknown customer or mover is a
// not-found error.
type CreateOrderCommandHandler struct {
	uowFactory BookingUoWFactory
}

func NewCreateOrderCommandHandler(uowFactory BookingUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		cmd.MoverID(),
		cmd.OriginAddress(),
		cmd.DestinationAddress(),
		cmd.StartTime(),
		cmd.EndTime(),
		cmd.TotalCost(),
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

	if _, err = uow.CustomerRepository().Get(ctx, cmd.CustomerID()); err != nil {
		return err
	}

	m, err := uow.MoverRepository().Get(ctx, cmd.MoverID())
	if err != nil {
		return err
	}
	if err = m.EnsureEligible(); err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
