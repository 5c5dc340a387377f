package commands

import (
	"errors"
	"time"

	"movers/internal/core/domain/model/kernel"
	"movers/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand books a mover for a move. Field rules (addresses, time
// range, cost) are enforced by the order aggregate itself.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), customerID, moverID,
//	    "1 Main St", "9 Elm St", start, start.Add(3*time.Hour), decimal.RequireFromString("240"))
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID            kernel.UUID
	customerID         kernel.UUID
	moverID            kernel.UUID
	originAddress      string
	destinationAddress string
	startTime          time.Time
	endTime            time.Time
	totalCost          decimal.Decimal

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	orderID, customerID, moverID kernel.UUID,
	originAddress, destinationAddress string,
	startTime, endTime time.Time,
	totalCost decimal.Decimal,
) (CreateOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		customerID.Validate(),
		moverID.Validate(),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		orderID:            orderID,
		customerID:         customerID,
		moverID:            moverID,
		originAddress:      originAddress,
		destinationAddress: destinationAddress,
		startTime:          startTime,
		endTime:            endTime,
		totalCost:          totalCost,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c CreateOrderCommand) MoverID() kernel.UUID {
	return c.moverID
}

func (c CreateOrderCommand) OriginAddress() string {
	return c.originAddress
}

func (c CreateOrderCommand) DestinationAddress() string {
	return c.destinationAddress
}

func (c CreateOrderCommand) StartTime() time.Time {
	return c.startTime
}

func (c CreateOrderCommand) EndTime() time.Time {
	return c.endTime
}

func (c CreateOrderCommand) TotalCost() decimal.Decimal {
	return c.totalCost
}
