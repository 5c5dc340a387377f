package queries

import (
	"context"
	"errors"
	"time"

	"movers/internal/core/domain/model/kernel"
	"movers/internal/core/domain/model/order"
	"movers/internal/pkg/guard"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

type GetOrderQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

type OrderResponse struct {
	ID                 kernel.UUID
	CustomerID         kernel.UUID
	MoverID            kernel.UUID
	OriginAddress      string
	DestinationAddress string
	StartTime          time.Time
	EndTime            time.Time
	TotalCost          decimal.Decimal
	Status             order.Status
	PaymentReference   string
	PaymentMethod      string
	DepositAmount      decimal.Decimal
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type GetOrderQueryHandler struct {
	db DB
}

func NewGetOrderQueryHandler(db DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	b := psql.Select(
		"id::text",
		"customer_id::text",
		"mover_id::text",
		"origin_address",
		"destination_address",
		"start_time",
		"end_time",
		"total_cost::text",
		"status",
		"COALESCE(payment_reference, '')",
		"COALESCE(payment_method, '')",
		"deposit_amount::text",
		"created_at",
		"updated_at",
	).
		From("orders").
		Where(sq.Eq{"id": query.OrderID().String()})

	return queryOne(ctx, h.db, b, "order", query.OrderID(), scanOrder)
}

func scanOrder(row pgx.Row) (OrderResponse, error) {
	var (
		resp                       OrderResponse
		id, customerID, moverID    string
		totalCost, deposit, status string
	)
	err := row.Scan(&id, &customerID, &moverID, &resp.OriginAddress, &resp.DestinationAddress,
		&resp.StartTime, &resp.EndTime, &totalCost, &status, &resp.PaymentReference,
		&resp.PaymentMethod, &deposit, &resp.CreatedAt, &resp.UpdatedAt)
	if err != nil {
		return OrderResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromString(id); err != nil {
		return OrderResponse{}, err
	}
	if resp.CustomerID, err = kernel.UUIDFromString(customerID); err != nil {
		return OrderResponse{}, err
	}
	if resp.MoverID, err = kernel.UUIDFromString(moverID); err != nil {
		return OrderResponse{}, err
	}
	if resp.TotalCost, err = decimal.NewFromString(totalCost); err != nil {
		return OrderResponse{}, err
	}
	if resp.DepositAmount, err = decimal.NewFromString(deposit); err != nil {
		return OrderResponse{}, err
	}
	if resp.Status, err = order.ParseStatus(status); err != nil {
		return OrderResponse{}, err
	}

	return resp, nil
}
