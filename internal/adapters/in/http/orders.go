package http

import (
	"net/http"
	"time"

	"movers/internal/core/application/usecases/commands"
	"movers/internal/core/application/usecases/queries"
	"movers/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type createOrderRequest struct {
	MoverID            string          `json:"mover_id" validate:"required,uuid"`
	OriginAddress      string          `json:"origin_address" validate:"required,max=255"`
	DestinationAddress string          `json:"destination_address" validate:"required,max=255"`
	StartTime          time.Time       `json:"start_time" validate:"required"`
	EndTime            time.Time       `json:"end_time" validate:"required"`
	TotalCost          decimal.Decimal `json:"total_cost"`
}

type confirmPaymentRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required,max=255"`
}

type quoteRequest struct {
	Rate               decimal.Decimal `json:"rate"`
	OriginAddress      string          `json:"origin_address" validate:"required,max=255"`
	DestinationAddress string          `json:"destination_address" validate:"required,max=255"`
	StartTime          time.Time       `json:"start_time" validate:"required"`
	EndTime            time.Time       `json:"end_time" validate:"required"`
}

type orderResponse struct {
	ID                 string          `json:"id"`
	CustomerID         string          `json:"customer_id"`
	MoverID            string          `json:"mover_id"`
	OriginAddress      string          `json:"origin_address"`
	DestinationAddress string          `json:"destination_address"`
	StartTime          time.Time       `json:"start_time"`
	EndTime            time.Time       `json:"end_time"`
	TotalCost          decimal.Decimal `json:"total_cost"`
	Status             string          `json:"status"`
	PaymentReference   string          `json:"payment_reference,omitempty"`
	PaymentMethod      string          `json:"payment_method,omitempty"`
	DepositAmount      decimal.Decimal `json:"deposit_amount"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

type quoteResponse struct {
	DistanceKm    float64         `json:"distance_km"`
	DurationHours float64         `json:"duration_hours"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	Deposit       decimal.Decimal `json:"deposit"`
}

// CreateOrder handles POST /api/v1/orders. The X-User-ID user is the customer.
func (s *Server) CreateOrder(c echo.Context) error {
	customerID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req createOrderRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}
	moverID, err := kernel.ParseID("mover_id", req.MoverID)
	if err != nil {
		return err
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, customerID, moverID,
		req.OriginAddress, req.DestinationAddress, req.StartTime, req.EndTime, req.TotalCost)
	if err != nil {
		return err
	}
	if err = s.h.CreateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return created(c, orderID)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	q, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return err
	}

	o, err := s.h.GetOrder.Handle(c.Request().Context(), q)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, orderResponse{
		ID:                 o.ID.String(),
		CustomerID:         o.CustomerID.String(),
		MoverID:            o.MoverID.String(),
		OriginAddress:      o.OriginAddress,
		DestinationAddress: o.DestinationAddress,
		StartTime:          o.StartTime,
		EndTime:            o.EndTime,
		TotalCost:          o.TotalCost,
		Status:             o.Status.String(),
		PaymentReference:   o.PaymentReference,
		PaymentMethod:      o.PaymentMethod,
		DepositAmount:      o.DepositAmount,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	})
}

// ConfirmPayment handles POST /api/v1/orders/:id/payment.
func (s *Server) ConfirmPayment(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req confirmPaymentRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewConfirmPaymentCommand(id, req.PaymentMethod)
	if err != nil {
		return err
	}
	cmd = cmd.WithAttemptKey(c.Request().Header.Get(idempotencyKeyHeader))
	if err = s.h.ConfirmPayment.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// CompleteOrder handles POST /api/v1/orders/:id/complete.
func (s *Server) CompleteOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewCompleteOrderCommand(id)
	if err != nil {
		return err
	}
	if err = s.h.CompleteOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewCancelOrderCommand(id)
	if err != nil {
		return err
	}
	if err = s.h.CancelOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// QuoteOrder handles POST /api/v1/quotes.
func (s *Server) QuoteOrder(c echo.Context) error {
	var req quoteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	q, err := queries.NewQuoteOrderQuery(req.Rate, req.OriginAddress, req.DestinationAddress,
		req.StartTime, req.EndTime)
	if err != nil {
		return err
	}

	quote, err := s.h.QuoteOrder.Handle(c.Request().Context(), q)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, quoteResponse{
		DistanceKm:    quote.DistanceKm,
		DurationHours: quote.DurationHours,
		TotalCost:     quote.TotalCost,
		Deposit:       quote.Deposit,
	})
}
