// Package http exposes the movers use cases as a JSON API on echo.
package http

import (
	"context"
	"net/http"

	"movers/internal/core/application/usecases/commands"
	"movers/internal/core/application/usecases/queries"
	"movers/internal/core/domain/model/kernel"
	"movers/internal/pkg/log"

	"github.com/labstack/echo/v4"
)

const (
	userIDHeader         = "X-User-ID"
	idempotencyKeyHeader = "Idempotency-Key"
)

type (
	CommandHandler[C any] interface {
		Handle(ctx context.Context, cmd C) error
	}

	QueryHandler[Q, R any] interface {
		Handle(ctx context.Context, query Q) (R, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	RegisterCustomer      CommandHandler[commands.RegisterCustomerCommand]
	RegisterMover         CommandHandler[commands.RegisterMoverCommand]
	RecordBackgroundCheck CommandHandler[commands.RecordBackgroundCheckCommand]
	UpdateMoverLocation   CommandHandler[commands.UpdateMoverLocationCommand]
	SubmitRating          CommandHandler[commands.SubmitRatingCommand]
	RecomputeMoverRating  CommandHandler[commands.RecomputeMoverRatingCommand]
	CreateOrder           CommandHandler[commands.CreateOrderCommand]
	ConfirmPayment        CommandHandler[commands.ConfirmPaymentCommand]
	CompleteOrder         CommandHandler[commands.CompleteOrderCommand]
	CancelOrder           CommandHandler[commands.CancelOrderCommand]

	GetMover          QueryHandler[queries.GetMoverQuery, queries.MoverResponse]
	FindNearestMovers QueryHandler[queries.FindNearestMoversQuery, []queries.MoverMatchResponse]
	SearchMovers      QueryHandler[queries.SearchMoversByAddressQuery, []queries.MoverMatchResponse]
	ListMoverRatings  QueryHandler[queries.ListMoverRatingsQuery, []queries.RatingResponse]
	GetOrder          QueryHandler[queries.GetOrderQuery, queries.OrderResponse]
	QuoteOrder        QueryHandler[queries.QuoteOrderQuery, queries.QuoteOrderQueryResponse]
}

// Server adapts HTTP requests to commands and queries. Writes answer with the
// identifier of the created resource or no content; callers read state back
// through the GET endpoints.
type Server struct {
	h      Handlers
	logger *log.Zap
}

func NewServer(h Handlers, logger *log.Zap) *Server {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Server{h: h, logger: logger.Named("http")}
}

func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

type createdResponse struct {
	ID string `json:"id"`
}

func created(c echo.Context, id kernel.UUID) error {
	c.Response().Header().Set(echo.HeaderLocation, c.Request().URL.Path+"/"+id.String())
	return c.JSON(http.StatusCreated, createdResponse{ID: id.String()})
}

func pathID(c echo.Context, name string) (kernel.UUID, error) {
	return kernel.ParseID(name, c.Param(name))
}

func currentUser(c echo.Context) (kernel.UUID, error) {
	raw := c.Request().Header.Get(userIDHeader)
	if raw == "" {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusUnauthorized, "missing "+userIDHeader+" header")
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil || id.IsZero() {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusUnauthorized, "malformed "+userIDHeader+" header")
	}
	return id, nil
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}
