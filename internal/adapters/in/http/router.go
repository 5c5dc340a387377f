package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	gommonlog "github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// RouterOptions configures cross-cutting middleware. A nil Registerer disables
// request metrics and a nil Tracer falls back to the global tracer provider.
type RouterOptions struct {
	ServiceName string
	Registerer  prometheus.Registerer
	Tracer      trace.Tracer
}

// NewRouter builds the echo instance serving s.
func NewRouter(s *Server, opts RouterOptions) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(gommonlog.OFF)
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = s.HandleError

	tracer := opts.Tracer
	if tracer == nil {
		tracer = otel.Tracer(opts.ServiceName)
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	if opts.Registerer != nil {
		e.Use(metricsMiddleware(opts.Registerer, opts.ServiceName))
	}
	e.Use(traceMiddleware(tracer, opts.ServiceName))
	e.Use(requestLogger(s.logger))

	e.GET("/health", s.Health)

	api := e.Group("/api/v1")

	api.POST("/customers", s.RegisterCustomer)

	api.POST("/movers", s.RegisterMover)
	api.GET("/movers/nearest", s.FindNearestMovers)
	api.GET("/movers/search", s.SearchMovers)
	api.GET("/movers/:id", s.GetMover)
	api.PUT("/movers/:id/location", s.UpdateMoverLocation)
	api.POST("/movers/:id/background-check", s.RecordBackgroundCheck)
	api.GET("/movers/:id/ratings", s.ListMoverRatings)
	api.POST("/movers/:id/ratings", s.SubmitRating)
	api.POST("/movers/:id/ratings/recompute", s.RecomputeMoverRating)

	api.POST("/quotes", s.QuoteOrder)

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/payment", s.ConfirmPayment)
	api.POST("/orders/:id/complete", s.CompleteOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)

	return e
}
