package http

import (
	"strconv"
	"strings"
	"time"

	"movers/internal/pkg/log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const routeUnknown = "unknown"

func routeOf(c echo.Context) string {
	if p := c.Path(); p != "" {
		return p
	}
	return routeUnknown
}

// metricsMiddleware records request durations and error counts by route and status.
func metricsMiddleware(reg prometheus.Registerer, serviceName string) echo.MiddlewareFunc {
	serviceName = strings.ReplaceAll(serviceName, "-", "_")

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_responses_duration_seconds",
		Help:    "Response time by route and status code.",
		Buckets: []float64{.005, .01, .05, .1, .5, 1, 5, 10, 15, 30},
	}, []string{"service", "method", "route", "code"})

	errorsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_error_requests_count",
		Help: "Error requests count by route and status code.",
	}, []string{"service", "method", "route", "code"})

	reg.MustRegister(durations, errorsTotal)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				status, _ = statusFor(err)
			}
			code := strconv.Itoa(status)
			method, route := c.Request().Method, routeOf(c)

			if status >= 400 {
				errorsTotal.WithLabelValues(serviceName, method, route, code).Inc()
			}
			durations.WithLabelValues(serviceName, method, route, code).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// traceMiddleware opens a server span per request, continuing an incoming
// W3C trace context when present.
func traceMiddleware(tracer trace.Tracer, serviceName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := otel.GetTextMapPropagator().Extract(req.Context(), propagation.HeaderCarrier(req.Header))

			ctx, span := tracer.Start(ctx, req.Method+" "+routeOf(c), trace.WithSpanKind(trace.SpanKindServer))
			defer span.End()

			span.SetAttributes(
				attribute.String("product", serviceName),
				attribute.String("http.method", req.Method),
				attribute.String("http.route", routeOf(c)),
			)
			c.SetRequest(req.WithContext(ctx))

			err := next(c)

			status := c.Response().Status
			if err != nil {
				status, _ = statusFor(err)
			}
			span.SetAttributes(attribute.Int("http.status_code", status))
			setSpanStatus(span, err)

			return err
		}
	}
}

func setSpanStatus(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "")
	} else {
		span.SetStatus(otelcodes.Ok, "")
	}
}

func requestLogger(logger *log.Zap) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogRoutePath: true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("path", v.URIPath),
				zap.String("route", v.RoutePath),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("requestId", v.RequestID),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			logger.Info("request", fields...)
			return nil
		},
	})
}
