package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"movers/internal/pkg/log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsServer serves /metrics on its own port. A disabled server is a no-op.
type MetricsServer struct {
	server *http.Server
	port   int
	logger *log.Zap
}

func NewMetricsServer(enabled bool, gatherer prometheus.Gatherer, port int, logger *log.Zap) *MetricsServer {
	m := &MetricsServer{port: port, logger: logger.Named("metrics")}
	if !enabled {
		return m
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	m.server = &http.Server{
		ReadHeaderTimeout: time.Minute,
		Handler:           mux,
		Addr:              ":" + strconv.Itoa(port),
	}
	return m
}

// ListenAndServe blocks until Shutdown. It returns nil right away when disabled.
func (m *MetricsServer) ListenAndServe() error {
	if m.server == nil {
		return nil
	}

	m.logger.Info("starting http metrics server", zap.Int("port", m.port))
	if err := m.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("cannot start http metrics server | %w", err)
	}
	return nil
}

func (m *MetricsServer) Shutdown(ctx context.Context) error {
	if m.server == nil {
		return nil
	}
	return m.server.Shutdown(ctx)
}
