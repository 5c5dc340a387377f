package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"movers/cmd"
	httpin "movers/internal/adapters/in/http"
	"movers/internal/adapters/out/postgres"
	"movers/internal/jobs"
	"movers/internal/pkg/log"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	envFile := flag.String("env", ".env", "path to an optional .env file")
	flag.Parse()

	cfg, err := cmd.LoadConfig(*envFile)
	if err != nil {
		panic(err)
	}

	logger := log.NewZap(cfg.LogLevel).With(zap.String("service", cfg.ServiceName))

	if err = run(cfg, logger); err != nil {
		logger.Error("service failed", zap.Error(err))
		_ = logger.Close()
		os.Exit(1)
	}

	logger.Info("service has been shutdown")
	_ = logger.Close()
}

func run(cfg cmd.Config, logger *log.Zap) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	tracer, traceProvider, err := cmd.ProvideTracer(ctx, cfg.ServiceName, cfg.Tracing)
	if err != nil {
		return fmt.Errorf("cannot provide tracer | %w", err)
	}

	gormDB, err := cmd.ProvideGorm(cfg.Postgres.URL)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("cannot access sql db | %w", err)
	}
	defer sqlDB.Close()

	if err = postgres.Migrate(gormDB); err != nil {
		return fmt.Errorf("cannot migrate database | %w", err)
	}

	pool, err := cmd.ProvidePGXPool(ctx, cfg.Postgres.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	app, err := cmd.NewCompositionRoot(cfg, gormDB, pool, logger)
	if err != nil {
		return fmt.Errorf("cannot build composition root | %w", err)
	}

	router := httpin.NewRouter(httpin.NewServer(app.HTTPHandlers(), logger), httpin.RouterOptions{
		ServiceName: cfg.ServiceName,
		Registerer:  prometheus.DefaultRegisterer,
		Tracer:      tracer,
	})
	metricsServer := httpin.NewMetricsServer(cfg.Metrics.Enabled, prometheus.DefaultGatherer, cfg.Metrics.Port, logger)
	jobManager := jobs.NewJobManager(logger, app.Jobs()...)

	if err = jobManager.StartAll(); err != nil {
		return fmt.Errorf("cannot start jobs | %w", err)
	}

	failed := make(chan error, 2)
	go func() {
		logger.Info("starting http server", zap.Int("port", cfg.HTTP.Port))
		if serveErr := router.Start(fmt.Sprintf(":%d", cfg.HTTP.Port)); serveErr != nil &&
			!errors.Is(serveErr, http.ErrServerClosed) {
			failed <- fmt.Errorf("cannot start http server | %w", serveErr)
		}
	}()
	go func() {
		if serveErr := metricsServer.ListenAndServe(); serveErr != nil {
			failed <- serveErr
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutting down service...")
	case runErr = <-failed:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	jobManager.StopAll()

	wg := &sync.WaitGroup{}
	shutdownFunctions := []func(){
		func() {
			if err := router.Shutdown(shutdownCtx); err != nil {
				logger.Error("failed to shutdown http server", zap.Error(err))
			}
		},
		func() {
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				logger.Error("failed to shutdown metrics server", zap.Error(err))
			}
		},
		func() {
			if traceProvider == nil {
				return
			}
			if err := traceProvider.Shutdown(shutdownCtx); err != nil {
				logger.Error("failed to shutdown trace provider", zap.Error(err))
			}
		},
	}
	wg.Add(len(shutdownFunctions))
	for _, fn := range shutdownFunctions {
		go func() {
			defer wg.Done()
			fn()
		}()
	}
	wg.Wait()

	if err := app.Close(); err != nil {
		logger.Error("failed to close adapters", zap.Error(err))
	}

	return runErr
}
