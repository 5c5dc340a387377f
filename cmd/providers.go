package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdkTrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc/credentials"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const notOperational = "noop"

// ProvideGorm opens the write-side connection used by repositories.
func ProvideGorm(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening gorm connection | %w", err)
	}
	return db, nil
}

// ProvidePGXPool opens the read-side pool used by queries.
func ProvidePGXPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("error parsing config | %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("error creating pool | %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging pool | %w", err)
	}

	return pool, nil
}

// ProvideTracer installs an OTLP gRPC exporter as the global tracer provider.
// When tracing is disabled the returned provider is nil and spans are no-ops.
func ProvideTracer(ctx context.Context, serviceName string, cfg TracingConfig) (trace.Tracer, *sdkTrace.TracerProvider, error) {
	if !cfg.Enabled {
		return otel.Tracer(notOperational), nil, nil
	}

	transport := otlptracegrpc.WithInsecure()
	if cfg.UseTLS {
		transport = otlptracegrpc.WithTLSCredentials(credentials.NewClientTLSFromCert(nil, ""))
	}

	exporter, err := otlptracegrpc.New(ctx, transport, otlptracegrpc.WithEndpoint(cfg.URL))
	if err != nil {
		return nil, nil, fmt.Errorf("error creating trace exporter | %w", err)
	}

	res := resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceNameKey.String(serviceName))

	tp := sdkTrace.NewTracerProvider(
		sdkTrace.WithBatcher(exporter),
		sdkTrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return otel.Tracer(serviceName), tp, nil
}
