package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const envPrefix = "MOVERS"

// Config is read from MOVERS_* environment variables. A .env file, when
// present, only fills variables that are not already set.
type Config struct {
	ServiceName string `envconfig:"SERVICE_NAME" default:"movers"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	HTTP         HTTPConfig         `envconfig:"HTTP"`
	Postgres     PostgresConfig     `envconfig:"POSTGRES"`
	Metrics      MetricsConfig      `envconfig:"METRICS"`
	Tracing      TracingConfig      `envconfig:"OPENTELEMETRY"`
	Payments     PaymentsConfig     `envconfig:"PAYMENTS"`
	Verification VerificationConfig `envconfig:"VERIFICATION"`
	Geocoder     GeocoderConfig     `envconfig:"GEOCODER"`
	Redis        RedisConfig        `envconfig:"REDIS"`
	Kafka        KafkaConfig        `envconfig:"KAFKA"`
	Jobs         JobsConfig         `envconfig:"JOBS"`
}

type HTTPConfig struct {
	Port            int           `envconfig:"PORT" default:"8080"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

type PostgresConfig struct {
	URL string `envconfig:"URL" required:"true"`
}

type MetricsConfig struct {
	Enabled bool `envconfig:"ENABLED" default:"true"`
	Port    int  `envconfig:"PORT" default:"9090"`
}

type TracingConfig struct {
	Enabled bool   `envconfig:"ENABLED" default:"false"`
	URL     string `envconfig:"COLLECTOR_URL"`
	UseTLS  bool   `envconfig:"USE_TLS" default:"false"`
}

type PaymentsConfig struct {
	StripeSecretKey string          `envconfig:"STRIPE_SECRET_KEY" required:"true"`
	DepositRate     decimal.Decimal `envconfig:"DEPOSIT_RATE" default:"0.10"`
	Currency        string          `envconfig:"CURRENCY" default:"usd"`
	Timeout         time.Duration   `envconfig:"TIMEOUT" default:"10s"`
}

type VerificationConfig struct {
	URL     string        `envconfig:"URL" required:"true"`
	APIKey  string        `envconfig:"API_KEY"`
	Timeout time.Duration `envconfig:"TIMEOUT" default:"10s"`
}

type GeocoderConfig struct {
	AddressURL string        `envconfig:"ADDRESS_URL" required:"true"`
	IPURL      string        `envconfig:"IP_URL" default:"https://ipgeolocation.abstractapi.com/v1/"`
	APIKey     string        `envconfig:"API_KEY"`
	Timeout    time.Duration `envconfig:"TIMEOUT" default:"5s"`
}

// RedisConfig enables the geocoding cache when URL is set.
type RedisConfig struct {
	URL      string        `envconfig:"URL"`
	CacheTTL time.Duration `envconfig:"CACHE_TTL" default:"24h"`
}

// KafkaConfig enables domain event publishing when Brokers is set.
type KafkaConfig struct {
	Brokers     []string `envconfig:"BROKERS"`
	TopicPrefix string   `envconfig:"TOPIC_PREFIX" default:"movers."`
}

type JobsConfig struct {
	ExpiryEnabled   bool   `envconfig:"EXPIRY_ENABLED" default:"false"`
	ExpirySchedule  string `envconfig:"EXPIRY_SCHEDULE" default:"@every 1m"`
	ExpiryBatchSize int    `envconfig:"EXPIRY_BATCH_SIZE" default:"100"`
}

// LoadConfig loads envFile if it exists and parses the environment.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("cannot load %s | %w", envFile, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("error while parsing environment variables | %w", err)
	}

	if cfg.Payments.DepositRate.IsNegative() || cfg.Payments.DepositRate.GreaterThan(decimal.NewFromInt(1)) {
		return Config{}, fmt.Errorf("deposit rate %s is outside [0..1]", cfg.Payments.DepositRate)
	}
	if cfg.Tracing.Enabled && cfg.Tracing.URL == "" {
		return Config{}, errors.New("tracing is enabled but no collector url is set")
	}

	return cfg, nil
}
