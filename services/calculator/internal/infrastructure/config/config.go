// Package config loads the calculator's configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/crestbank/crest/pkg/postgres"
	"github.com/crestbank/crest/services/calculator/internal/domain/service"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	HTTPPort  int
	GRPCPort  int
	DB        postgres.Config
	Kafka     KafkaConfig
	Redis     RedisConfig
	Auth      AuthConfig
	TLS       TLSConfig
	Telemetry TelemetryConfig
	Calc      CalcConfig
	Customer  CustomerConfig
	LogLevel  string
	LogFormat string
}

// KafkaConfig holds Kafka broker configuration.
type KafkaConfig struct {
	Brokers []string
	Enabled bool
}

// RedisConfig holds the result-cache connection parameters.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Enabled  bool
}

// AuthConfig holds JWT validation parameters.
type AuthConfig struct {
	Secret        string
	PublicKeyPath string
	Issuer        string
	Enabled       bool
}

// TLSConfig holds gRPC server TLS material; empty paths disable TLS.
type TLSConfig struct {
	CertFile string
	KeyFile  string
}

// TelemetryConfig holds OpenTelemetry configuration.
type TelemetryConfig struct {
	OTLPEndpoint string
	ServiceName  string
}

// CustomerConfig points at the customer directory service.
type CustomerConfig struct {
	BaseURL string
	Timeout time.Duration
}

// CalcConfig holds the calculation policy knobs.
type CalcConfig struct {
	GlobalMaxRate  decimal.Decimal
	DefaultTDSRate decimal.Decimal
	BonusPolicy    service.BonusPolicy
	CacheTTL       time.Duration
	MigrationsURL  string
}

// Load reads configuration from environment variables with defaults. A
// local .env file, when present, seeds the environment first.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		HTTPPort: getEnvInt("HTTP_PORT", 8087),
		GRPCPort: getEnvInt("GRPC_PORT", 9087),
		DB: postgres.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "crest"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "crest_calculator"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 20)),
			MinConns: int32(getEnvInt("DB_MIN_CONNS", 5)),
		},
		Kafka: KafkaConfig{
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			Enabled: getEnvBool("KAFKA_ENABLED", true),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			Enabled:  getEnvBool("REDIS_ENABLED", true),
		},
		Auth: AuthConfig{
			Secret:        getEnv("JWT_SECRET", ""),
			PublicKeyPath: getEnv("JWT_PUBLIC_KEY_PATH", ""),
			Issuer:        getEnv("JWT_ISSUER", "crest"),
			Enabled:       getEnvBool("AUTH_ENABLED", true),
		},
		TLS: TLSConfig{
			CertFile: getEnv("GRPC_TLS_CERT", ""),
			KeyFile:  getEnv("GRPC_TLS_KEY", ""),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			ServiceName:  "calculator-service",
		},
		Customer: CustomerConfig{
			BaseURL: getEnv("CUSTOMER_SERVICE_URL", ""),
			Timeout: getEnvDuration("CUSTOMER_SERVICE_TIMEOUT", 3*time.Second),
		},
		Calc: CalcConfig{
			GlobalMaxRate:  getEnvDecimal("CALC_GLOBAL_MAX_RATE", "8.50"),
			DefaultTDSRate: getEnvDecimal("CALC_DEFAULT_TDS_RATE", "10"),
			BonusPolicy:    bonusPolicy(getEnv("CALC_BONUS_POLICY", "highest")),
			CacheTTL:       getEnvDuration("CALC_CACHE_TTL", 15*time.Minute),
			MigrationsURL:  getEnv("MIGRATIONS_URL", "file://internal/infrastructure/persistence/migration"),
		},
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}
}

func bonusPolicy(s string) service.BonusPolicy {
	if strings.EqualFold(s, "stack") {
		return service.PolicyStackBonuses
	}
	return service.PolicyHighestBonus
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func getEnvDecimal(key, defaultVal string) decimal.Decimal {
	if val := os.Getenv(key); val != "" {
		if d, err := decimal.NewFromString(val); err == nil {
			return d
		}
	}
	return decimal.RequireFromString(defaultVal)
}
