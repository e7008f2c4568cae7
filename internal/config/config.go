// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Storage backends understood by STORAGE_BACKEND.
const (
	BackendSQLite   = "sqlite"
	BackendDynamoDB = "dynamodb"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// EnvDevelopment is the environment mode that defaults to the embedded store.
const EnvDevelopment = "development"

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	Environment    string `env:"ENVIRONMENT" envDefault:"development"`
	StorageBackend string `env:"STORAGE_BACKEND"`
	AppPort        int    `env:"APP_PORT" envDefault:"8080"`

	// Zone used to decide what "today" is.
	Timezone string `env:"TIMEZONE" envDefault:"UTC"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Request body size limit in bytes (default 1MB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`

	// Embedded store (SQLite)
	SQLitePath string `env:"SQLITE_PATH" envDefault:"users.db"`

	// Managed store (DynamoDB)
	AWSRegion             string        `env:"AWS_REGION" envDefault:"eu-west-1"`
	AWSAccessKeyID        string        `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey    string        `env:"AWS_SECRET_ACCESS_KEY"`
	DynamoDBEndpoint      string        `env:"DYNAMODB_ENDPOINT"`
	DynamoDBTable         string        `env:"DYNAMODB_TABLE" envDefault:"Users"`
	DynamoDBReadCapacity  int64         `env:"DYNAMODB_READ_CAPACITY" envDefault:"5"`
	DynamoDBWriteCapacity int64         `env:"DYNAMODB_WRITE_CAPACITY" envDefault:"5"`
	DynamoDBTableWait     time.Duration `env:"DYNAMODB_TABLE_WAIT" envDefault:"2m"`

	// Redis (key-value backend and rate limiter)
	RedisURL string `env:"REDIS_URL"`

	// PostgreSQL backend
	DatabaseURL string `env:"DATABASE_URL"`

	// Rate limiting of /hello routes, per client IP
	RateLimitEnabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"false"`
	RateLimitRPS     int  `env:"RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst   int  `env:"RATE_LIMIT_BURST" envDefault:"20"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// Backend resolves the storage backend. An explicit STORAGE_BACKEND wins;
// otherwise development uses SQLite and every other environment DynamoDB.
func (c *Config) Backend() string {
	if b := strings.ToLower(strings.TrimSpace(c.StorageBackend)); b != "" {
		return b
	}
	if c.IsDevelopment() {
		return BackendSQLite
	}
	return BackendDynamoDB
}

// Location returns the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Validate checks cross-field constraints that env tags cannot express.
func (c *Config) Validate() error {
	var errs []error

	switch c.Backend() {
	case BackendSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required for the sqlite backend"))
		}
	case BackendDynamoDB:
		if c.DynamoDBTable == "" {
			errs = append(errs, errors.New("DYNAMODB_TABLE is required for the dynamodb backend"))
		}
		if c.DynamoDBReadCapacity <= 0 || c.DynamoDBWriteCapacity <= 0 {
			errs = append(errs, errors.New("DynamoDB capacity units must be positive"))
		}
	case BackendRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required for the redis backend"))
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres backend"))
		}
	case BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend))
	}

	if c.RateLimitEnabled {
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required when RATE_LIMIT_ENABLED is set"))
		}
		if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
			errs = append(errs, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive"))
		}
	}

	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// LoadDotEnv loads .env and .env.local into the process environment when
// present. Variables that are already set are not overridden.
func LoadDotEnv() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load parses environment variables and returns a validated Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
