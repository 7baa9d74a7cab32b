// Package config reads the process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	strutil "registrar/pkg/platform/strings"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr        string
	Environment string
	LogLevel    string
	LogFormat   string

	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Audit     AuditConfig
}

// DatabaseConfig configures the Postgres pool.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig configures the optional Redis connection.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// AuthConfig configures tokens and registration defaults.
type AuthConfig struct {
	JWTSigningKey       string
	JWTIssuer           string
	TokenTTL            time.Duration
	ResetTokenTTL       time.Duration
	DefaultRoleCode     string
	DefaultPositionCode string
}

// RateLimitConfig configures auth-route rate limiting.
type RateLimitConfig struct {
	Disabled bool
	Limit    int
	Window   time.Duration
}

// AuditConfig configures audit sinks.
type AuditConfig struct {
	KafkaBrokers []string
	Topic        string
	BufferSize   int
}

const devSigningKey = "dev-secret-key-change-in-production"

// Load reads .env when present and then the environment.
func Load() (Server, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Server{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Server config from environment variables.
func FromEnv() (Server, error) {
	var errs []error
	dur := func(key string, def time.Duration) time.Duration {
		v, err := durationEnv(key, def)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}
	num := func(key string, def int) int {
		v, err := intEnv(key, def)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}

	cfg := Server{
		Addr:        stringEnv("REGISTRAR_ADDR", ":8080"),
		Environment: stringEnv("ENVIRONMENT", "development"),
		LogLevel:    stringEnv("LOG_LEVEL", "info"),
		LogFormat:   stringEnv("LOG_FORMAT", "json"),
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    num("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    num("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: dur("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     num("REDIS_POOL_SIZE", 10),
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Auth: AuthConfig{
			JWTSigningKey:       stringEnv("JWT_SIGNING_KEY", devSigningKey),
			JWTIssuer:           stringEnv("JWT_ISSUER", "registrar"),
			TokenTTL:            dur("JWT_EXPIRY", time.Hour),
			ResetTokenTTL:       dur("RESET_TOKEN_EXPIRY", time.Hour),
			DefaultRoleCode:     stringEnv("DEFAULT_ROLE_CODE", "DATA_ENTRY"),
			DefaultPositionCode: stringEnv("DEFAULT_POSITION_CODE", "DLIROIR356"),
		},
		RateLimit: RateLimitConfig{
			Disabled: os.Getenv("RATE_LIMIT_DISABLED") == "true",
			Limit:    num("AUTH_RATE_LIMIT", 5),
			Window:   dur("AUTH_RATE_WINDOW", time.Minute),
		},
		Audit: AuditConfig{
			KafkaBrokers: listEnv("KAFKA_BROKERS"),
			Topic:        stringEnv("AUDIT_TOPIC", "registrar.audit"),
			BufferSize:   num("AUDIT_BUFFER_SIZE", 1024),
		},
	}

	if cfg.Environment == "production" && cfg.Auth.JWTSigningKey == devSigningKey {
		errs = append(errs, errors.New("JWT_SIGNING_KEY must be set in production"))
	}
	if err := errors.Join(errs...); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

func stringEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func listEnv(key string) []string {
	return strutil.SplitList(os.Getenv(key))
}
