// Package config handles configuration loading from an optional YAML file and
// environment variables. Environment variables override file values.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store backend selectors.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config holds all configuration values for the application.
type Config struct {
	// HTTP server port
	HTTPPort int

	// Store backend: "memory" or "postgres"
	StoreKind string

	// Database connection string, required for the postgres backend
	DatabaseURL string

	// Secret used to sign and verify bearer tokens
	JWTSecret string

	// Lifetime of issued bearer tokens
	TokenTTL time.Duration

	// Directory for uploaded files
	UploadDir string

	// Upload size ceiling in bytes
	MaxUploadBytes int64

	// OTLP collector address for traces; empty disables tracing
	OTLPEndpoint string

	// Requests per second allowed per user; 0 means unlimited
	RateLimit float64
	RateBurst int
}

// Load reads configuration from the given YAML file (optional, pass "" to
// skip) and the environment. Env vars win over file values.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("http_port", 8080)
	v.SetDefault("store", StoreMemory)
	v.SetDefault("token_ttl", "24h")
	v.SetDefault("upload_dir", "./uploads")
	v.SetDefault("max_upload_bytes", int64(50<<20))
	v.SetDefault("rate_limit", 20.0)
	v.SetDefault("rate_burst", 40)

	v.BindEnv("http_port", "PORT")
	v.BindEnv("store", "GDYS_STORE")
	v.BindEnv("database_url", "DATABASE_URL")
	v.BindEnv("jwt_secret", "GDYS_JWT_SECRET")
	v.BindEnv("token_ttl", "GDYS_TOKEN_TTL")
	v.BindEnv("upload_dir", "GDYS_UPLOAD_DIR")
	v.BindEnv("max_upload_bytes", "GDYS_MAX_UPLOAD_BYTES")
	v.BindEnv("otlp_endpoint", "OTEL_EXPORTER_OTLP_ENDPOINT")
	v.BindEnv("rate_limit", "GDYS_RATE_LIMIT")
	v.BindEnv("rate_burst", "GDYS_RATE_BURST")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	storeKind := strings.ToLower(v.GetString("store"))
	if storeKind != StoreMemory && storeKind != StorePostgres {
		return nil, fmt.Errorf("invalid store %q: must be %q or %q", storeKind, StoreMemory, StorePostgres)
	}

	dbURL := v.GetString("database_url")
	if storeKind == StorePostgres && dbURL == "" {
		return nil, fmt.Errorf("database_url is required for the postgres store (env: DATABASE_URL)")
	}

	secret := v.GetString("jwt_secret")
	if secret == "" {
		return nil, fmt.Errorf("jwt_secret is required (env: GDYS_JWT_SECRET)")
	}

	tokenTTL, err := time.ParseDuration(v.GetString("token_ttl"))
	if err != nil {
		return nil, fmt.Errorf("invalid token_ttl: %w", err)
	}

	return &Config{
		HTTPPort:       v.GetInt("http_port"),
		StoreKind:      storeKind,
		DatabaseURL:    dbURL,
		JWTSecret:      secret,
		TokenTTL:       tokenTTL,
		UploadDir:      v.GetString("upload_dir"),
		MaxUploadBytes: v.GetInt64("max_upload_bytes"),
		OTLPEndpoint:   v.GetString("otlp_endpoint"),
		RateLimit:      v.GetFloat64("rate_limit"),
		RateBurst:      v.GetInt("rate_burst"),
	}, nil
}
