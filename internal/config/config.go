package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// TokenTTL is the fixed lifetime of issued bearer tokens.
const TokenTTL = time.Hour

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port             string
	StorageDriver    string
	DatabaseURL      string
	MongoURI         string
	MongoDatabase    string
	JWTSecret        string
	JWTIssuer        string
	JWTSigningMethod string
	JWTTTL           time.Duration
	CORSOrigins      []string
	LogLevel         string
	LogFormat        string
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		Port:             fallback(os.Getenv("PORT"), "5000"),
		StorageDriver:    strings.ToLower(fallback(os.Getenv("STORAGE_DRIVER"), DriverPostgres)),
		DatabaseURL:      strings.TrimSpace(os.Getenv("DATABASE_URL")),
		MongoURI:         strings.TrimSpace(os.Getenv("MONGO_URI")),
		MongoDatabase:    fallback(os.Getenv("MONGO_DATABASE"), "safeguard"),
		JWTSecret:        strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:        fallback(os.Getenv("JWT_ISSUER"), "safeguard-backend"),
		JWTSigningMethod: strings.ToUpper(fallback(os.Getenv("JWT_SIGNING_METHOD"), "HS256")),
		JWTTTL:           TokenTTL,
		CORSOrigins:      parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
		LogLevel:         strings.ToLower(fallback(os.Getenv("LOG_LEVEL"), "info")),
		LogFormat:        strings.ToLower(fallback(os.Getenv("LOG_FORMAT"), "json")),
	}

	switch cfg.StorageDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("DATABASE_URL is required")
		}
	case DriverMongo:
		if cfg.MongoURI == "" {
			return Config{}, errors.New("MONGO_URI is required")
		}
	case DriverMemory:
	default:
		return Config{}, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	switch cfg.JWTSigningMethod {
	case "HS256", "HS384", "HS512":
	default:
		return Config{}, fmt.Errorf("unsupported JWT_SIGNING_METHOD %q", cfg.JWTSigningMethod)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return Config{}, fmt.Errorf("unsupported LOG_LEVEL %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		return Config{}, fmt.Errorf("unsupported LOG_FORMAT %q", cfg.LogFormat)
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
