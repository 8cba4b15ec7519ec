// Package config reads process settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr           string        `validate:"required"`
	Env            string        `validate:"oneof=development production test"`
	LogLevel       string        `validate:"oneof=debug info warn error"`
	BooksPerPage   int           `validate:"gt=0"`
	CatalogFile    string
	DatabaseDSN    string
	DBTimeout      time.Duration `validate:"gt=0"`
	DefaultTheme   string        `validate:"oneof=day night"`
	RateLimitRPS   float64       `validate:"gt=0"`
	RateLimitBurst int           `validate:"gt=0"`
	MaxBodyBytes   int64         `validate:"gt=0"`
	AllowedOrigins []string
	EnableHSTS     bool
}

// LoadEnvFiles reads .env and .env.local into the process environment.
func LoadEnvFiles() {
	// Do not override environment provided by the runtime (e.g. Docker).
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load builds a Config from the environment and validates it.
func Load() (*Config, error) {
	var errs []string
	cfg := &Config{
		Addr:         GetEnv("APP_ADDR", ":8080"),
		Env:          GetEnv("APP_ENV", "development"),
		LogLevel:     strings.ToLower(GetEnv("LOG_LEVEL", "info")),
		CatalogFile:  os.Getenv("CATALOG_FILE"),
		DatabaseDSN:  os.Getenv("DB_DSN"),
		DefaultTheme: strings.ToLower(GetEnv("DEFAULT_THEME", "day")),
	}

	var err error
	if cfg.BooksPerPage, err = strconv.Atoi(GetEnv("BOOKS_PER_PAGE", "36")); err != nil {
		errs = append(errs, "BOOKS_PER_PAGE must be an integer")
	}
	if cfg.DBTimeout, err = time.ParseDuration(GetEnv("DB_TIMEOUT", "5s")); err != nil {
		errs = append(errs, "DB_TIMEOUT must be a duration")
	}
	if cfg.RateLimitRPS, err = strconv.ParseFloat(GetEnv("RATE_LIMIT_RPS", "20"), 64); err != nil {
		errs = append(errs, "RATE_LIMIT_RPS must be a number")
	}
	if cfg.RateLimitBurst, err = strconv.Atoi(GetEnv("RATE_LIMIT_BURST", "40")); err != nil {
		errs = append(errs, "RATE_LIMIT_BURST must be an integer")
	}
	if cfg.MaxBodyBytes, err = strconv.ParseInt(GetEnv("MAX_BODY_BYTES", "65536"), 10, 64); err != nil {
		errs = append(errs, "MAX_BODY_BYTES must be an integer")
	}
	if cfg.EnableHSTS, err = strconv.ParseBool(GetEnv("ENABLE_HSTS", "false")); err != nil {
		errs = append(errs, "ENABLE_HSTS must be a boolean")
	}
	cfg.AllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid config: %s", strings.Join(errs, "; "))
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func GetEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// RedactDSN hides the credentials part of a connection string.
func RedactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
