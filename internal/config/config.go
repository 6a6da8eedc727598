package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/accounted4/optionspark/internal/adapter/quote/yahoo"
)

const (
	defaultAPIToken = "dev-token"
	defaultGRPCAddr = ":8080"
	defaultHTTPAddr = ":8081"
	defaultLogLevel = "info"
)

// Config holds the runtime settings of the server and CLI
type Config struct {
	DBConnStr string
	APIToken  string
	GRPCAddr  string
	HTTPAddr  string
	LogLevel  string
	Quote     yahoo.Config
}

// LoadEnvFiles preloads variables from .env style files into the process environment
// Missing files are skipped; variables already set are not overridden
func LoadEnvFiles(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}
	return nil
}

// Load reads the configuration through getenv, applying defaults for unset values
func Load(getenv func(string) string) Config {
	return Config{
		DBConnStr: dbConnStr(getenv),
		APIToken:  envOr(getenv, "API_TOKEN", defaultAPIToken),
		GRPCAddr:  envOr(getenv, "GRPC_ADDR", defaultGRPCAddr),
		HTTPAddr:  envOr(getenv, "HTTP_ADDR", defaultHTTPAddr),
		LogLevel:  envOr(getenv, "LOG_LEVEL", defaultLogLevel),
		Quote:     yahoo.LoadConfig(getenv),
	}
}

// dbConnStr uses DB_CONN_STR when set, otherwise builds it from individual vars (Docker friendly)
func dbConnStr(getenv func(string) string) string {
	if connStr := getenv("DB_CONN_STR"); connStr != "" {
		return connStr
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		envOr(getenv, "DB_HOST", "localhost"),
		envOr(getenv, "DB_PORT", "5432"),
		envOr(getenv, "DB_USER", "postgres"),
		envOr(getenv, "DB_PASSWORD", "postgres"),
		envOr(getenv, "DB_NAME", "optionspark"),
	)
}

func envOr(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}
