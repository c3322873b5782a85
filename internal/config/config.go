package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Backend names accepted by RECORDS_BACKEND.
const (
	BackendDirectory  = "dir"
	BackendMinIO      = "minio"
	BackendClickHouse = "clickhouse"
)

type Config struct {
	// HTTP server
	Addr string

	// Record source
	Backend string
	DataDir string

	// MinIO backend
	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOPrefix    string
	MinIOUseSSL    bool

	// ClickHouse backend
	ClickHouseAddr     string
	ClickHouseDatabase string
	ClickHouseTable    string

	// Aggregation
	TopAccounts int
}

// Load reads configuration from the environment, with a .env file as
// optional seed.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Addr: getEnv("ADDR", ":8050"),

		Backend: getEnv("RECORDS_BACKEND", BackendDirectory),
		DataDir: getEnv("DATA_DIR", "data/exports"),

		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOBucket:    getEnv("MINIO_BUCKET", "transaction-exports"),
		MinIOPrefix:    getEnv("MINIO_PREFIX", ""),
		MinIOUseSSL:    getEnvBool("MINIO_USE_SSL", false),

		ClickHouseAddr:     getEnv("CLICKHOUSE_ADDR", "127.0.0.1:9000"),
		ClickHouseDatabase: getEnv("CLICKHOUSE_DATABASE", "default"),
		ClickHouseTable:    getEnv("CLICKHOUSE_TABLE", "transactions"),

		TopAccounts: getEnvInt("TOP_ACCOUNTS", 100),
	}
}

// Validate returns an error describing the first invalid setting.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendDirectory, BackendMinIO, BackendClickHouse:
	default:
		return fmt.Errorf("invalid records backend %q: must be one of %s, %s, %s",
			c.Backend, BackendDirectory, BackendMinIO, BackendClickHouse)
	}
	if c.TopAccounts < 1 {
		return fmt.Errorf("invalid top accounts limit %d: must be positive", c.TopAccounts)
	}
	if c.Addr == "" {
		return fmt.Errorf("server address must not be empty")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
