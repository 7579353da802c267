package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration

	// Storage
	DBDriver string // "sqlite" or "postgres"
	DBDSN    string // file path for sqlite, connection string for postgres

	// Statistics
	FetchConcurrency int // in-flight log fetches per subject
	SummaryWorkers   int // subjects aggregated at once
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()
	return &Config{
		ServerAddress:    mustGetenv("SERVER_ADDRESS"),
		ShutdownTimeout:  mustGetDuration("SHUTDOWN_TIMEOUT"),
		DBDriver:         getenvDefault("DB_DRIVER", "sqlite"),
		DBDSN:            getenvDefault("DB_DSN", "examstats.db"),
		FetchConcurrency: getIntDefault("FETCH_CONCURRENCY", 4),
		SummaryWorkers:   getIntDefault("SUMMARY_WORKERS", 4),
	}
}

// LoadStorage reads only the storage settings. It is used by the CLI,
// which has no server to configure.
func LoadStorage() *Config {
	_ = godotenv.Load()
	return &Config{
		DBDriver:         getenvDefault("DB_DRIVER", "sqlite"),
		DBDSN:            getenvDefault("DB_DSN", "examstats.db"),
		FetchConcurrency: getIntDefault("FETCH_CONCURRENCY", 4),
		SummaryWorkers:   getIntDefault("SUMMARY_WORKERS", 4),
	}
}

func mustGetenv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	return v
}

func mustGetDuration(k string) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getIntDefault(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		log.Fatalf("config: %s=%q must be a positive integer", k, v)
	}
	return n
}
