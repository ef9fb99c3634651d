package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all server configuration loaded from environment variables.
type Config struct {
	Port    string
	GinMode string
	DevMode bool

	DataDir  string
	DBDriver string
	DBDSN    string

	RateLimit float64
	RateBurst int

	FetchTimeout time.Duration
	CacheTTL     time.Duration
	MaxCacheSize int

	StatsRetainMonths int
}

// Load reads .env.development or .env and returns a populated Config.
func Load() *Config {
	// .env.development wins for local development
	if err := godotenv.Load(".env.development"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, using environment variables")
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() *Config {
	dataDir := getEnv("DATA_DIR", "./data")
	return &Config{
		Port:    getEnv("PORT", "8082"),
		GinMode: getEnv("GIN_MODE", "release"),
		DevMode: getEnvBool("DEV_MODE", false),

		DataDir:  dataDir,
		DBDriver: getEnv("DB_DRIVER", "sqlite"),
		DBDSN:    getEnv("DB_DSN", filepath.Join(dataDir, "audits.db")),

		RateLimit: getEnvFloat("RATE_LIMIT", 2),
		RateBurst: getEnvInt("RATE_BURST", 5),

		FetchTimeout: getEnvDuration("FETCH_TIMEOUT", 15*time.Second),
		CacheTTL:     getEnvDuration("CACHE_TTL", 30*time.Minute),
		MaxCacheSize: getEnvInt("MAX_CACHE_SIZE", 1000),

		StatsRetainMonths: getEnvInt("STATS_RETAIN_MONTHS", 12),
	}
}

// StatisticsPath is where visitor statistics are persisted.
func (c *Config) StatisticsPath() string {
	return filepath.Join(c.DataDir, "statistics.json")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
		log.Printf("Invalid %s=%q, using %d", key, val, fallback)
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
		}
		log.Printf("Invalid %s=%q, using %g", key, val, fallback)
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err == nil {
			return d
		}
		log.Printf("Invalid %s=%q, using %s", key, val, fallback)
	}
	return fallback
}
