package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// Every environment variable is read here and nowhere else; the loaded
// struct is passed by reference to whatever needs it.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Public site root used in generated sitemap URLs
	BaseURL string

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// External APIs
	EODHD EODHDConfig

	// Sitemap generation
	Sitemap SitemapConfig

	// Roster
	Roster RosterConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	URL string

	// Connection pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// EODHDConfig holds EODHD API configuration (ticker roster source).
type EODHDConfig struct {
	APIKey   string
	BaseURL  string
	Exchange string
}

// SitemapConfig holds the comparison-sitemap generation parameters.
type SitemapConfig struct {
	PageSize  int
	FirstYear int
	CacheTTL  time.Duration
}

// RosterConfig holds ticker roster source configuration.
type RosterConfig struct {
	// FilePath is a fallback ticker list (one symbol per line) used
	// when no database is configured or the tickers table is empty.
	FilePath string
}

// Load reads configuration from environment variables. This is the only
// function in the codebase that calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port:    getEnv("PORT", "8080"),
		Env:     getEnv("ENV", "development"),
		BaseURL: strings.TrimRight(getEnv("BASE_URL", "https://lician.com"), "/"),

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		EODHD: EODHDConfig{
			APIKey:   getEnv("EODHD_API_KEY", ""),
			BaseURL:  getEnv("EODHD_BASE_URL", "https://eodhd.com/api"),
			Exchange: getEnv("EODHD_EXCHANGE", "US"),
		},

		Sitemap: SitemapConfig{
			PageSize:  getEnvAsInt("SITEMAP_PAGE_SIZE", 50000),
			FirstYear: getEnvAsInt("SITEMAP_FIRST_YEAR", 2020),
			CacheTTL:  getEnvAsDuration("SITEMAP_CACHE_TTL", "24h"),
		},

		Roster: RosterConfig{
			FilePath: getEnv("ROSTER_FILE", ""),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set.
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.BaseURL == "" {
		return fmt.Errorf("BASE_URL must not be empty")
	}

	// The roster has to come from somewhere.
	if c.Database.URL == "" && c.Roster.FilePath == "" {
		return fmt.Errorf("either DATABASE_URL or ROSTER_FILE is required")
	}

	if c.Sitemap.PageSize <= 0 {
		return fmt.Errorf("SITEMAP_PAGE_SIZE must be positive")
	}

	if c.Sitemap.FirstYear < 1900 {
		return fmt.Errorf("SITEMAP_FIRST_YEAR must be a calendar year")
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations.
func loadEnvFile() {
	paths := []string{
		".env",
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
