package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Feed       FeedConfig
	Engagement EngagementConfig
	RateLimit  RateLimitConfig
	Sweeper    SweeperConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           string
	Env            string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
}

// DatabaseConfig holds SurrealDB connection settings
type DatabaseConfig struct {
	Host      string
	Port      string
	Namespace string
	Database  string
	User      string
	Password  string
}

// FeedConfig holds feed ranking settings
type FeedConfig struct {
	SerendipityProbability float64
	RandomSeed             int64
	CandidateLimit         int
}

// EngagementConfig holds engagement signal settings
type EngagementConfig struct {
	CacheSize int
}

// RateLimitConfig holds per-client rate limiting settings
type RateLimitConfig struct {
	Rate   int
	Window time.Duration
	Burst  int
}

// SweeperConfig holds lobby sweeper settings
type SweeperConfig struct {
	Interval time.Duration
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			Env:            getEnv("SERVER_ENV", "development"),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			AllowedOrigins: getSliceEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Database: DatabaseConfig{
			Host:      getEnv("DB_HOST", "localhost"),
			Port:      getEnv("DB_PORT", "8000"),
			Namespace: getEnv("DB_NAMESPACE", "padl"),
			Database:  getEnv("DB_DATABASE", "main"),
			User:      getEnv("DB_USER", "root"),
			Password:  getEnv("DB_PASSWORD", "root"),
		},
		Feed: FeedConfig{
			SerendipityProbability: getFloatEnv("FEED_SERENDIPITY_PROBABILITY", -1),
			RandomSeed:             int64(getIntEnv("FEED_RANDOM_SEED", 0)),
			CandidateLimit:         getIntEnv("FEED_CANDIDATE_LIMIT", 200),
		},
		Engagement: EngagementConfig{
			CacheSize: getIntEnv("ENGAGEMENT_CACHE_SIZE", 1024),
		},
		RateLimit: RateLimitConfig{
			Rate:   getIntEnv("RATE_LIMIT_REQUESTS", 100),
			Window: getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
			Burst:  getIntEnv("RATE_LIMIT_BURST", 20),
		},
		Sweeper: SweeperConfig{
			Interval: getDurationEnv("SWEEPER_INTERVAL", 5*time.Minute),
		},
	}, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	// Server validation
	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("SERVER_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}
	if len(c.Server.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must have at least one origin"))
	}

	// Database validation
	if c.Database.Host == "" {
		errs = append(errs, errors.New("DB_HOST is required"))
	}
	if c.Database.Port == "" {
		errs = append(errs, errors.New("DB_PORT is required"))
	}
	if c.Database.Namespace == "" {
		errs = append(errs, errors.New("DB_NAMESPACE is required"))
	}
	if c.Database.Database == "" {
		errs = append(errs, errors.New("DB_DATABASE is required"))
	}

	// Feed validation. Probability may be negative (selects the built-in
	// default) but never above 1.
	if c.Feed.SerendipityProbability > 1 {
		errs = append(errs, errors.New("FEED_SERENDIPITY_PROBABILITY must not exceed 1"))
	}
	if c.Feed.CandidateLimit <= 0 {
		errs = append(errs, errors.New("FEED_CANDIDATE_LIMIT must be positive"))
	}

	// Engagement validation
	if c.Engagement.CacheSize <= 0 {
		errs = append(errs, errors.New("ENGAGEMENT_CACHE_SIZE must be positive"))
	}

	// Rate limit validation
	if c.RateLimit.Rate <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_REQUESTS must be positive"))
	}
	if c.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_WINDOW must be positive"))
	}
	if c.RateLimit.Burst < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_BURST must not be negative"))
	}

	// Sweeper validation
	if c.Sweeper.Interval <= 0 {
		errs = append(errs, errors.New("SWEEPER_INTERVAL must be positive"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
