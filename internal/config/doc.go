// Package config manages application configuration for the PADL API.
//
// The config package loads and validates configuration from environment variables.
// All configuration is centralized here to provide a single source of truth.
//
// # Configuration Loading
//
// Configuration is loaded from environment variables:
//
//	cfg, err := config.Load()
//
// # Configuration Groups
//
// Configuration is organized into logical groups:
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS)
//   - DatabaseConfig: SurrealDB connection settings
//   - FeedConfig: Serendipity probability, random seed, candidate limit
//   - EngagementConfig: Signal history bounds and cache size
//   - RateLimitConfig: Request rate limiting settings
//   - SweeperConfig: Lobby sweeper interval
//
// # Environment Variables
//
// Key environment variables:
//
//	SERVER_PORT       - HTTP server port (default: 8080)
//	DB_HOST           - SurrealDB host
//	DB_PORT           - SurrealDB port
//	DB_NAMESPACE      - Database namespace
//	DB_DATABASE       - Database name
//	FEED_SERENDIPITY_PROBABILITY - Exploration injection probability
//	FEED_RANDOM_SEED  - Seed for the feed's random source (0 = from time)
//
// # Default Values
//
// Sensible defaults are provided for development:
//
//	func getEnv(key, defaultValue string) string {
//	    if value := os.Getenv(key); value != "" {
//	        return value
//	    }
//	    return defaultValue
//	}
package config
