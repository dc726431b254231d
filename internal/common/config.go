package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string           `toml:"environment"` // "development" or "production"
	Server      ServerConfig     `toml:"server"`
	Logging     LoggingConfig    `toml:"logging"`
	PlacesAPI   PlacesAPIConfig  `toml:"places_api"`
	Aggregator  AggregatorConfig `toml:"aggregator"`
	Catalog     CatalogConfig    `toml:"catalog"`
	WebSocket   WebSocketConfig  `toml:"websocket"`
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Format     string   `toml:"format"`      // "json" or "text"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs (default: "15:04:05")
}

// PlacesAPIConfig contains Google Places API configuration
type PlacesAPIConfig struct {
	APIKey          string        `toml:"api_key"`           // Google Places API key
	RateLimit       int           `toml:"rate_limit"`        // Max API requests per second
	SearchTimeout   time.Duration `toml:"search_timeout"`    // Per nearby-search call timeout
	DetailTimeout   time.Duration `toml:"detail_timeout"`    // Per detail-lookup call timeout
	MaxRadiusMeters int           `toml:"max_radius_meters"` // Provider radius cap
}

// AggregatorConfig contains the aggregation pipeline bounds
type AggregatorConfig struct {
	MaxResults  int `toml:"max_results"`  // Result set cardinality cap
	EnrichLimit int `toml:"enrich_limit"` // Prefix of the bounded list to enrich with detail lookups
}

// CatalogConfig contains the business-type taxonomy configuration
type CatalogConfig struct {
	File string `toml:"file"` // Optional YAML taxonomy override; empty = embedded default
}

// WebSocketConfig contains configuration for WebSocket event streaming
type WebSocketConfig struct {
	AllowedEvents    []string `toml:"allowed_events"`    // Whitelist of event types to broadcast. Empty list allows all events.
	ThrottleInterval string   `toml:"throttle_interval"` // Minimum interval between broadcasts of the same event type (e.g. "500ms"); empty disables throttling
}

// NewDefaultConfig creates a configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			Output:     []string{"stdout"},
			TimeFormat: "15:04:05",
		},
		PlacesAPI: PlacesAPIConfig{
			APIKey:          "", // User must provide API key in config file or env
			RateLimit:       10,
			SearchTimeout:   30 * time.Second,
			DetailTimeout:   10 * time.Second,
			MaxRadiusMeters: 50000, // Google Places nearby search radius cap
		},
		Aggregator: AggregatorConfig{
			MaxResults:  50,
			EnrichLimit: 10,
		},
		Catalog: CatalogConfig{
			File: "", // Embedded taxonomy by default
		},
		WebSocket: WebSocketConfig{
			AllowedEvents:    []string{},
			ThrottleInterval: "",
		},
	}
}

// LoadFromFile loads configuration with priority: defaults -> file -> env -> CLI
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files; later files override
// earlier ones. Priority: CLI flags > environment > last file > ... > defaults.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("PROSPECT_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration
	if port := os.Getenv("PROSPECT_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("PROSPECT_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Logging configuration
	if level := os.Getenv("PROSPECT_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("PROSPECT_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}

	// Places API configuration
	if apiKey := os.Getenv("PROSPECT_PLACES_API_KEY"); apiKey != "" {
		config.PlacesAPI.APIKey = apiKey
	}
	if rateLimit := os.Getenv("PROSPECT_PLACES_RATE_LIMIT"); rateLimit != "" {
		if rl, err := strconv.Atoi(rateLimit); err == nil && rl > 0 {
			config.PlacesAPI.RateLimit = rl
		}
	}
	if searchTimeout := os.Getenv("PROSPECT_PLACES_SEARCH_TIMEOUT"); searchTimeout != "" {
		if st, err := time.ParseDuration(searchTimeout); err == nil {
			config.PlacesAPI.SearchTimeout = st
		}
	}
	if detailTimeout := os.Getenv("PROSPECT_PLACES_DETAIL_TIMEOUT"); detailTimeout != "" {
		if dt, err := time.ParseDuration(detailTimeout); err == nil {
			config.PlacesAPI.DetailTimeout = dt
		}
	}

	// Aggregator configuration
	if maxResults := os.Getenv("PROSPECT_AGGREGATOR_MAX_RESULTS"); maxResults != "" {
		if mr, err := strconv.Atoi(maxResults); err == nil && mr > 0 {
			config.Aggregator.MaxResults = mr
		}
	}
	if enrichLimit := os.Getenv("PROSPECT_AGGREGATOR_ENRICH_LIMIT"); enrichLimit != "" {
		if el, err := strconv.Atoi(enrichLimit); err == nil && el >= 0 {
			config.Aggregator.EnrichLimit = el
		}
	}

	// Catalog configuration
	if catalogFile := os.Getenv("PROSPECT_CATALOG_FILE"); catalogFile != "" {
		config.Catalog.File = catalogFile
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config
func ApplyFlagOverrides(config *Config, port int, host string) {
	// Command-line flags have highest priority
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}
