package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"gachabot/database"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken string

	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// Bot configuration
	CommandPrefix         string
	DefaultTicketRole     string // Used when a guild has not set its own ticket role
	DefaultTicketRole10   string
	SpinAnimationDelayMs  int
	ConfirmationTimeoutMs int

	// NATS configuration
	NATSServers string // Empty disables publishing to NATS; local handlers still run

	// Redis configuration
	RedisURL            string // Empty disables the pool cache
	PoolCacheTTLSeconds int

	// Ops endpoints
	OpsAPIAddr     string
	GRPCHealthAddr string

	// OpenTelemetry configuration
	OTelEnabled              bool
	OTelServiceName          string
	OTelExporterType         string // "console", "otlp" or "none"
	OTelOTLPEndpoint         string
	OTelExportIntervalMillis int

	// Logging
	LogLevel string

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
				instance.DiscordToken = "test-token"
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// IsProduction reports whether the bot runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// load loads configuration from a .env file, when present, and the environment
func load() (*Config, error) {
	// A missing .env file is normal outside local development
	_ = godotenv.Load()

	config := &Config{
		DiscordToken: os.Getenv("DISCORD_TOKEN"),

		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		CommandPrefix:         getEnvWithDefault("COMMAND_PREFIX", "*"),
		DefaultTicketRole:     getEnvWithDefault("DEFAULT_TICKET_ROLE", "Ticket"),
		DefaultTicketRole10:   getEnvWithDefault("DEFAULT_TICKET_ROLE_10", "Ticket x10"),
		SpinAnimationDelayMs:  getIntWithDefault("SPIN_ANIMATION_DELAY_MS", 4000),
		ConfirmationTimeoutMs: getIntWithDefault("CONFIRMATION_TIMEOUT_MS", 30000),

		NATSServers: os.Getenv("NATS_SERVERS"),

		RedisURL:            os.Getenv("REDIS_URL"),
		PoolCacheTTLSeconds: getIntWithDefault("POOL_CACHE_TTL_SECONDS", 300),

		OpsAPIAddr:     getEnvWithDefault("OPS_API_ADDR", ":8081"),
		GRPCHealthAddr: getEnvWithDefault("GRPC_HEALTH_ADDR", ":9090"),

		OTelEnabled:              getBoolWithDefault("OTEL_ENABLED", false),
		OTelServiceName:          getEnvWithDefault("OTEL_SERVICE_NAME", "gachabot"),
		OTelExporterType:         getEnvWithDefault("OTEL_EXPORTER_TYPE", "none"),
		OTelOTLPEndpoint:         getEnvWithDefault("OTEL_OTLP_ENDPOINT", "otel-collector:4317"),
		OTelExportIntervalMillis: getIntWithDefault("OTEL_EXPORT_INTERVAL_MS", 60000),

		LogLevel: getEnvWithDefault("LOG_LEVEL", "info"),

		Environment: os.Getenv("ENVIRONMENT"),
	}

	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		if config.DatabaseName != "" && strings.TrimSpace(config.DatabaseName) == "" {
			return nil, fmt.Errorf("DATABASE_NAME cannot be empty when provided")
		}
	}

	if strings.TrimSpace(config.CommandPrefix) == "" {
		return nil, fmt.Errorf("COMMAND_PREFIX cannot be blank")
	}

	return config, nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed >= 0 {
			return parsed
		}
	}
	return defaultValue
}

func getBoolWithDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:           "test",
		CommandPrefix:         "*",
		DefaultTicketRole:     "Ticket",
		DefaultTicketRole10:   "Ticket x10",
		ConfirmationTimeoutMs: 30000,
		PoolCacheTTLSeconds:   300,
		OTelExporterType:      "none",
		LogLevel:              "info",
	}
}
