package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"customers-api/internal/repositories"
)

// Supported store drivers
const (
	DriverMongo  = repositories.DriverMongo
	DriverSQLite = repositories.DriverSQLite
	DriverMemory = repositories.DriverMemory
)

// EnvProduction is the environment name that hardens the service
const EnvProduction = "production"

// Config holds all configuration for the application
type Config struct {
	Environment        string
	Port               string
	Database           DatabaseConfig
	Log                LogConfig
	ExposeErrorDetails bool
	MaxBodyBytes       int64
	ShutdownTimeout    time.Duration
}

// DatabaseConfig holds store configuration
type DatabaseConfig struct {
	Driver           string
	ConnectionString string
	Name             string
	Collection       string
	Timeout          time.Duration
	MinPoolSize      uint64
	MaxPoolSize      uint64
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string
	Format string
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// Validate checks that the configuration can start the service
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}

	switch c.Database.Driver {
	case DriverMongo, DriverSQLite:
		if c.Database.ConnectionString == "" {
			return fmt.Errorf("CONNECTION is required for the %s driver", c.Database.Driver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	if c.Database.MaxPoolSize > 0 && c.Database.MinPoolSize > c.Database.MaxPoolSize {
		return fmt.Errorf("DB_MIN_POOL_SIZE (%d) exceeds DB_MAX_POOL_SIZE (%d)", c.Database.MinPoolSize, c.Database.MaxPoolSize)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported LOG_FORMAT %q", c.Log.Format)
	}

	return nil
}

// Load loads configuration from environment variables and, outside
// production, a .env file in the working directory
func Load() (*Config, error) {
	if os.Getenv("ENVIRONMENT") != EnvProduction {
		_ = godotenv.Load()
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "3000")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("DB_DRIVER", DriverMongo)
	v.SetDefault("DB_COLLECTION", "customers")
	v.SetDefault("DB_TIMEOUT", "10s")
	v.SetDefault("DB_MIN_POOL_SIZE", 1)
	v.SetDefault("DB_MAX_POOL_SIZE", 20)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("MAX_BODY_BYTES", 100*1024)
	v.SetDefault("SHUTDOWN_TIMEOUT", "30s")

	environment := v.GetString("ENVIRONMENT")
	v.SetDefault("EXPOSE_ERROR_DETAILS", environment != EnvProduction)

	config := &Config{
		Environment: environment,
		Port:        v.GetString("PORT"),
		Database: DatabaseConfig{
			Driver:           v.GetString("DB_DRIVER"),
			ConnectionString: v.GetString("CONNECTION"),
			Name:             v.GetString("DB_NAME"),
			Collection:       v.GetString("DB_COLLECTION"),
			Timeout:          v.GetDuration("DB_TIMEOUT"),
			MinPoolSize:      v.GetUint64("DB_MIN_POOL_SIZE"),
			MaxPoolSize:      v.GetUint64("DB_MAX_POOL_SIZE"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		ExposeErrorDetails: v.GetBool("EXPOSE_ERROR_DETAILS"),
		MaxBodyBytes:       v.GetInt64("MAX_BODY_BYTES"),
		ShutdownTimeout:    v.GetDuration("SHUTDOWN_TIMEOUT"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
