package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the process-wide configuration. It is loaded once at startup
// and never mutated afterwards.
type Config struct {
	// Application identity
	AppName    string `env:"APP_NAME" envDefault:"Backend API"`
	AppVersion string `env:"APP_VERSION" envDefault:"0.1.0"`

	// HTTP server listen address
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	// Database configuration
	Mongo MongoConfig

	// Logging configuration
	Logging LoggingConfig
}

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	// Connection URL
	URL string `env:"MONGODB_URL" envDefault:"mongodb://localhost:27017"`

	// Database used by the HTTP service
	DBName string `env:"MONGODB_DB_NAME" envDefault:"backend_db"`

	// Database created by the setupdb provisioning tool
	SetupDBName string `env:"MONGODB_SETUP_DB_NAME" envDefault:"pets_medic_db"`
}

// LoggingConfig holds logging-related configuration.
type LoggingConfig struct {
	// Log level: "debug", "info", "warn", "error"
	Level string `env:"LOG_LEVEL" envDefault:"info"`

	// Log format: "json", "text"
	Format string `env:"LOG_FORMAT" envDefault:"json"`

	// Log file path (empty for stdout)
	Output string `env:"LOG_OUTPUT" envDefault:""`

	// Enable log rotation for file output
	Rotation bool `env:"LOG_ROTATION" envDefault:"true"`

	// Max log file size in MB
	MaxSize int `env:"LOG_MAX_SIZE" envDefault:"100"`

	// Number of backup files to keep
	MaxBackups int `env:"LOG_MAX_BACKUPS" envDefault:"7"`

	// Max age in days
	MaxAge int `env:"LOG_MAX_AGE" envDefault:"30"`
}

// Load reads configuration from environment variables, falling back to the
// defaults declared on the struct tags.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}
	return cfg, nil
}
