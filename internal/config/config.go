package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Driver names accepted for the persistence layer.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all configuration options for the taskboard application
type Config struct {
	Database    DatabaseConfig
	Server      ServerConfig
	Application ApplicationConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Driver       string        `env:"TASKBOARD_DB_DRIVER"`
	Dir          string        `env:"TASKBOARD_DB_DIR"`
	Filename     string        `env:"TASKBOARD_DB_FILENAME"`
	DSN          string        `env:"TASKBOARD_DB_DSN"`
	QueryTimeout time.Duration `env:"TASKBOARD_DB_QUERY_TIMEOUT"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string        `env:"TASKBOARD_SERVER_ADDR"`
	ReadTimeout     time.Duration `env:"TASKBOARD_SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `env:"TASKBOARD_SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `env:"TASKBOARD_SERVER_SHUTDOWN_TIMEOUT"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Verbose bool `env:"TASKBOARD_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".taskboard")

	return &Config{
		Database: DatabaseConfig{
			Driver:       DriverSQLite,
			Dir:          defaultDBDir,
			Filename:     "taskboard.db",
			QueryTimeout: 10 * time.Second,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Application: ApplicationConfig{
			Verbose: false,
		},
	}
}

// GetDatabasePath returns the full path to the SQLite database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if driver := os.Getenv("TASKBOARD_DB_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}
	if dir := os.Getenv("TASKBOARD_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("TASKBOARD_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if dsn := os.Getenv("TASKBOARD_DB_DSN"); dsn != "" {
		c.Database.DSN = dsn
	}
	if timeout := os.Getenv("TASKBOARD_DB_QUERY_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Database.QueryTimeout = d
		}
	}

	// Server configuration
	if addr := os.Getenv("TASKBOARD_SERVER_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if timeout := os.Getenv("TASKBOARD_SERVER_READ_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Server.ReadTimeout = d
		}
	}
	if timeout := os.Getenv("TASKBOARD_SERVER_WRITE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Server.WriteTimeout = d
		}
	}
	if timeout := os.Getenv("TASKBOARD_SERVER_SHUTDOWN_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Server.ShutdownTimeout = d
		}
	}

	// Application configuration
	if verbose := os.Getenv("TASKBOARD_APP_VERBOSE"); verbose != "" {
		if b, err := strconv.ParseBool(verbose); err == nil {
			c.Application.Verbose = b
		}
	}

	return nil
}

// Load creates a configuration from defaults and environment overrides
func Load() (*Config, error) {
	cfg := NewConfig()
	if err := cfg.LoadFromEnvironment(); err != nil {
		return nil, err
	}
	return cfg, nil
}
