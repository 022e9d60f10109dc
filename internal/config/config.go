package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Backends the storage factory knows how to build.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds all configuration options for the application
type Config struct {
	Storage     StorageConfig
	Session     SessionConfig
	Application ApplicationConfig
}

// StorageConfig holds persistence-related configuration
type StorageConfig struct {
	Backend        string        `env:"TIMEFLOW_STORAGE_BACKEND"`
	Dir            string        `env:"TIMEFLOW_DB_DIR"`
	Filename       string        `env:"TIMEFLOW_DB_FILENAME"`
	WriteTimeout   time.Duration `env:"TIMEFLOW_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `env:"TIMEFLOW_DB_DIR_PERMISSIONS"`
}

// SessionConfig holds the local session profile
type SessionConfig struct {
	UserID string `env:"TIMEFLOW_USER"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"TIMEFLOW_APP_TIMEOUT"`
	Verbose bool          `env:"TIMEFLOW_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".timeflow")

	return &Config{
		Storage: StorageConfig{
			Backend:        BackendSQLite,
			Dir:            defaultDBDir,
			Filename:       "timeflow.db",
			WriteTimeout:   10 * time.Second,
			DirPermissions: 0755,
		},
		Session: SessionConfig{
			UserID: "local",
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Storage.Dir, c.Storage.Filename)
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	if backend := os.Getenv("TIMEFLOW_STORAGE_BACKEND"); backend != "" {
		c.Storage.Backend = backend
	}
	if dir := os.Getenv("TIMEFLOW_DB_DIR"); dir != "" {
		c.Storage.Dir = dir
	}
	if filename := os.Getenv("TIMEFLOW_DB_FILENAME"); filename != "" {
		c.Storage.Filename = filename
	}
	if timeout := os.Getenv("TIMEFLOW_DB_WRITE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Storage.WriteTimeout = d
		}
	}
	if perms := os.Getenv("TIMEFLOW_DB_DIR_PERMISSIONS"); perms != "" {
		if p, err := strconv.ParseUint(perms, 8, 32); err == nil {
			c.Storage.DirPermissions = uint32(p)
		}
	}

	if user := os.Getenv("TIMEFLOW_USER"); user != "" {
		c.Session.UserID = user
	}

	if timeout := os.Getenv("TIMEFLOW_APP_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Application.Timeout = d
		}
	}
	if verbose := os.Getenv("TIMEFLOW_APP_VERBOSE"); verbose != "" {
		if b, err := strconv.ParseBool(verbose); err == nil {
			c.Application.Verbose = b
		}
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Storage.Backend != BackendSQLite && c.Storage.Backend != BackendMemory {
		return &ConfigError{Field: "storage.backend", Message: "backend must be sqlite or memory"}
	}
	if c.Storage.Backend == BackendSQLite {
		if c.Storage.Dir == "" {
			return &ConfigError{Field: "storage.dir", Message: "database directory cannot be empty"}
		}
		if c.Storage.Filename == "" {
			return &ConfigError{Field: "storage.filename", Message: "database filename cannot be empty"}
		}
	}
	if c.Storage.WriteTimeout <= 0 {
		return &ConfigError{Field: "storage.write_timeout", Message: "write timeout must be positive"}
	}
	if c.Session.UserID == "" {
		return &ConfigError{Field: "session.user_id", Message: "user id cannot be empty"}
	}
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}
	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
