package config

import (
	"fmt"
	"os"

	"timeflow/internal/repository"
	"timeflow/internal/repository/memory"
	"timeflow/internal/repository/sqlite"
)

// CreateGateway builds the persistence gateway the configuration asks for.
func CreateGateway(config *Config) (repository.Gateway, error) {
	switch config.Storage.Backend {
	case BackendMemory:
		return memory.New(), nil
	case BackendSQLite:
		if err := os.MkdirAll(config.Storage.Dir, os.FileMode(config.Storage.DirPermissions)); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		gateway, err := sqlite.New(config.GetDatabasePath())
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return gateway, nil
	default:
		return nil, &ConfigError{Field: "storage.backend", Message: "backend must be sqlite or memory"}
	}
}

// CreateTestGateway creates an in-memory SQLite gateway for testing
func CreateTestGateway() (repository.Gateway, error) {
	gateway, err := sqlite.New(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}
	return gateway, nil
}
