package config

import (
	"context"
	"testing"
	"time"

	"timeflow/internal/repository"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("expected sqlite backend, got %q", cfg.Storage.Backend)
	}
	if cfg.Storage.Filename != "timeflow.db" {
		t.Errorf("unexpected filename %q", cfg.Storage.Filename)
	}
	if cfg.Session.UserID != "local" {
		t.Errorf("unexpected user id %q", cfg.Session.UserID)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TIMEFLOW_STORAGE_BACKEND", "memory")
	t.Setenv("TIMEFLOW_DB_WRITE_TIMEOUT", "3s")
	t.Setenv("TIMEFLOW_USER", "alice")
	t.Setenv("TIMEFLOW_APP_VERBOSE", "true")

	cfg := NewConfig()
	if err := cfg.LoadFromEnvironment(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Storage.Backend != BackendMemory {
		t.Errorf("expected memory backend, got %q", cfg.Storage.Backend)
	}
	if cfg.Storage.WriteTimeout != 3*time.Second {
		t.Errorf("expected 3s write timeout, got %v", cfg.Storage.WriteTimeout)
	}
	if cfg.Session.UserID != "alice" {
		t.Errorf("expected alice, got %q", cfg.Session.UserID)
	}
	if !cfg.Application.Verbose {
		t.Error("expected verbose to be true")
	}
}

func TestEnvironmentIgnoresMalformedValues(t *testing.T) {
	t.Setenv("TIMEFLOW_DB_WRITE_TIMEOUT", "not-a-duration")
	t.Setenv("TIMEFLOW_APP_VERBOSE", "maybe")

	cfg := NewConfig()
	if err := cfg.LoadFromEnvironment(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Storage.WriteTimeout != 10*time.Second {
		t.Errorf("malformed duration should keep the default, got %v", cfg.Storage.WriteTimeout)
	}
	if cfg.Application.Verbose {
		t.Error("malformed bool should keep the default")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"unknown backend", func(c *Config) { c.Storage.Backend = "postgres" }, "storage.backend"},
		{"empty db dir", func(c *Config) { c.Storage.Dir = "" }, "storage.dir"},
		{"zero write timeout", func(c *Config) { c.Storage.WriteTimeout = 0 }, "storage.write_timeout"},
		{"empty user", func(c *Config) { c.Session.UserID = "" }, "session.user_id"},
		{"zero app timeout", func(c *Config) { c.Application.Timeout = 0 }, "application.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			configErr, ok := err.(*ConfigError)
			if !ok {
				t.Fatalf("expected ConfigError, got %v", err)
			}
			if configErr.Field != tt.wantField {
				t.Errorf("expected error on %s, got %s", tt.wantField, configErr.Field)
			}
		})
	}
}

func TestMemoryBackendSkipsPathValidation(t *testing.T) {
	cfg := NewConfig()
	cfg.Storage.Backend = BackendMemory
	cfg.Storage.Dir = ""
	cfg.Storage.Filename = ""

	if err := cfg.Validate(); err != nil {
		t.Errorf("memory backend should not need a path, got %v", err)
	}
}

func TestLoadWithOverrides(t *testing.T) {
	backend := BackendMemory
	user := "bob"
	loader := NewLoader()

	cfg, err := loader.LoadWithOverrides(&ConfigOverrides{
		StorageBackend: &backend,
		UserID:         &user,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Storage.Backend != BackendMemory {
		t.Errorf("override not applied, got %q", cfg.Storage.Backend)
	}
	if cfg.Session.UserID != "bob" {
		t.Errorf("override not applied, got %q", cfg.Session.UserID)
	}
}

func TestCreateGatewayMemory(t *testing.T) {
	cfg := NewConfig()
	cfg.Storage.Backend = BackendMemory

	gateway, err := CreateGateway(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer gateway.Close()
}

func TestCreateTestGateway(t *testing.T) {
	gateway, err := CreateTestGateway()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer gateway.Close()

	// The in-memory database is migrated and usable.
	ctx := context.Background()
	record := &repository.ClientRecord{ID: "c1", UserID: "u1", Name: "Acme"}
	if err := gateway.CreateClient(ctx, record); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clients, err := gateway.ListClients(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clients) != 1 || clients[0].Name != "Acme" {
		t.Errorf("unexpected clients %+v", clients)
	}
}
