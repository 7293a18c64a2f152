package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), "v1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Version != "v1" {
		t.Errorf("expected version v1, got %q", cfg.Version)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("expected default host localhost, got %q", cfg.Database.Host)
	}
	if cfg.Database.MaxConnections != 25 {
		t.Errorf("expected default max_connections 25, got %d", cfg.Database.MaxConnections)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("expected default logging info/json, got %+v", cfg.Logging)
	}
	if cfg.MigrationsPath != "migrations" {
		t.Errorf("expected default migrations path, got %q", cfg.MigrationsPath)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
port: "9090"
env: production
database:
  host: db.internal
  port: 5433
  database: match_engine
logging:
  level: debug
  format: console
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(path, "v2")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %q", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Errorf("expected env production, got %q", cfg.Env)
	}
	if cfg.Database.Host != "db.internal" || cfg.Database.Port != 5433 {
		t.Errorf("unexpected database config %+v", cfg.Database)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Errorf("unexpected logging config %+v", cfg.Logging)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PGHOST", "override.example")
	t.Setenv("PGPASSWORD", "s3cret")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), "v1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Host != "override.example" {
		t.Errorf("expected env override host, got %q", cfg.Database.Host)
	}
	if cfg.Database.Password != "s3cret" {
		t.Errorf("expected password from environment, got %q", cfg.Database.Password)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level warn, got %q", cfg.Logging.Level)
	}
}

func TestDatabaseConfig_ConnectionString(t *testing.T) {
	// A non-localhost host is never rewritten by the Docker resolution.
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "matchengine",
		Password: "pw",
		Database: "match_engine",
		SSLMode:  "disable",
	}

	want := "host=db.internal port=5432 user=matchengine password=pw dbname=match_engine sslmode=disable"
	if got := cfg.ConnectionString(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
