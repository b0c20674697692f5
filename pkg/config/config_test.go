package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_PORT", "")
	t.Setenv("DB_HOST", "")

	c, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if c.APIPort != "3001" {
		t.Fatalf("expected default port 3001, got %s", c.APIPort)
	}
	if c.ShutdownTimeout != 15*time.Second {
		t.Fatalf("expected default shutdown timeout 15s, got %s", c.ShutdownTimeout)
	}
	if c.DatabaseConfigured() {
		t.Fatal("expected no database configured without DB_HOST")
	}
}

func TestLoadEnvBinding(t *testing.T) {
	t.Setenv("API_PORT", "8090")
	t.Setenv("DB_TYPE", "mysql")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_NAME", "lifeos")
	t.Setenv("DB_USER", "lifeos")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET", "test-secret")

	c, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if c.APIPort != "8090" {
		t.Fatalf("expected port 8090, got %s", c.APIPort)
	}
	if c.DBType != "mysql" || c.DBHost != "db.internal" || c.DBPort != "3306" {
		t.Fatalf("unexpected database settings: %+v", c)
	}
	if !c.DatabaseConfigured() {
		t.Fatal("expected database configured with DB_HOST set")
	}
	if c.JWTSecret != "test-secret" {
		t.Fatalf("expected JWT secret bound, got %q", c.JWTSecret)
	}
}

func TestLoadRejectsUnknownDBType(t *testing.T) {
	t.Setenv("DB_TYPE", "oracle")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unsupported DB_TYPE")
	}
}
