package config_test

import (
	"testing"

	"gymhub/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GYMHUB_JWT_SECRET", "test-secret")
	t.Setenv("GYMHUB_CSRF_KEY", "0123456789abcdef0123456789abcdef")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.DBPath != "gymhub.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.JWTExpireMin != 60 {
		t.Errorf("JWTExpireMin = %d", cfg.JWTExpireMin)
	}
	if cfg.IsProduction() {
		t.Error("default env should not be production")
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("GYMHUB_JWT_SECRET", "")
	t.Setenv("GYMHUB_CSRF_KEY", "k")

	if _, err := config.Load(); err == nil {
		t.Error("Load() accepted a missing JWT secret")
	}
}

func TestLoad_ProductionEnv(t *testing.T) {
	t.Setenv("GYMHUB_JWT_SECRET", "s")
	t.Setenv("GYMHUB_CSRF_KEY", "k")
	t.Setenv("GYMHUB_ENV", "production")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.IsProduction() {
		t.Error("IsProduction() = false for production env")
	}
}
