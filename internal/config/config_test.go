package config

import (
	"testing"
	"time"
)

type mapEnv map[string]string

func (m mapEnv) Getenv(key string) string { return m[key] }

func TestLoadConfigFromEnv_Defaults(t *testing.T) {
	cfg, err := LoadConfigFromEnv(mapEnv{"SECRET_KEY": "x"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Port != 4000 {
		t.Fatalf("expected default port 4000, got %d", cfg.Port)
	}
	if cfg.TokenExpiry != time.Hour {
		t.Fatalf("expected default token expiry 1h, got %v", cfg.TokenExpiry)
	}
	if cfg.MongoDatabase != "WHATProject" {
		t.Fatalf("expected default database, got %q", cfg.MongoDatabase)
	}
	if cfg.WSRequireToken {
		t.Fatalf("expected open websocket endpoint by default")
	}
}

func TestLoadConfigFromEnv_MissingSecret(t *testing.T) {
	_, err := LoadConfigFromEnv(mapEnv{})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoadConfigFromEnv_Overrides(t *testing.T) {
	cfg, err := LoadConfigFromEnv(mapEnv{
		"SECRET_KEY":           "x",
		"PORT":                 "1234",
		"TOKEN_EXPIRY_SECONDS": "120",
		"WS_REQUIRE_TOKEN":     "1",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Port != 1234 {
		t.Fatalf("expected port 1234, got %d", cfg.Port)
	}
	if cfg.TokenExpiry != 2*time.Minute {
		t.Fatalf("expected 2m expiry, got %v", cfg.TokenExpiry)
	}
	if !cfg.WSRequireToken {
		t.Fatalf("expected WSRequireToken to be set")
	}
}

func TestLoadConfigFromEnv_InvalidPort(t *testing.T) {
	_, err := LoadConfigFromEnv(mapEnv{"SECRET_KEY": "x", "PORT": "notaport"})
	if err == nil {
		t.Fatalf("expected error")
	}
}
