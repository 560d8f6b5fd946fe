package config

import (
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("BACKEND_URL", "http://backend:8000")
	t.Setenv("READ_TIMEOUT", "10s")
	t.Setenv("WRITE_TIMEOUT", "20m")
	t.Setenv("IDLE_TIMEOUT", "30s")
	t.Setenv("RATE_LIMIT", "10")
	t.Setenv("RATE_LIMIT_INTERVAL", "2s")
	t.Setenv("DEBUG", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := LoadConfig()

	if cfg.ServerPort != "9090" {
		t.Errorf("expected 9090, got %s", cfg.ServerPort)
	}
	if cfg.BackendURL != "http://backend:8000" {
		t.Errorf("expected http://backend:8000, got %s", cfg.BackendURL)
	}
	if cfg.ReadTimeout != 10*time.Second {
		t.Errorf("expected 10s, got %s", cfg.ReadTimeout)
	}
	if cfg.WriteTimeout != 20*time.Minute {
		t.Errorf("expected 20m, got %s", cfg.WriteTimeout)
	}
	if cfg.IdleTimeout != 30*time.Second {
		t.Errorf("expected 30s, got %s", cfg.IdleTimeout)
	}
	if cfg.RateLimit != 10 {
		t.Errorf("expected 10, got %d", cfg.RateLimit)
	}
	if cfg.RateLimitInterval != 2*time.Second {
		t.Errorf("expected 2s, got %s", cfg.RateLimitInterval)
	}
	if !cfg.Debug {
		t.Error("expected debug to be enabled")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected debug, got %s", cfg.LogLevel)
	}
	if err := ValidateConfig(cfg); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("READ_TIMEOUT", "soon")
	t.Setenv("RATE_LIMIT", "many")
	t.Setenv("DEBUG", "maybe")

	cfg := LoadConfig()

	if cfg.ReadTimeout != 15*time.Second {
		t.Errorf("expected default 15s, got %s", cfg.ReadTimeout)
	}
	if cfg.RateLimit != 5 {
		t.Errorf("expected default 5, got %d", cfg.RateLimit)
	}
	if cfg.Debug {
		t.Error("expected default debug=false")
	}
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			ServerPort:        "8080",
			BackendURL:        "http://localhost:8000",
			ReadTimeout:       time.Second,
			WriteTimeout:      time.Second,
			IdleTimeout:       time.Second,
			RateLimit:         1,
			RateLimitInterval: time.Second,
			LogLevel:          "info",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"missing port", func(c *Config) { c.ServerPort = "" }, true},
		{"missing backend", func(c *Config) { c.BackendURL = "" }, true},
		{"backend without scheme", func(c *Config) { c.BackendURL = "localhost:8000" }, true},
		{"backend ftp", func(c *Config) { c.BackendURL = "ftp://localhost" }, true},
		{"zero read timeout", func(c *Config) { c.ReadTimeout = 0 }, true},
		{"negative write timeout", func(c *Config) { c.WriteTimeout = -time.Second }, true},
		{"zero idle timeout", func(c *Config) { c.IdleTimeout = 0 }, true},
		{"zero rate limit", func(c *Config) { c.RateLimit = 0 }, true},
		{"zero rate interval", func(c *Config) { c.RateLimitInterval = 0 }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := ValidateConfig(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
