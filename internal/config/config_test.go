package config

import (
	"testing"
	"time"
)

func TestLoad_ParsesEnvironment(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9999")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DANSWER_SERVICE_URL", "http://danswer.local")
	t.Setenv("DANSWER_TOKEN", "secret")
	t.Setenv("DANSWER_TIMEOUT", "45s")

	cfg, err := Load("unit")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ServerAddr != ":9999" {
		t.Errorf("expected server addr :9999, got %q", cfg.ServerAddr)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %q", cfg.LogLevel)
	}
	if cfg.Environment != "unit" {
		t.Errorf("expected environment unit, got %q", cfg.Environment)
	}
	if cfg.DanswerCfg.Url != "http://danswer.local" {
		t.Errorf("expected danswer url, got %q", cfg.DanswerCfg.Url)
	}
	if cfg.DanswerCfg.Token != "secret" {
		t.Errorf("expected danswer token, got %q", cfg.DanswerCfg.Token)
	}
	if cfg.DanswerCfg.RequestTimeout != 45*time.Second {
		t.Errorf("expected request timeout 45s, got %v", cfg.DanswerCfg.RequestTimeout)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("unit")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ServerAddr != ":8080" {
		t.Errorf("expected default server addr :8080, got %q", cfg.ServerAddr)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %q", cfg.LogLevel)
	}
	if cfg.DanswerCfg.RequestTimeout != 30*time.Second {
		t.Errorf("expected default request timeout 30s, got %v", cfg.DanswerCfg.RequestTimeout)
	}
	if cfg.DanswerCfg.ConnTimeout != 10*time.Second {
		t.Errorf("expected default conn timeout 10s, got %v", cfg.DanswerCfg.ConnTimeout)
	}
}

func TestGetEnvFile(t *testing.T) {
	tests := []struct {
		environment string
		want        string
	}{
		{"prod", ".env.prod"},
		{"production", ".env.prod"},
		{"local", ".env.local"},
		{"dev", ".env.local"},
		{"staging", ".env.staging"},
	}

	for _, tt := range tests {
		if got := getEnvFile(tt.environment); got != tt.want {
			t.Errorf("getEnvFile(%q) = %q, want %q", tt.environment, got, tt.want)
		}
	}
}
