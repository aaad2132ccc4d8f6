package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8081" {
		t.Fatalf("Port = %q", cfg.Port)
	}
	if cfg.LedgerBackend != "file" {
		t.Fatalf("LedgerBackend = %q", cfg.LedgerBackend)
	}
	if cfg.LedgerKey != "transactions" {
		t.Fatalf("LedgerKey = %q", cfg.LedgerKey)
	}
	if cfg.AMQPExchange != "fintrack" || cfg.AMQPQueue != "ledger_changes" {
		t.Fatalf("AMQP defaults = %q %q", cfg.AMQPExchange, cfg.AMQPQueue)
	}
	if cfg.AssistantModel != "gpt-4o-mini" {
		t.Fatalf("AssistantModel = %q", cfg.AssistantModel)
	}
	if cfg.ExportInterval != 5*time.Minute {
		t.Fatalf("ExportInterval = %v", cfg.ExportInterval)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LEDGER_BACKEND", "memory")
	t.Setenv("EXPORT_INTERVAL", "30s")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("Port = %q", cfg.Port)
	}
	if cfg.LedgerBackend != "memory" {
		t.Fatalf("LedgerBackend = %q", cfg.LedgerBackend)
	}
	if cfg.ExportInterval != 30*time.Second {
		t.Fatalf("ExportInterval = %v", cfg.ExportInterval)
	}
}

func TestLoadBadDurationFallsBack(t *testing.T) {
	t.Setenv("EXPORT_INTERVAL", "not-a-duration")
	if cfg := Load(); cfg.ExportInterval != 5*time.Minute {
		t.Fatalf("ExportInterval = %v", cfg.ExportInterval)
	}
}

func TestValidateDefaults(t *testing.T) {
	if err := Load().Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestValidateFailures(t *testing.T) {
	base := func() *Config {
		cfg := Load()
		cfg.LedgerBackend = "memory"
		return cfg
	}

	cases := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{"non-numeric port", func(c *Config) { c.Port = "abc" }, "invalid port"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "invalid port"},
		{"unknown backend", func(c *Config) { c.LedgerBackend = "redis" }, "invalid ledger backend"},
		{"empty key", func(c *Config) { c.LedgerKey = "" }, "ledger key"},
		{"file backend without dir", func(c *Config) {
			c.LedgerBackend = "file"
			c.DataDir = ""
		}, "data directory"},
		{"bad amqp scheme", func(c *Config) { c.AMQPURL = "http://localhost" }, "AMQP URL scheme"},
		{"amqp without queue", func(c *Config) {
			c.AMQPURL = "amqp://localhost"
			c.AMQPQueue = ""
		}, "queue name"},
		{"assistant key without model", func(c *Config) {
			c.AssistantAPIKey = "sk-test"
			c.AssistantModel = ""
		}, "assistant model"},
		{"spreadsheet without sheet name", func(c *Config) {
			c.GoogleSpreadsheetID = "sheet-id"
			c.GoogleSheetName = ""
		}, "sheet name"},
		{"interval too short", func(c *Config) { c.ExportInterval = 100 * time.Millisecond }, "export interval"},
		{"interval too long", func(c *Config) { c.ExportInterval = 48 * time.Hour }, "export interval"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Fatalf("error %q does not mention %q", err, tc.wantMsg)
			}
		})
	}
}

func TestValidateCollectsMultipleErrors(t *testing.T) {
	cfg := Load()
	cfg.Port = "abc"
	cfg.LedgerBackend = "redis"
	cfg.LedgerKey = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"invalid port", "invalid ledger backend", "ledger key"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q missing %q", err, want)
		}
	}
}
