package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "WEBHOOK_PATH", "DATASET_SOURCE", "DATASET_PROFILE", "RESULT_LIMIT", "METRICS_ENABLED"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.Port != 8080 {
		t.Errorf("Port: got %d, want 8080", cfg.Port)
	}
	if cfg.WebhookPath != "/whatsapp" {
		t.Errorf("WebhookPath: got %q, want /whatsapp", cfg.WebhookPath)
	}
	if cfg.DatasetProfile != "sheet" {
		t.Errorf("DatasetProfile: got %q, want sheet", cfg.DatasetProfile)
	}
	if cfg.ResultLimit != 5 {
		t.Errorf("ResultLimit: got %d, want 5", cfg.ResultLimit)
	}
	if !cfg.MetricsEnabled {
		t.Error("MetricsEnabled should default to true")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATASET_PROFILE", "Salesforce")
	t.Setenv("RESULT_LIMIT", "not-a-number")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("FETCH_TIMEOUT_SEC", "7")

	cfg := Load()
	if cfg.Addr() != ":9090" {
		t.Errorf("Addr: got %q, want :9090", cfg.Addr())
	}
	if cfg.DatasetProfile != "salesforce" {
		t.Errorf("DatasetProfile: got %q, want salesforce", cfg.DatasetProfile)
	}
	if cfg.ResultLimit != 5 {
		t.Errorf("ResultLimit should fall back to 5 on bad input, got %d", cfg.ResultLimit)
	}
	if cfg.MetricsEnabled {
		t.Error("MetricsEnabled: got true, want false")
	}
	if cfg.FetchTimeout() != 7*time.Second {
		t.Errorf("FetchTimeout: got %v, want 7s", cfg.FetchTimeout())
	}
}
