package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoad_Defaults(t *testing.T) {
	p := writeConfig(t, `job:
  observation_log: /var/log/healthd/checks.ndjson
  webhook:
    url_env: STATUS_WEBHOOK_URL
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Job.LedgerPath != DefaultLedgerPath {
		t.Errorf("ledger_path: got %q, want %q", cfg.Job.LedgerPath, DefaultLedgerPath)
	}
	if cfg.Job.AlertThreshold != DefaultAlertThreshold {
		t.Errorf("alert_threshold: got %v, want %v", cfg.Job.AlertThreshold, DefaultAlertThreshold)
	}
	if cfg.Job.Webhook.Type != DefaultWebhookType {
		t.Errorf("webhook.type: got %q, want %q", cfg.Job.Webhook.Type, DefaultWebhookType)
	}
	if cfg.Job.Watch.Debounce != DefaultWatchDebounce {
		t.Errorf("watch.debounce: got %v, want %v", cfg.Job.Watch.Debounce, DefaultWatchDebounce)
	}
}

func TestLoad_Full(t *testing.T) {
	p := writeConfig(t, `job:
  observation_log: /data/checks.ndjson
  ledger_path: /data/ledger.json
  alert_threshold: 20m
  webhook:
    type: teams
    url_env: TEAMS_HOOK
  metrics:
    textfile: /var/lib/node_exporter/status.prom
  watch:
    enabled: true
    debounce: 5s
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Job.AlertThreshold != 20*time.Minute {
		t.Errorf("alert_threshold: got %v, want 20m", cfg.Job.AlertThreshold)
	}
	if cfg.Job.Webhook.Type != "teams" {
		t.Errorf("webhook.type: got %q, want teams", cfg.Job.Webhook.Type)
	}
	if cfg.Job.Metrics.Textfile != "/var/lib/node_exporter/status.prom" {
		t.Errorf("metrics.textfile: got %q", cfg.Job.Metrics.Textfile)
	}
	if !cfg.Job.Watch.Enabled || cfg.Job.Watch.Debounce != 5*time.Second {
		t.Errorf("watch: got %+v", cfg.Job.Watch)
	}
}

func TestLoad_MissingObservationLog(t *testing.T) {
	p := writeConfig(t, `job:
  webhook:
    url_env: HOOK
`)
	if _, err := Load(p); err == nil {
		t.Fatal("expected error for missing observation_log, got nil")
	}
}

func TestLoad_MissingURLEnv(t *testing.T) {
	p := writeConfig(t, `job:
  observation_log: /data/checks.ndjson
`)
	if _, err := Load(p); err == nil {
		t.Fatal("expected error for missing webhook.url_env, got nil")
	}
}

func TestLoad_UnknownWebhookType(t *testing.T) {
	p := writeConfig(t, `job:
  observation_log: /data/checks.ndjson
  webhook:
    type: pigeon
    url_env: HOOK
`)
	if _, err := Load(p); err == nil {
		t.Fatal("expected error for unknown webhook type, got nil")
	}
}

func TestLoad_NegativeThreshold(t *testing.T) {
	p := writeConfig(t, `job:
  observation_log: /data/checks.ndjson
  alert_threshold: -5m
  webhook:
    url_env: HOOK
`)
	if _, err := Load(p); err == nil {
		t.Fatal("expected error for negative threshold, got nil")
	}
}

func TestWebhook_URLResolution(t *testing.T) {
	t.Setenv("TEST_HOOK_URL", "https://hooks.example.com/T123")
	w := Webhook{Type: "slack", URLEnv: "TEST_HOOK_URL"}
	if got := w.URL(); got != "https://hooks.example.com/T123" {
		t.Errorf("URL(): got %q", got)
	}
}

func TestWebhook_URLUnset(t *testing.T) {
	if got := (Webhook{}).URL(); got != "" {
		t.Errorf("URL() with no env: got %q, want empty", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/config.yaml"); err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}
