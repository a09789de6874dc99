package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultLedgerPath     = "ledger.json"
	DefaultAlertThreshold = 15 * time.Minute
	DefaultWebhookType    = "slack"
	DefaultWatchDebounce  = 2 * time.Second
)

// Config is the top-level configuration, parsed from the `job:` section
// of config.yaml.
type Config struct {
	Job JobConfig `yaml:"job"`
}

// JobConfig holds all settings for one alerting run.
type JobConfig struct {
	// ObservationLog is the path of the newline-delimited JSON health
	// observation log. Required.
	ObservationLog string `yaml:"observation_log"`

	// LedgerPath is where the alert dedupe ledger is persisted.
	// Default: ledger.json next to the working directory.
	LedgerPath string `yaml:"ledger_path"`

	// AlertThreshold is the minimum sustained outage duration before an
	// alert is sent. Default: 15m.
	AlertThreshold time.Duration `yaml:"alert_threshold"`

	// Webhook is the alert delivery target.
	Webhook Webhook `yaml:"webhook"`

	// Metrics configures the optional Prometheus textfile output.
	Metrics MetricsConfig `yaml:"metrics"`

	// Watch configures watch mode, where the job stays running and
	// re-evaluates whenever the observation log is written.
	Watch WatchConfig `yaml:"watch"`
}

// Webhook defines the alert delivery target.
type Webhook struct {
	// Type is one of: slack | teams | http.
	Type string `yaml:"type"`

	// URLEnv is the name of the environment variable that holds the
	// webhook URL.
	URLEnv string `yaml:"url_env"`
}

// URL returns the webhook URL resolved from the environment.
func (w Webhook) URL() string {
	if w.URLEnv == "" {
		return ""
	}
	return os.Getenv(w.URLEnv)
}

// MetricsConfig configures the Prometheus textfile-collector output.
type MetricsConfig struct {
	// Textfile is the path of the .prom file written after each run.
	// Empty disables metrics output.
	Textfile string `yaml:"textfile"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	// Enabled keeps the process running and re-runs the job on every
	// observation log write. The -watch flag overrides this.
	Enabled bool `yaml:"enabled"`

	// Debounce coalesces bursts of log writes into one re-run.
	// Default: 2s.
	Debounce time.Duration `yaml:"debounce"`
}

// Load reads and parses the config file at path. Missing optional fields
// are filled with defaults before validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Job: JobConfig{
			LedgerPath:     DefaultLedgerPath,
			AlertThreshold: DefaultAlertThreshold,
			Webhook: Webhook{
				Type: DefaultWebhookType,
			},
			Watch: WatchConfig{
				Debounce: DefaultWatchDebounce,
			},
		},
	}
}

// validate checks required fields and structural constraints.
func validate(cfg *Config) error {
	if cfg.Job.ObservationLog == "" {
		return fmt.Errorf("job.observation_log is required")
	}
	if cfg.Job.LedgerPath == "" {
		return fmt.Errorf("job.ledger_path must not be empty")
	}
	if cfg.Job.AlertThreshold <= 0 {
		return fmt.Errorf("job.alert_threshold must be positive")
	}
	switch cfg.Job.Webhook.Type {
	case "slack", "teams", "http":
	default:
		return fmt.Errorf("job.webhook.type %q unknown: want slack|teams|http", cfg.Job.Webhook.Type)
	}
	if cfg.Job.Webhook.URLEnv == "" {
		return fmt.Errorf("job.webhook.url_env is required")
	}
	if cfg.Job.Watch.Debounce <= 0 {
		return fmt.Errorf("job.watch.debounce must be positive")
	}
	return nil
}
