package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pulsehealth/pulsehealth/pkg/types"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultCollectInterval    = time.Minute
	DefaultZThreshold         = 3.0
	DefaultDriftThresholdPct  = 20.0
	DefaultLearningPeriodDays = 14
	DefaultMinScans           = 5
	DefaultWindowScans        = 12
	DefaultHTTPPort           = 8080
	DefaultReportTTL          = 10 * time.Minute
	DefaultNotifyCooldown     = 15 * time.Minute
	DefaultAuthHeader         = "x-api-key"
	DefaultHistoryPath        = "data/history.jsonl"
	DefaultBaselineDir        = "data/baselines"
)

// Config is the top-level configuration shared by the daemon and the CLI.
// Fields map 1:1 to config.example.yaml.
type Config struct {
	// MachineID identifies the machine whose health is analyzed. Reports
	// and baselines are keyed by it.
	MachineID string `yaml:"machine_id"`

	Collector CollectorConfig `yaml:"collector"`
	Engine    EngineConfig    `yaml:"engine"`
	Server    ServerConfig    `yaml:"server"`
	Notify    NotifyConfig    `yaml:"notify"`
	Storage   StorageConfig   `yaml:"storage"`
}

// CollectorConfig describes the Prometheus text-format endpoint scans are
// pulled from.
type CollectorConfig struct {
	// Endpoint is the full URL of the metrics endpoint (e.g. a local
	// node_exporter /metrics).
	Endpoint string `yaml:"endpoint"`

	// Interval controls how often a scan is collected.
	Interval time.Duration `yaml:"interval"`

	// Mappings translate metric families into category scores or raw
	// indicator readings.
	Mappings []MetricMapping `yaml:"mappings"`
}

// MetricMapping routes one metric family into the scan. Exactly one of
// Category or Indicator must be set: Category records a severity score,
// Indicator records a raw value for failure extrapolation.
type MetricMapping struct {
	// Family is the Prometheus metric family name.
	Family string `yaml:"family"`

	// Category receives the (scaled) family value as a severity score.
	Category types.Category `yaml:"category"`

	// Indicator receives the (scaled) family value as a raw reading.
	Indicator string `yaml:"indicator"`

	// Scale multiplies the summed family value. Zero means 1.0.
	Scale float64 `yaml:"scale"`
}

// IndicatorConfig declares one failure indicator to extrapolate.
type IndicatorConfig struct {
	// Name matches the indicator key recorded by a mapping.
	Name string `yaml:"name"`

	// Threshold is the raw value whose crossing predicts failure.
	Threshold float64 `yaml:"threshold"`

	// Weight is this indicator's share in the aggregated estimate.
	// Zero means 1.0.
	Weight float64 `yaml:"weight"`
}

// EngineConfig holds the analytics thresholds.
type EngineConfig struct {
	// ZThreshold is the minimum |z-score| flagged as anomalous.
	ZThreshold float64 `yaml:"z_threshold"`

	// DriftThresholdPct is the minimum degradation percent reported as a
	// regression.
	DriftThresholdPct float64 `yaml:"drift_threshold_pct"`

	// LearningPeriodDays is the minimum history span a baseline is built
	// over.
	LearningPeriodDays int `yaml:"learning_period_days"`

	// MinScans is the minimum number of scans a baseline is built from.
	MinScans int `yaml:"min_scans"`

	// WindowScans is how many recent scans the regression window holds.
	WindowScans int `yaml:"window_scans"`

	Indicators []IndicatorConfig `yaml:"indicators"`
}

// ServerConfig holds the daemon's HTTP surface settings.
type ServerConfig struct {
	// HTTPPort serves the REST API and the WebSocket stream.
	HTTPPort int `yaml:"http_port"`

	// ReportTTL is how long a report stays live in the in-memory store.
	ReportTTL time.Duration `yaml:"report_ttl"`

	Auth AuthConfig `yaml:"auth"`
}

// AuthConfig configures REST API authentication.
type AuthConfig struct {
	// Mode is one of: apikey | none.
	Mode string `yaml:"mode"`

	// Header is the HTTP header the key is expected in.
	Header string `yaml:"header"`

	// KeyEnv names the environment variable holding the expected key.
	KeyEnv string `yaml:"key_env"`
}

// Key returns the API key resolved from the environment. Empty when KeyEnv
// is unset or the variable is not found.
func (a AuthConfig) Key() string {
	if a.KeyEnv == "" {
		return ""
	}
	return os.Getenv(a.KeyEnv)
}

// NotifyConfig holds webhook notification settings.
type NotifyConfig struct {
	// MinPriority is the least severe recommendation priority that
	// triggers a notification: critical | high | medium | low.
	MinPriority string `yaml:"min_priority"`

	// Cooldown suppresses repeat notifications per machine+category.
	Cooldown time.Duration `yaml:"cooldown"`

	Webhooks []WebhookConfig `yaml:"webhooks"`
}

// WebhookConfig defines one webhook delivery target.
type WebhookConfig struct {
	// Type is one of: slack | teams | http.
	Type string `yaml:"type"`

	// URLEnv names the environment variable holding the webhook URL.
	URLEnv string `yaml:"url_env"`
}

// URL returns the webhook URL resolved from the environment.
func (w WebhookConfig) URL() string {
	if w.URLEnv == "" {
		return ""
	}
	return os.Getenv(w.URLEnv)
}

// StorageConfig locates the scan history file and the baseline directory.
type StorageConfig struct {
	HistoryPath string `yaml:"history_path"`
	BaselineDir string `yaml:"baseline_dir"`
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with sensible defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
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
		Collector: CollectorConfig{
			Interval: DefaultCollectInterval,
		},
		Engine: EngineConfig{
			ZThreshold:         DefaultZThreshold,
			DriftThresholdPct:  DefaultDriftThresholdPct,
			LearningPeriodDays: DefaultLearningPeriodDays,
			MinScans:           DefaultMinScans,
			WindowScans:        DefaultWindowScans,
		},
		Server: ServerConfig{
			HTTPPort:  DefaultHTTPPort,
			ReportTTL: DefaultReportTTL,
			Auth:      AuthConfig{Header: DefaultAuthHeader},
		},
		Notify: NotifyConfig{
			MinPriority: string(types.PriorityCritical),
			Cooldown:    DefaultNotifyCooldown,
		},
		Storage: StorageConfig{
			HistoryPath: DefaultHistoryPath,
			BaselineDir: DefaultBaselineDir,
		},
	}
}

// validate checks required fields and structural constraints.
func validate(cfg *Config) error {
	if cfg.MachineID == "" {
		return fmt.Errorf("machine_id is required")
	}
	if cfg.Collector.Interval <= 0 {
		return fmt.Errorf("collector.interval must be positive")
	}
	for i, m := range cfg.Collector.Mappings {
		if m.Family == "" {
			return fmt.Errorf("collector.mappings[%d]: family is required", i)
		}
		if (m.Category == "") == (m.Indicator == "") {
			return fmt.Errorf("collector.mappings[%d] %q: exactly one of category or indicator is required", i, m.Family)
		}
		if m.Category != "" && !m.Category.Known() {
			return fmt.Errorf("collector.mappings[%d] %q: unknown category %q", i, m.Family, m.Category)
		}
		if m.Scale < 0 {
			return fmt.Errorf("collector.mappings[%d] %q: scale must not be negative", i, m.Family)
		}
	}
	if cfg.Engine.ZThreshold <= 0 {
		return fmt.Errorf("engine.z_threshold must be positive")
	}
	if cfg.Engine.DriftThresholdPct <= 0 {
		return fmt.Errorf("engine.drift_threshold_pct must be positive")
	}
	if cfg.Engine.LearningPeriodDays <= 0 {
		return fmt.Errorf("engine.learning_period_days must be positive")
	}
	if cfg.Engine.MinScans <= 0 {
		return fmt.Errorf("engine.min_scans must be positive")
	}
	if cfg.Engine.WindowScans < 3 {
		return fmt.Errorf("engine.window_scans must be at least 3")
	}
	for i, ind := range cfg.Engine.Indicators {
		if ind.Name == "" {
			return fmt.Errorf("engine.indicators[%d]: name is required", i)
		}
		if ind.Threshold <= 0 {
			return fmt.Errorf("engine.indicators[%d] %q: threshold must be positive", i, ind.Name)
		}
		if ind.Weight < 0 {
			return fmt.Errorf("engine.indicators[%d] %q: weight must not be negative", i, ind.Name)
		}
	}
	if cfg.Server.HTTPPort <= 0 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port out of range")
	}
	if cfg.Server.ReportTTL <= 0 {
		return fmt.Errorf("server.report_ttl must be positive")
	}
	switch cfg.Server.Auth.Mode {
	case "apikey", "none", "":
	default:
		return fmt.Errorf("server.auth.mode: unknown mode %q", cfg.Server.Auth.Mode)
	}
	switch types.Priority(cfg.Notify.MinPriority) {
	case types.PriorityCritical, types.PriorityHigh, types.PriorityMedium, types.PriorityLow:
	default:
		return fmt.Errorf("notify.min_priority: unknown priority %q", cfg.Notify.MinPriority)
	}
	for i, wh := range cfg.Notify.Webhooks {
		switch wh.Type {
		case "slack", "teams", "http":
		default:
			return fmt.Errorf("notify.webhooks[%d]: unknown type %q", i, wh.Type)
		}
	}
	if cfg.Storage.HistoryPath == "" {
		return fmt.Errorf("storage.history_path is required")
	}
	if cfg.Storage.BaselineDir == "" {
		return fmt.Errorf("storage.baseline_dir is required")
	}
	return nil
}
