package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dgallion1/richdoc/internal/render"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port string `yaml:"port"`

	// Auth
	APIKey string `yaml:"api_key"`

	// Rendering
	UnknownPolicy   string `yaml:"unknown_policy"`
	AllowDiagnostic bool   `yaml:"allow_diagnostic"`
	SummaryMaxRunes int    `yaml:"summary_max_runes"`

	// Request limits
	MaxBodyBytes int64 `yaml:"max_body_bytes"`

	// Batch rendering
	BatchWorkers int `yaml:"batch_workers"`
	MaxBatchSize int `yaml:"max_batch_size"`

	// Stats
	StatsWindow time.Duration `yaml:"stats_window"`

	// PDF sources
	PDFFallbackPdftotext bool `yaml:"pdf_fallback_pdftotext"`

	LogLevel string `yaml:"log_level"`
}

func defaults() Config {
	return Config{
		Port:                 "8090",
		UnknownPolicy:        string(render.PolicySilent),
		MaxBodyBytes:         4 << 20, // 4MB
		BatchWorkers:         8,
		MaxBatchSize:         100,
		StatsWindow:          1 * time.Hour,
		PDFFallbackPdftotext: true,
		LogLevel:             "info",
	}
}

// Load reads the optional YAML file named by RICHDOC_CONFIG, then applies
// environment overrides. Environment always wins over the file.
func Load() (Config, error) {
	cfg := defaults()
	if path := os.Getenv("RICHDOC_CONFIG"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	cfg.Port = envOr("PORT", cfg.Port)
	cfg.APIKey = envOr("RICHDOC_API_KEY", cfg.APIKey)
	cfg.UnknownPolicy = envOr("UNKNOWN_POLICY", cfg.UnknownPolicy)
	cfg.AllowDiagnostic = envBool("ALLOW_DIAGNOSTIC", cfg.AllowDiagnostic)
	cfg.SummaryMaxRunes = envInt("SUMMARY_MAX_RUNES", cfg.SummaryMaxRunes)
	cfg.MaxBodyBytes = envInt64("MAX_BODY_BYTES", cfg.MaxBodyBytes)
	cfg.BatchWorkers = envInt("BATCH_WORKERS", cfg.BatchWorkers)
	cfg.MaxBatchSize = envInt("MAX_BATCH_SIZE", cfg.MaxBatchSize)
	cfg.StatsWindow = envDuration("STATS_WINDOW", cfg.StatsWindow)
	cfg.PDFFallbackPdftotext = envBool("PDF_FALLBACK_PDFTOTEXT", cfg.PDFFallbackPdftotext)
	cfg.LogLevel = envOr("LOG_LEVEL", cfg.LogLevel)

	cfg.applyDefaults()
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	d := defaults()
	if c.Port == "" {
		c.Port = d.Port
	}
	if c.UnknownPolicy == "" {
		c.UnknownPolicy = d.UnknownPolicy
	}
	if c.SummaryMaxRunes < 0 {
		c.SummaryMaxRunes = 0
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = d.MaxBodyBytes
	}
	if c.BatchWorkers <= 0 {
		c.BatchWorkers = d.BatchWorkers
	}
	if c.MaxBatchSize <= 0 {
		c.MaxBatchSize = d.MaxBatchSize
	}
	if c.StatsWindow <= 0 {
		c.StatsWindow = d.StatsWindow
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
}

// Policy returns the configured default Unknown Policy.
func (c Config) Policy() render.Policy {
	p, err := render.ParsePolicy(c.UnknownPolicy)
	if err != nil {
		return render.PolicySilent
	}
	return p
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("RICHDOC_API_KEY is required")
	}
	p, err := render.ParsePolicy(c.UnknownPolicy)
	if err != nil {
		return fmt.Errorf("UNKNOWN_POLICY: %w", err)
	}
	if p == render.PolicyDiagnostic && !c.AllowDiagnostic {
		return fmt.Errorf("UNKNOWN_POLICY=diagnostic requires ALLOW_DIAGNOSTIC=true")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
