package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

// Config holds the application configuration
type Config struct {
	Port               string        `yaml:"port"`
	GinMode            string        `yaml:"gin_mode"`
	SubmitDelay        time.Duration `yaml:"submit_delay"`
	ToastTTL           time.Duration `yaml:"toast_ttl"`
	SessionTTL         time.Duration `yaml:"session_ttl"`
	SessionSweep       time.Duration `yaml:"session_sweep"`
	MaxAttachmentBytes int64         `yaml:"max_attachment_bytes"`
	MaxUploadBytes     int64         `yaml:"max_upload_bytes"`
	CORSOrigins        []string      `yaml:"cors_origins"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Port:               "8080",
		GinMode:            "debug",
		SubmitDelay:        1500 * time.Millisecond,
		ToastTTL:           3 * time.Second,
		SessionTTL:         30 * time.Minute,
		SessionSweep:       time.Minute,
		MaxAttachmentBytes: 10 << 20,
		MaxUploadBytes:     32 << 20,
		CORSOrigins:        []string{"*"},
	}
}

// Load builds the config from defaults, then CONFIG_FILE (if set), then
// individual environment variables. Call godotenv.Load before this.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := LoadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile overlays the YAML file at path onto cfg.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config file: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		cfg.GinMode = v
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"SUBMIT_DELAY", &cfg.SubmitDelay},
		{"TOAST_TTL", &cfg.ToastTTL},
		{"SESSION_TTL", &cfg.SessionTTL},
		{"SESSION_SWEEP", &cfg.SessionSweep},
	}
	for _, d := range durations {
		v := os.Getenv(d.key)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", d.key, err)
		}
		*d.dst = parsed
	}

	sizes := []struct {
		key string
		dst *int64
	}{
		{"MAX_ATTACHMENT_BYTES", &cfg.MaxAttachmentBytes},
		{"MAX_UPLOAD_BYTES", &cfg.MaxUploadBytes},
	}
	for _, sz := range sizes {
		v := os.Getenv(sz.key)
		if v == "" {
			continue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", sz.key, err)
		}
		*sz.dst = n
	}

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.CORSOrigins = origins
	}
	return nil
}

// Validate validates the configuration
func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if c.SubmitDelay < 0 {
		return fmt.Errorf("submit delay cannot be negative")
	}
	if c.ToastTTL <= 0 {
		return fmt.Errorf("toast ttl must be positive")
	}
	if c.SessionTTL <= 0 || c.SessionSweep <= 0 {
		return fmt.Errorf("session ttl and sweep interval must be positive")
	}
	if c.MaxAttachmentBytes <= 0 {
		return fmt.Errorf("max attachment bytes must be positive")
	}
	if c.MaxUploadBytes < c.MaxAttachmentBytes {
		return fmt.Errorf("max upload bytes must be at least max attachment bytes")
	}
	return nil
}
