package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"CONFIG_FILE", "PORT", "GIN_MODE", "SUBMIT_DELAY", "TOAST_TTL",
		"SESSION_TTL", "SESSION_SWEEP", "MAX_ATTACHMENT_BYTES", "MAX_UPLOAD_BYTES", "CORS_ORIGINS"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.SubmitDelay != 1500*time.Millisecond {
		t.Errorf("expected 1.5s submit delay, got %v", cfg.SubmitDelay)
	}
	if cfg.ToastTTL != 3*time.Second {
		t.Errorf("expected 3s toast ttl, got %v", cfg.ToastTTL)
	}
	if cfg.MaxUploadBytes != 32<<20 {
		t.Errorf("expected 32MiB upload cap, got %d", cfg.MaxUploadBytes)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %q", cfg.Port)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "port: \"9000\"\nsubmit_delay: 2s\ntoast_ttl: 5s\ncors_origins:\n  - http://localhost:3000\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SUBMIT_DELAY", "250ms")
	t.Setenv("MAX_ATTACHMENT_BYTES", "1024")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != "9000" {
		t.Errorf("expected port from file, got %q", cfg.Port)
	}
	if cfg.ToastTTL != 5*time.Second {
		t.Errorf("expected toast ttl from file, got %v", cfg.ToastTTL)
	}
	if cfg.SubmitDelay != 250*time.Millisecond {
		t.Errorf("expected env submit delay to win, got %v", cfg.SubmitDelay)
	}
	if cfg.MaxAttachmentBytes != 1024 {
		t.Errorf("expected 1024 max bytes, got %d", cfg.MaxAttachmentBytes)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"http://localhost:3000"}) {
		t.Errorf("unexpected origins: %v", cfg.CORSOrigins)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("bad duration", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TOAST_TTL", "soon")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unparsable duration")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for missing config file")
		}
	})

	t.Run("upload cap below attachment cap", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("MAX_ATTACHMENT_BYTES", "2048")
		t.Setenv("MAX_UPLOAD_BYTES", "1024")
		if _, err := Load(); err == nil {
			t.Fatalf("expected validation error")
		}
	})

	t.Run("non-positive toast ttl", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TOAST_TTL", "0s")
		if _, err := Load(); err == nil {
			t.Fatalf("expected validation error")
		}
	})
}
