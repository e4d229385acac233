package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	unsetEnvWithCleanup(t, "SERVER_PORT")
	unsetEnvWithCleanup(t, "BIGQUERY_DATASET_ID")
	unsetEnvWithCleanup(t, "GEMINI_MODEL_NAME")
	unsetEnvWithCleanup(t, "AUDIT_LOG_CAPACITY")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.ServerPort != "8000" {
		t.Errorf("expected default ServerPort 8000, got %q", cfg.ServerPort)
	}
	if cfg.DatasetID != "bank_voice_assistant_dataset" {
		t.Errorf("expected default DatasetID, got %q", cfg.DatasetID)
	}
	if cfg.GeminiModelName != "gemini-2.5-flash-live-preview" {
		t.Errorf("expected default GeminiModelName, got %q", cfg.GeminiModelName)
	}
	if cfg.AuditLogCapacity != 1000 {
		t.Errorf("expected default AuditLogCapacity 1000, got %d", cfg.AuditLogCapacity)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	setEnvWithCleanup(t, "SERVER_PORT", "9100")
	setEnvWithCleanup(t, "GOOGLE_CLOUD_PROJECT", "  my-project  ")
	setEnvWithCleanup(t, "GEMINI_MODEL_NAME", "gemini-2.0-flash-live-001")
	setEnvWithCleanup(t, "DISABLE_VAD", "true")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.ServerPort != "9100" {
		t.Errorf("expected ServerPort 9100, got %q", cfg.ServerPort)
	}
	if cfg.ProjectID != "my-project" {
		t.Errorf("expected trimmed ProjectID, got %q", cfg.ProjectID)
	}
	if cfg.GeminiModelName != "gemini-2.0-flash-live-001" {
		t.Errorf("expected overridden GeminiModelName, got %q", cfg.GeminiModelName)
	}
	if !cfg.DisableVAD {
		t.Error("expected DisableVAD to be true")
	}
}

func TestLoadConfig_CoercesNonPositiveIntervals(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	setEnvWithCleanup(t, "AUDIT_LOG_CAPACITY", "-5")
	setEnvWithCleanup(t, "AUDIT_FLUSH_INTERVAL_MINUTES", "0")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.AuditLogCapacity != 1000 {
		t.Errorf("expected AuditLogCapacity coerced to 1000, got %d", cfg.AuditLogCapacity)
	}
	if cfg.AuditFlushIntervalMin != 5 {
		t.Errorf("expected AuditFlushIntervalMin coerced to 5, got %d", cfg.AuditFlushIntervalMin)
	}
}

func setEnvWithCleanup(t *testing.T, key string, value string) {
	t.Helper()
	prev, hadPrev := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set env %s: %v", key, err)
	}
	t.Cleanup(func() {
		if hadPrev {
			_ = os.Setenv(key, prev)
			return
		}
		_ = os.Unsetenv(key)
	})
}

func unsetEnvWithCleanup(t *testing.T, key string) {
	t.Helper()
	prev, hadPrev := os.LookupEnv(key)
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("failed to unset env %s: %v", key, err)
	}
	t.Cleanup(func() {
		if hadPrev {
			_ = os.Setenv(key, prev)
		}
	})
}
