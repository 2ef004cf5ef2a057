package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cliptrack/pkg/errors"

	"gopkg.in/yaml.v3"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CLIPTRACK_BACKEND",
		"CLIPTRACK_WRITE_MODE",
		"CLIPTRACK_PREVIEW_LIMIT",
		"CLIPTRACK_WATCH_INTERVAL",
		"CLIPTRACK_STATE_DIR",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cliptrack", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}
	return path
}

func TestLoad_Success(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `clipboard:
  backend: system
  write_mode: strict
  preview_limit: 500
watch:
  interval_seconds: 5
host:
  state_dir: /tmp/cliptrack-test
`)

	cfg, err := loadFromPath(path)
	if err != nil {
		t.Fatalf("loadFromPath() returned error: %v", err)
	}

	if cfg.Clipboard.Backend != BackendSystem {
		t.Errorf("Expected backend 'system', got '%s'", cfg.Clipboard.Backend)
	}
	if cfg.Clipboard.WriteMode != WriteModeStrict {
		t.Errorf("Expected write_mode 'strict', got '%s'", cfg.Clipboard.WriteMode)
	}
	if cfg.Clipboard.PreviewLimit != 500 {
		t.Errorf("Expected preview_limit 500, got %d", cfg.Clipboard.PreviewLimit)
	}
	if cfg.Watch.IntervalSeconds != 5 {
		t.Errorf("Expected interval_seconds 5, got %d", cfg.Watch.IntervalSeconds)
	}
	if cfg.Host.StateDir != "/tmp/cliptrack-test" {
		t.Errorf("Expected state_dir '/tmp/cliptrack-test', got '%s'", cfg.Host.StateDir)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_STATE_HOME", "/tmp/state")

	cfg, err := loadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("loadFromPath() returned error: %v", err)
	}

	if cfg.Clipboard.Backend != BackendAuto {
		t.Errorf("Expected default backend 'auto', got '%s'", cfg.Clipboard.Backend)
	}
	if cfg.Clipboard.WriteMode != WriteModeBestEffort {
		t.Errorf("Expected default write mode, got '%s'", cfg.Clipboard.WriteMode)
	}
	if cfg.Clipboard.PreviewLimit != DefaultPreviewLimit {
		t.Errorf("Expected preview limit %d, got %d", DefaultPreviewLimit, cfg.Clipboard.PreviewLimit)
	}
	if cfg.Watch.IntervalSeconds != DefaultWatchInterval {
		t.Errorf("Expected interval %d, got %d", DefaultWatchInterval, cfg.Watch.IntervalSeconds)
	}
	if cfg.Host.StateDir != filepath.Join("/tmp/state", "cliptrack") {
		t.Errorf("Expected state dir under XDG_STATE_HOME, got '%s'", cfg.Host.StateDir)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `clipboard:
  backend: shell
  preview_limit: 10
`)
	t.Setenv("CLIPTRACK_BACKEND", "NONE")
	t.Setenv("CLIPTRACK_PREVIEW_LIMIT", "42")
	t.Setenv("CLIPTRACK_WATCH_INTERVAL", "not-a-number")
	t.Setenv("CLIPTRACK_STATE_DIR", "/var/tmp/ct")

	cfg, err := loadFromPath(path)
	if err != nil {
		t.Fatalf("loadFromPath() returned error: %v", err)
	}

	if cfg.Clipboard.Backend != BackendNone {
		t.Errorf("Expected env backend 'none', got '%s'", cfg.Clipboard.Backend)
	}
	if cfg.Clipboard.PreviewLimit != 42 {
		t.Errorf("Expected env preview limit 42, got %d", cfg.Clipboard.PreviewLimit)
	}
	if cfg.Watch.IntervalSeconds != DefaultWatchInterval {
		t.Errorf("Expected invalid env interval to be ignored, got %d", cfg.Watch.IntervalSeconds)
	}
	if cfg.Host.StateDir != "/var/tmp/ct" {
		t.Errorf("Expected env state dir, got '%s'", cfg.Host.StateDir)
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{
			name:    "unknown backend",
			content: "clipboard:\n  backend: browser\n",
			wantMsg: "unknown clipboard backend",
		},
		{
			name:    "unknown write mode",
			content: "clipboard:\n  write_mode: yolo\n",
			wantMsg: "unknown write mode",
		},
		{
			name:    "negative preview limit",
			content: "clipboard:\n  preview_limit: -1\n",
			wantMsg: "preview_limit",
		},
		{
			name:    "negative interval",
			content: "watch:\n  interval_seconds: -3\n",
			wantMsg: "interval_seconds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := loadFromPath(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !errors.IsExitCode(err, errors.ExitCodeConfig) {
				t.Errorf("Expected config exit code, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Expected error containing %q, got %q", tt.wantMsg, err.Error())
			}
		})
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	_, err := loadFromPath(writeConfig(t, "clipboard: [unclosed"))
	if err == nil {
		t.Fatal("Expected parse error, got nil")
	}
	if !errors.IsExitCode(err, errors.ExitCodeConfig) {
		t.Errorf("Expected config exit code, got %v", err)
	}
}

func TestSaveToPath_RoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Clipboard.Backend = BackendSystem
	cfg.Host.StateDir = "/tmp/x"

	if err := saveToPath(path, cfg); err != nil {
		t.Fatalf("saveToPath() returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read saved config: %v", err)
	}
	var raw map[string]map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Saved config is not valid yaml: %v", err)
	}
	if raw["clipboard"]["backend"] != "system" {
		t.Errorf("Expected saved backend 'system', got %v", raw["clipboard"]["backend"])
	}

	loaded, err := loadFromPath(path)
	if err != nil {
		t.Fatalf("loadFromPath() returned error: %v", err)
	}
	if loaded.Clipboard.Backend != BackendSystem || loaded.Host.StateDir != "/tmp/x" {
		t.Errorf("Loaded config does not match saved config: %+v", loaded)
	}
}
