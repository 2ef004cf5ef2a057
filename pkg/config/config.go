package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cliptrack/pkg/errors"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPreviewLimit  = 2000
	DefaultWatchInterval = 1
)

// Backend modes accepted by clipboard.backend.
const (
	BackendAuto   = "auto"
	BackendShell  = "shell"
	BackendSystem = "system"
	BackendNone   = "none"
)

// Write modes accepted by clipboard.write_mode.
const (
	WriteModeBestEffort = "best-effort"
	WriteModeStrict     = "strict"
)

// Config holds the complete configuration
type Config struct {
	Clipboard ClipboardConfig `yaml:"clipboard"`
	Watch     WatchConfig     `yaml:"watch"`
	Host      HostConfig      `yaml:"host"`
}

type ClipboardConfig struct {
	Backend      string `yaml:"backend"`
	WriteMode    string `yaml:"write_mode"`
	PreviewLimit int    `yaml:"preview_limit"`
}

type WatchConfig struct {
	IntervalSeconds int `yaml:"interval_seconds"`
}

type HostConfig struct {
	StateDir string `yaml:"state_dir"`
}

// Load reads the configuration file, applies environment overrides and
// defaults, and validates the result.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, errors.NewWithError(errors.ExitCodeConfig, "failed to get config path", err)
	}
	return loadFromPath(configPath)
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "cliptrack", "config.yaml"), nil
}

// DefaultStateDir is where the host runtime marker and pending capture
// suppressions live when host.state_dir is unset.
func DefaultStateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "cliptrack")
	}
	if cacheDir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(cacheDir, "cliptrack")
	}
	return filepath.Join(os.TempDir(), "cliptrack")
}

// Default returns a configuration with every field set to its default.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Save writes the configuration to the default config path
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}
	return saveToPath(configPath, cfg)
}

func saveToPath(configPath string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return errors.NewWithError(errors.ExitCodeFileOperation, "failed to create config directory", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.NewWithError(errors.ExitCodeConfig, "failed to marshal config", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return errors.NewWithError(errors.ExitCodeFileOperation, "failed to write config file", err)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func loadFromPath(configPath string) (*Config, error) {
	cfg := &Config{}

	if err := loadConfigFile(configPath, cfg); err != nil {
		return nil, err
	}

	applyEnvironmentOverrides(cfg)
	applyDefaults(cfg)

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadConfigFile reads and parses the config file from the given path
func loadConfigFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		// No file: defaults and env vars only
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.NewWithError(errors.ExitCodeFileOperation, "failed to read config file", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.NewWithError(errors.ExitCodeConfig, "failed to parse config file", err)
	}

	return nil
}

// applyEnvironmentOverrides lets CLIPTRACK_* variables win over the file.
func applyEnvironmentOverrides(cfg *Config) {
	cfg.Clipboard.Backend = getEnv("CLIPTRACK_BACKEND", cfg.Clipboard.Backend)
	cfg.Clipboard.WriteMode = getEnv("CLIPTRACK_WRITE_MODE", cfg.Clipboard.WriteMode)
	cfg.Clipboard.PreviewLimit = getEnvInt("CLIPTRACK_PREVIEW_LIMIT", cfg.Clipboard.PreviewLimit)
	cfg.Watch.IntervalSeconds = getEnvInt("CLIPTRACK_WATCH_INTERVAL", cfg.Watch.IntervalSeconds)
	cfg.Host.StateDir = getEnv("CLIPTRACK_STATE_DIR", cfg.Host.StateDir)
}

func applyDefaults(cfg *Config) {
	cfg.Clipboard.Backend = strings.ToLower(strings.TrimSpace(cfg.Clipboard.Backend))
	if cfg.Clipboard.Backend == "" {
		cfg.Clipboard.Backend = BackendAuto
	}
	cfg.Clipboard.WriteMode = strings.ToLower(strings.TrimSpace(cfg.Clipboard.WriteMode))
	if cfg.Clipboard.WriteMode == "" {
		cfg.Clipboard.WriteMode = WriteModeBestEffort
	}
	if cfg.Clipboard.PreviewLimit == 0 {
		cfg.Clipboard.PreviewLimit = DefaultPreviewLimit
	}
	if cfg.Watch.IntervalSeconds == 0 {
		cfg.Watch.IntervalSeconds = DefaultWatchInterval
	}
	if cfg.Host.StateDir == "" {
		cfg.Host.StateDir = DefaultStateDir()
	}
}

// ValidBackends lists the accepted clipboard.backend values
func ValidBackends() []string {
	return []string{BackendAuto, BackendShell, BackendSystem, BackendNone}
}

func validateConfig(cfg *Config) error {
	switch cfg.Clipboard.Backend {
	case BackendAuto, BackendShell, BackendSystem, BackendNone:
	default:
		return errors.ConfigError(fmt.Sprintf("unknown clipboard backend %q (expected one of %s)",
			cfg.Clipboard.Backend, strings.Join(ValidBackends(), ", ")))
	}
	switch cfg.Clipboard.WriteMode {
	case WriteModeBestEffort, WriteModeStrict:
	default:
		return errors.ConfigError(fmt.Sprintf("unknown write mode %q (expected %s or %s)",
			cfg.Clipboard.WriteMode, WriteModeBestEffort, WriteModeStrict))
	}
	if cfg.Clipboard.PreviewLimit < 0 {
		return errors.ConfigError("clipboard preview_limit must be positive")
	}
	if cfg.Watch.IntervalSeconds < 0 {
		return errors.ConfigError("watch interval_seconds must be positive")
	}
	return nil
}
