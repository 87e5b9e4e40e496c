package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// PanelConfig defines panel behavior defaults
type PanelConfig struct {
	// StartCollapsed controls whether the panel opens collapsed
	StartCollapsed bool `json:"start_collapsed"`

	// QueryMode is the initial multi-select combinator: "and" or "or"
	QueryMode string `json:"query_mode"`
}

// ObserverConfig defines sidebar observation tuning
type ObserverConfig struct {
	// DebounceMs is the mutation settle window in milliseconds
	DebounceMs int `json:"debounce_ms"`

	// ReadyPollMs is the readiness probe interval in milliseconds
	ReadyPollMs int `json:"ready_poll_ms"`

	// ReadyTimeoutMs caps how long to wait for the host page before
	// proceeding in degraded mode
	ReadyTimeoutMs int `json:"ready_timeout_ms"`
}

// Config holds all configuration for the label panel
type Config struct {
	Credentials string `json:"credentials"`
	Token       string `json:"token"`

	// StorePath is the override database location (empty = default)
	StorePath string `json:"store_path"`

	Panel    PanelConfig    `json:"panel"`
	Observer ObserverConfig `json:"observer"`

	// Logging
	LogFile string `json:"log_file"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Panel: PanelConfig{
			StartCollapsed: false,
			QueryMode:      "and",
		},
		Observer: ObserverConfig{
			DebounceMs:     150,
			ReadyPollMs:    800,
			ReadyTimeoutMs: 30000,
		},
		LogFile: "",
	}
}

// LoadConfig loads configuration from file, then applies environment
// overrides (LABELPANEL_CREDENTIALS, LABELPANEL_TOKEN, LABELPANEL_STORE)
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		}
	}

	if v := os.Getenv("LABELPANEL_CREDENTIALS"); v != "" {
		cfg.Credentials = v
	}
	if v := os.Getenv("LABELPANEL_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("LABELPANEL_STORE"); v != "" {
		cfg.StorePath = v
	}

	return cfg, nil
}

// DefaultConfigPath returns the default configuration file path
func DefaultConfigPath() string {
	if v := os.Getenv("LABELPANEL_CONFIG"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "labelpanel", "config.json")
}

// DefaultCredentialPaths returns the default paths for credentials and token
func DefaultCredentialPaths() (string, string) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", ""
	}

	configDir := filepath.Join(home, ".config", "labelpanel")
	credentialsPath := filepath.Join(configDir, "credentials.json")
	tokenPath := filepath.Join(configDir, "token.json")

	return credentialsPath, tokenPath
}

// DefaultStoreDir returns the default override database directory
func DefaultStoreDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "labelpanel", "store")
}

// DefaultLogDir returns the default log directory path
func DefaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "labelpanel")
}

// SaveConfig saves the configuration to a file
func (c *Config) SaveConfig(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Debounce returns the configured mutation settle window
func (c *Config) Debounce() time.Duration {
	if c.Observer.DebounceMs > 0 {
		return time.Duration(c.Observer.DebounceMs) * time.Millisecond
	}
	return 150 * time.Millisecond
}

// ReadyPoll returns the readiness probe interval
func (c *Config) ReadyPoll() time.Duration {
	if c.Observer.ReadyPollMs > 0 {
		return time.Duration(c.Observer.ReadyPollMs) * time.Millisecond
	}
	return 800 * time.Millisecond
}

// ReadyTimeout returns the readiness wait cap
func (c *Config) ReadyTimeout() time.Duration {
	if c.Observer.ReadyTimeoutMs > 0 {
		return time.Duration(c.Observer.ReadyTimeoutMs) * time.Millisecond
	}
	return 30 * time.Second
}
