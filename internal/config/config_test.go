package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.Panel.StartCollapsed)
	assert.Equal(t, "and", cfg.Panel.QueryMode)
	assert.Equal(t, 150, cfg.Observer.DebounceMs)
	assert.Equal(t, 800, cfg.Observer.ReadyPollMs)
	assert.Equal(t, 30000, cfg.Observer.ReadyTimeoutMs)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Observer, cfg.Observer)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"credentials": "/tmp/creds.json",
		"observer": {"debounce_ms": 50, "ready_poll_ms": 100, "ready_timeout_ms": 5000},
		"panel": {"start_collapsed": true, "query_mode": "or"}
	}`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/creds.json", cfg.Credentials)
	assert.True(t, cfg.Panel.StartCollapsed)
	assert.Equal(t, "or", cfg.Panel.QueryMode)
	assert.Equal(t, 50*time.Millisecond, cfg.Debounce())
	assert.Equal(t, 100*time.Millisecond, cfg.ReadyPoll())
	assert.Equal(t, 5*time.Second, cfg.ReadyTimeout())
}

func TestLoadConfig_MalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("LABELPANEL_CREDENTIALS", "/env/creds.json")
	t.Setenv("LABELPANEL_TOKEN", "/env/token.json")
	t.Setenv("LABELPANEL_STORE", "/env/store.db")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "/env/creds.json", cfg.Credentials)
	assert.Equal(t, "/env/token.json", cfg.Token)
	assert.Equal(t, "/env/store.db", cfg.StorePath)
}

func TestConfig_DurationsFallBack(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, 150*time.Millisecond, cfg.Debounce())
	assert.Equal(t, 800*time.Millisecond, cfg.ReadyPoll())
	assert.Equal(t, 30*time.Second, cfg.ReadyTimeout())
}

func TestSaveConfig_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := DefaultConfig()
	cfg.Credentials = "/tmp/creds.json"
	require.NoError(t, cfg.SaveConfig(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Credentials, loaded.Credentials)
	assert.Equal(t, cfg.Observer, loaded.Observer)
}

func TestDefaultConfigPath_EnvOverride(t *testing.T) {
	t.Setenv("LABELPANEL_CONFIG", "/custom/config.json")
	assert.Equal(t, "/custom/config.json", DefaultConfigPath())
}
