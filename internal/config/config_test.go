package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, "https://generativelanguage.googleapis.com/v1beta", cfg.Gemini.BaseURL)
	assert.Equal(t, 2*time.Minute, cfg.Gemini.Timeout)
	assert.NotEmpty(t, cfg.DataDir)
}

func TestLoadFileAndFillDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "gemini:\n  api_key: file-key\n  model: gemini-2.0-pro\ndata_dir: /tmp/bmc-test\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-2.0-pro", cfg.Gemini.Model)
	// Values the file left out come from defaults.
	assert.Equal(t, 2*time.Minute, cfg.Gemini.Timeout)
	assert.Equal(t, 65536, cfg.Gemini.MaxOutputTokens)
	assert.Equal(t, "/tmp/bmc-test", cfg.DataDir)
	assert.Equal(t, filepath.Join("/tmp/bmc-test", "history.db"), cfg.HistoryDBPath())
}

func TestEnvOverridesWin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gemini:\n  api_key: file-key\n"), 0o644))

	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("BMC_MODEL", "gemini-env")
	t.Setenv("BMC_DATA_DIR", "/tmp/bmc-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-env", cfg.Gemini.Model)
	assert.Equal(t, "/tmp/bmc-env", cfg.DataDir)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":::not yaml"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
