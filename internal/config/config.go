// Package config loads the bmc configuration from an optional yaml file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all bmc configuration.
type Config struct {
	// Gemini configuration
	Gemini GeminiConfig `yaml:"gemini"`

	// DataDir is where the history database lives.
	DataDir string `yaml:"data_dir"`
}

// GeminiConfig configures the analysis service client.
type GeminiConfig struct {
	APIKey          string        `yaml:"api_key"`
	Model           string        `yaml:"model"`
	BaseURL         string        `yaml:"base_url"`
	Timeout         time.Duration `yaml:"timeout"`
	MaxOutputTokens int           `yaml:"max_output_tokens"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Gemini: GeminiConfig{
			Model:           "gemini-2.5-flash",
			BaseURL:         "https://generativelanguage.googleapis.com/v1beta",
			Timeout:         2 * time.Minute,
			MaxOutputTokens: 65536,
		},
		DataDir: defaultDataDir(),
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bmc"
	}
	return filepath.Join(home, ".bmc")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(defaultDataDir(), "config.yaml")
}

// Load reads the config file at path (if it exists), fills in defaults, and
// applies environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults + env only.
		case err != nil:
			return cfg, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.fillDefaults()
	return cfg, nil
}

// applyEnvOverrides lets the environment win over the file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.Gemini.APIKey = v
	}
	if v := os.Getenv("BMC_MODEL"); v != "" {
		c.Gemini.Model = v
	}
	if v := os.Getenv("BMC_BASE_URL"); v != "" {
		c.Gemini.BaseURL = v
	}
	if v := os.Getenv("BMC_DATA_DIR"); v != "" {
		c.DataDir = v
	}
}

// fillDefaults restores required values a sparse config file may have
// cleared.
func (c *Config) fillDefaults() {
	def := Default()
	if c.Gemini.Model == "" {
		c.Gemini.Model = def.Gemini.Model
	}
	if c.Gemini.BaseURL == "" {
		c.Gemini.BaseURL = def.Gemini.BaseURL
	}
	if c.Gemini.Timeout <= 0 {
		c.Gemini.Timeout = def.Gemini.Timeout
	}
	if c.Gemini.MaxOutputTokens <= 0 {
		c.Gemini.MaxOutputTokens = def.Gemini.MaxOutputTokens
	}
	if c.DataDir == "" {
		c.DataDir = def.DataDir
	}
}

// HistoryDBPath returns the location of the history database.
func (c Config) HistoryDBPath() string {
	return filepath.Join(c.DataDir, "history.db")
}
