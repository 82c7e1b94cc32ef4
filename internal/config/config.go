// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration.
type Config struct {
	Rep     RepConfig     `toml:"rep"`
	Storage StorageConfig `toml:"storage"`
	Server  ServerConfig  `toml:"server"`
	LLM     LLMConfig     `toml:"llm"`
	Report  ReportConfig  `toml:"report"`
}

// RepConfig identifies the rep the CLI acts as.
type RepConfig struct {
	ID string `toml:"id"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr        string `toml:"addr"`         // e.g., ":8080"
	PrewarmCron string `toml:"prewarm_cron"` // cron spec for report cache prewarm, empty disables
	Debug       bool   `toml:"debug"`        // development logging
}

// LLMConfig holds LLM provider settings for insight generation.
type LLMConfig struct {
	Provider string `toml:"provider"` // "openai", "ollama"
	Model    string `toml:"model"`    // e.g., "gpt-4o-mini"
	BaseURL  string `toml:"base_url"` // e.g., "http://localhost:11434"
}

// ReportConfig holds daily report settings.
type ReportConfig struct {
	CacheTTLSeconds int `toml:"cache_ttl_seconds"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		Server: ServerConfig{
			Addr:        ":8080",
			PrewarmCron: "0 6 * * *",
		},
		LLM: LLMConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
		},
		Report: ReportConfig{
			CacheTTLSeconds: 30,
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "roteiro.db"
	}
	return filepath.Join(home, ".local", "share", "roteiro", "roteiro.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "roteiro", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ROTEIRO_REP"); v != "" {
		cfg.Rep.ID = v
	}
	if v := os.Getenv("ROTEIRO_DB"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("ROTEIRO_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("ROTEIRO_LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("ROTEIRO_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("ROTEIRO_LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Storage.DBPath == "" {
		return errors.New("db_path cannot be empty")
	}
	if c.Server.Addr == "" {
		return errors.New("server addr cannot be empty")
	}
	if c.Report.CacheTTLSeconds < 0 {
		return errors.New("cache_ttl_seconds cannot be negative")
	}
	return nil
}

// EnsureStorageDir creates the directory holding the database file.
func (c *Config) EnsureStorageDir() error {
	dir := filepath.Dir(c.Storage.DBPath)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
