package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// Config defines console configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Session SessionConfig `yaml:"session"`
	Log     LogConfig     `yaml:"log"`
	UI      UIConfig      `yaml:"ui"`
}

type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	// Timeout bounds each request. Zero disables the bound.
	Timeout time.Duration `yaml:"timeout"`
}

type SessionConfig struct {
	Path string        `yaml:"path"`
	TTL  time.Duration `yaml:"ttl"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

type UIConfig struct {
	PageSize int `yaml:"page_size"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		API: APIConfig{
			BaseURL: "http://localhost:5000",
		},
		Session: SessionConfig{
			Path: "~/.quotedesk/session.db",
			TTL:  7 * 24 * time.Hour,
		},
		Log: LogConfig{
			Level: "info",
		},
		UI: UIConfig{
			PageSize: 5,
		},
	}
}

// Load reads configuration from the YAML file named by QUOTEDESK_CONFIG_PATH,
// if set, and environment variables.
func Load() (Config, error) {
	return LoadFile(os.Getenv("QUOTEDESK_CONFIG_PATH"))
}

// LoadFile is Load with an explicit config file. An empty path skips the file.
func LoadFile(path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if baseURL := os.Getenv("QUOTEDESK_API_URL"); baseURL != "" {
		cfg.API.BaseURL = baseURL
	}
	if timeoutStr := os.Getenv("QUOTEDESK_API_TIMEOUT"); timeoutStr != "" {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid QUOTEDESK_API_TIMEOUT: %w", err)
		}
		cfg.API.Timeout = timeout
	}
	if path := os.Getenv("QUOTEDESK_SESSION_PATH"); path != "" {
		cfg.Session.Path = path
	}
	if ttlStr := os.Getenv("QUOTEDESK_SESSION_TTL"); ttlStr != "" {
		ttl, err := time.ParseDuration(ttlStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid QUOTEDESK_SESSION_TTL: %w", err)
		}
		cfg.Session.TTL = ttl
	}
	if level := os.Getenv("QUOTEDESK_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if path := os.Getenv("QUOTEDESK_LOG_PATH"); path != "" {
		cfg.Log.Path = path
	}
	if sizeStr := os.Getenv("QUOTEDESK_PAGE_SIZE"); sizeStr != "" {
		size, err := strconv.Atoi(sizeStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid QUOTEDESK_PAGE_SIZE: %w", err)
		}
		cfg.UI.PageSize = size
	}

	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive")
	}
	if c.UI.PageSize <= 0 {
		return fmt.Errorf("ui.page_size must be positive")
	}

	var err error
	if c.Session.Path, err = expand(c.Session.Path); err != nil {
		return err
	}
	if c.Log.Path, err = expand(c.Log.Path); err != nil {
		return err
	}
	return nil
}

func expand(path string) (string, error) {
	if path == "" || path == ":memory:" {
		return path, nil
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("expand path %q: %w", path, err)
	}
	return expanded, nil
}

func loadFromFile(path string, cfg *Config) error {
	path, err := expand(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
