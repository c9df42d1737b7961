package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Backend struct {
		BaseURL  string `yaml:"base_url"`
		Username string `yaml:"username"`
	} `yaml:"backend"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Cache struct {
		DefaultTTLMinutes int `yaml:"default_ttl_minutes"`
	} `yaml:"cache"`
	Session struct {
		StateFile string `yaml:"state_file"`
	} `yaml:"session"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("HEALTHPULSE_BASE_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("HEALTHPULSE_USERNAME"); v != "" {
		cfg.Backend.Username = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("STATE_FILE"); v != "" {
		cfg.Session.StateFile = v
	}

	// Defaults
	if cfg.Schedule.RefreshCron == "" {
		// every 30 minutes during waking hours
		cfg.Schedule.RefreshCron = "0 */30 7-23 * * *"
	}
	if cfg.Cache.DefaultTTLMinutes == 0 {
		cfg.Cache.DefaultTTLMinutes = 5
	}
	if cfg.Session.StateFile == "" {
		cfg.Session.StateFile = "data/session_state.json"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/healthpulse.db"
	}
	if cfg.Backend.Username == "" {
		cfg.Backend.Username = "default"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	if c.Cache.DefaultTTLMinutes < 0 {
		return fmt.Errorf("cache.default_ttl_minutes must not be negative")
	}
	return nil
}

// DefaultTTL returns the configured default cache TTL as a duration.
func (c *Config) DefaultTTL() time.Duration {
	return time.Duration(c.Cache.DefaultTTLMinutes) * time.Minute
}
