package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		BaseURL  string `yaml:"base_url"` // custom REST provider; empty selects Yahoo
		APIKey   string `yaml:"api_key"`
		Symbol   string `yaml:"symbol"`
		Period   string `yaml:"period"`
		Interval string `yaml:"interval"`
	} `yaml:"data_source"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
		RunOnStart  bool   `yaml:"run_on_start"`
	} `yaml:"schedule"`
	Server struct {
		Addr         string   `yaml:"addr"`
		AllowOrigins []string `yaml:"allow_origins"`
	} `yaml:"server"`
	Chart struct {
		OverlayWindow int `yaml:"overlay_window"` // moving-average overlay, 0 disables
	} `yaml:"chart"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"` // empty disables refresh history
	} `yaml:"database"`
	Logging struct {
		Level         string `yaml:"level"`
		FilePath      string `yaml:"file_path"` // empty logs to console only
		RotationSize  int    `yaml:"rotation_size"`
		MaxBackups    int    `yaml:"max_backups"`
		ConsoleOutput bool   `yaml:"console_output"`
	} `yaml:"logging"`
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
	if v := os.Getenv("PROVIDER_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("PROVIDER_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("TICKER_SYMBOL"); v != "" {
		cfg.DataSource.Symbol = v
	}
	if v := os.Getenv("TICKER_PERIOD"); v != "" {
		cfg.DataSource.Period = v
	}
	if v := os.Getenv("TICKER_INTERVAL"); v != "" {
		cfg.DataSource.Interval = v
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("RUN_ON_START"); v != "" {
		cfg.Schedule.RunOnStart = v == "true" || v == "1"
	}
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("ALLOW_ORIGINS"); v != "" {
		cfg.Server.AllowOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("OVERLAY_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Chart.OverlayWindow = n
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.DataSource.Symbol == "" {
		cfg.DataSource.Symbol = "AAPL"
	}
	if cfg.DataSource.Period == "" {
		cfg.DataSource.Period = "1d"
	}
	if cfg.DataSource.Interval == "" {
		cfg.DataSource.Interval = "1m"
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "@every 1m"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8050"
	}
	if len(cfg.Server.AllowOrigins) == 0 {
		cfg.Server.AllowOrigins = []string{"*"}
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.RotationSize == 0 {
		cfg.Logging.RotationSize = 10
	}
	if cfg.Logging.MaxBackups == 0 {
		cfg.Logging.MaxBackups = 5
	}
	if cfg.Logging.FilePath == "" {
		cfg.Logging.ConsoleOutput = true
	}

	return cfg, nil
}

// Validate checks that all required fields are set and well-formed.
func (c *Config) Validate() error {
	if c.DataSource.Symbol == "" {
		return fmt.Errorf("data_source.symbol is required")
	}
	if c.DataSource.Period == "" {
		return fmt.Errorf("data_source.period is required")
	}
	if c.DataSource.Interval == "" {
		return fmt.Errorf("data_source.interval is required")
	}
	if c.Schedule.RefreshCron == "" {
		return fmt.Errorf("schedule.refresh_cron is required")
	}
	if c.Chart.OverlayWindow < 0 {
		return fmt.Errorf("chart.overlay_window must not be negative")
	}
	return nil
}
