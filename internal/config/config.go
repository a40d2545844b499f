package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Indicators struct {
		RSIPeriod  int     `yaml:"rsi_period"`
		MACDFast   int     `yaml:"macd_fast"`
		MACDSlow   int     `yaml:"macd_slow"`
		MACDSignal int     `yaml:"macd_signal"`
		Oversold   float64 `yaml:"oversold"`
		Overbought float64 `yaml:"overbought"`
	} `yaml:"indicators"`
	Schedule struct {
		ScanCron    string `yaml:"scan_cron"`
		CleanupCron string `yaml:"cleanup_cron"`
		HealthCron  string `yaml:"health_cron"`
	} `yaml:"schedule"`
	Symbols struct {
		PortfolioFile string `yaml:"portfolio_file"`
		ScanFile      string `yaml:"scan_file"`
	} `yaml:"symbols"`
	Database struct {
		SQLitePath    string `yaml:"sqlite_path"`
		RetentionDays int    `yaml:"retention_days"`
	} `yaml:"database"`
	Market struct {
		MIC         string `yaml:"mic"`
		HistoryDays int    `yaml:"history_days"`
	} `yaml:"market"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is fine: defaults apply.
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
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_SCAN"); v != "" {
		cfg.Schedule.ScanCron = v
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
	if v := os.Getenv("RETENTION_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			cfg.Database.RetentionDays = days
		}
	}

	// Defaults
	if cfg.Indicators.RSIPeriod == 0 {
		cfg.Indicators.RSIPeriod = 14
	}
	if cfg.Indicators.MACDFast == 0 {
		cfg.Indicators.MACDFast = 12
	}
	if cfg.Indicators.MACDSlow == 0 {
		cfg.Indicators.MACDSlow = 26
	}
	if cfg.Indicators.MACDSignal == 0 {
		cfg.Indicators.MACDSignal = 9
	}
	if cfg.Indicators.Oversold == 0 {
		cfg.Indicators.Oversold = 30
	}
	if cfg.Indicators.Overbought == 0 {
		cfg.Indicators.Overbought = 70
	}
	if cfg.Schedule.ScanCron == "" {
		cfg.Schedule.ScanCron = "0 * * * *"
	}
	if cfg.Schedule.CleanupCron == "" {
		cfg.Schedule.CleanupCron = "0 2 * * *"
	}
	if cfg.Schedule.HealthCron == "" {
		cfg.Schedule.HealthCron = "0 */6 * * *"
	}
	if cfg.Symbols.PortfolioFile == "" {
		cfg.Symbols.PortfolioFile = "my_portfolio.txt"
	}
	if cfg.Symbols.ScanFile == "" {
		cfg.Symbols.ScanFile = "scan_list.txt"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/signals.db"
	}
	if cfg.Database.RetentionDays == 0 {
		cfg.Database.RetentionDays = 30
	}
	if cfg.Market.MIC == "" {
		cfg.Market.MIC = "xnys"
	}
	if cfg.Market.HistoryDays == 0 {
		cfg.Market.HistoryDays = 365
	}
	if cfg.Metrics.Addr == "" {
		cfg.Metrics.Addr = ":9090"
	}

	return cfg, nil
}

// Validate checks the configuration. Errors here are fatal at startup and
// can never occur mid-run.
func (c *Config) Validate() error {
	if c.Indicators.RSIPeriod < 2 {
		return fmt.Errorf("indicators.rsi_period must be >= 2")
	}
	if c.Indicators.MACDFast >= c.Indicators.MACDSlow {
		return fmt.Errorf("indicators.macd_fast must be shorter than macd_slow")
	}
	if c.Indicators.MACDSignal <= 0 {
		return fmt.Errorf("indicators.macd_signal must be positive")
	}
	if c.Indicators.Oversold >= c.Indicators.Overbought {
		return fmt.Errorf("indicators.oversold must be below overbought")
	}
	if c.Database.RetentionDays <= 0 {
		return fmt.Errorf("database.retention_days must be positive")
	}
	if c.Market.HistoryDays <= 0 {
		return fmt.Errorf("market.history_days must be positive")
	}
	return nil
}
