package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Indicators.RSIPeriod != 14 || cfg.Indicators.MACDFast != 12 ||
		cfg.Indicators.MACDSlow != 26 || cfg.Indicators.MACDSignal != 9 {
		t.Errorf("indicator defaults = %+v", cfg.Indicators)
	}
	if cfg.Indicators.Oversold != 30 || cfg.Indicators.Overbought != 70 {
		t.Errorf("threshold defaults = %.0f/%.0f", cfg.Indicators.Oversold, cfg.Indicators.Overbought)
	}
	if cfg.Schedule.ScanCron != "0 * * * *" {
		t.Errorf("scan cron default = %q", cfg.Schedule.ScanCron)
	}
	if cfg.Database.RetentionDays != 30 {
		t.Errorf("retention default = %d", cfg.Database.RetentionDays)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
telegram:
  bot_token: file-token
indicators:
  rsi_period: 21
database:
  sqlite_path: /tmp/file.db
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("SQLITE_PATH", "/tmp/env.db")
	t.Setenv("RETENTION_DAYS", "7")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Telegram.BotToken != "env-token" {
		t.Errorf("bot token = %q, env must win over the file", cfg.Telegram.BotToken)
	}
	if cfg.Database.SQLitePath != "/tmp/env.db" {
		t.Errorf("sqlite path = %q", cfg.Database.SQLitePath)
	}
	if cfg.Database.RetentionDays != 7 {
		t.Errorf("retention = %d, want 7 from env", cfg.Database.RetentionDays)
	}
	if cfg.Indicators.RSIPeriod != 21 {
		t.Errorf("rsi period = %d, want 21 from file", cfg.Indicators.RSIPeriod)
	}
	if cfg.Indicators.MACDSlow != 26 {
		t.Errorf("macd slow = %d, defaults must still fill gaps", cfg.Indicators.MACDSlow)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		wantOK bool
	}{
		{"defaults", func(_ *Config) {}, true},
		{"rsi too short", func(c *Config) { c.Indicators.RSIPeriod = 1 }, false},
		{"fast not below slow", func(c *Config) { c.Indicators.MACDFast = 26 }, false},
		{"zero signal period", func(c *Config) { c.Indicators.MACDSignal = -1 }, false},
		{"inverted thresholds", func(c *Config) { c.Indicators.Oversold = 80 }, false},
		{"negative retention", func(c *Config) { c.Database.RetentionDays = -1 }, false},
		{"zero history", func(c *Config) { c.Market.HistoryDays = -5 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); (err == nil) != tt.wantOK {
				t.Errorf("Validate() = %v, wantOK %v", err, tt.wantOK)
			}
		})
	}
}
