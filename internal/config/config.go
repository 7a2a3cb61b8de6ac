package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Ticker    string `yaml:"ticker"`
	StartDate string `yaml:"start_date"` // YYYY-MM-DD
	EndDate   string `yaml:"end_date"`   // YYYY-MM-DD or "+N" days after start

	Features struct {
		SMAWindow  int `yaml:"sma_window"`
		EMAWindow  int `yaml:"ema_window"`
		MACDFast   int `yaml:"macd_fast"`
		MACDSlow   int `yaml:"macd_slow"`
		MACDSignal int `yaml:"macd_signal"`
		RSIWindow  int `yaml:"rsi_window"`
		RollWindow int `yaml:"roll_window"`
		LagDepth   int `yaml:"lag_depth"`
	} `yaml:"features"`

	Training struct {
		SplitRatio   float64 `yaml:"split_ratio"`
		Epochs       int     `yaml:"epochs"`
		BatchSize    int     `yaml:"batch_size"`
		Hidden       []int   `yaml:"hidden"`
		LearningRate float64 `yaml:"learning_rate"`
		Patience     int     `yaml:"patience"`
		Seed         int64   `yaml:"seed"`
	} `yaml:"training"`

	Schedule struct {
		ForecastCron string `yaml:"forecast_cron"`
	} `yaml:"schedule"`

	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`

	LogFile string `yaml:"log_file"`
	Proxy   string `yaml:"proxy"`
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
	if v := os.Getenv("TICKER"); v != "" {
		cfg.Ticker = v
	}
	if v := os.Getenv("START_DATE"); v != "" {
		cfg.StartDate = v
	}
	if v := os.Getenv("END_DATE"); v != "" {
		cfg.EndDate = v
	}
	if v := os.Getenv("EPOCHS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Training.Epochs = n
		}
	}
	if v := os.Getenv("FORECAST_CRON"); v != "" {
		cfg.Schedule.ForecastCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Features.SMAWindow == 0 {
		cfg.Features.SMAWindow = 50
	}
	if cfg.Features.EMAWindow == 0 {
		cfg.Features.EMAWindow = 26
	}
	if cfg.Features.MACDFast == 0 {
		cfg.Features.MACDFast = 12
	}
	if cfg.Features.MACDSlow == 0 {
		cfg.Features.MACDSlow = 26
	}
	if cfg.Features.MACDSignal == 0 {
		cfg.Features.MACDSignal = 9
	}
	if cfg.Features.RSIWindow == 0 {
		cfg.Features.RSIWindow = 14
	}
	if cfg.Features.RollWindow == 0 {
		cfg.Features.RollWindow = 10
	}
	if cfg.Features.LagDepth == 0 {
		cfg.Features.LagDepth = 5
	}
	if cfg.Training.SplitRatio == 0 {
		cfg.Training.SplitRatio = 0.8
	}
	if cfg.Training.Epochs == 0 {
		cfg.Training.Epochs = 100
	}
	if cfg.Training.BatchSize == 0 {
		cfg.Training.BatchSize = 32
	}
	if len(cfg.Training.Hidden) == 0 {
		cfg.Training.Hidden = []int{64, 32}
	}
	if cfg.Training.LearningRate == 0 {
		cfg.Training.LearningRate = 0.001
	}
	if cfg.Training.Patience == 0 {
		cfg.Training.Patience = 10
	}
	if cfg.Schedule.ForecastCron == "" {
		cfg.Schedule.ForecastCron = "0 30 17 * * 1-5"
	}

	return cfg, nil
}

// Validate checks that all required fields are consistent.
func (c *Config) Validate() error {
	if c.Training.SplitRatio <= 0 || c.Training.SplitRatio >= 1 {
		return fmt.Errorf("training.split_ratio must be in (0, 1)")
	}
	if c.Training.Epochs <= 0 {
		return fmt.Errorf("training.epochs must be positive")
	}
	if c.Training.BatchSize <= 0 {
		return fmt.Errorf("training.batch_size must be positive")
	}
	if c.Features.LagDepth < 1 {
		return fmt.Errorf("features.lag_depth must be at least 1")
	}
	if c.Features.MACDFast >= c.Features.MACDSlow {
		return fmt.Errorf("features.macd_fast must be shorter than macd_slow")
	}
	return nil
}
