package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"TickerBoard/internal/cache"
	"TickerBoard/internal/collector"
	"TickerBoard/internal/ticker"
)

// CronParser accepts the six-field (with seconds) specs the scheduler runs.
var CronParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

var validate = validator.New()

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		BaseURL string        `yaml:"base_url" validate:"required,url"`
		Timeout time.Duration `yaml:"timeout" validate:"min=1s"`
		Offline bool          `yaml:"offline"`
	} `yaml:"data_source"`
	Cache struct {
		TTL time.Duration `yaml:"ttl" validate:"min=1s"`
	} `yaml:"cache"`
	Schedule struct {
		WarmCron  string `yaml:"warm_cron" validate:"required"`
		PurgeCron string `yaml:"purge_cron" validate:"required"`
	} `yaml:"schedule"`
	Server struct {
		Addr string `yaml:"addr" validate:"required,hostname_port"`
	} `yaml:"server"`
	Log struct {
		Level string `yaml:"level" validate:"oneof=trace debug info warn error"`
	} `yaml:"log"`
	Watchlist []string `yaml:"watchlist" validate:"dive,required,alphanum"`
	Proxy     string   `yaml:"proxy" validate:"omitempty,url"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error.
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
	if v := os.Getenv("TCBS_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("TCBS_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parse TCBS_TIMEOUT: %w", err)
		}
		cfg.DataSource.Timeout = d
	}
	if os.Getenv("OFFLINE") == "true" {
		cfg.DataSource.Offline = true
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parse CACHE_TTL: %w", err)
		}
		cfg.Cache.TTL = d
	}
	if v := os.Getenv("CRON_WARM"); v != "" {
		cfg.Schedule.WarmCron = v
	}
	if v := os.Getenv("CRON_PURGE"); v != "" {
		cfg.Schedule.PurgeCron = v
	}
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("WATCHLIST"); v != "" {
		cfg.Watchlist = strings.Split(v, ",")
	}

	// Defaults
	if cfg.DataSource.BaseURL == "" {
		cfg.DataSource.BaseURL = collector.DefaultTCBSBaseURL
	}
	if cfg.DataSource.Timeout == 0 {
		cfg.DataSource.Timeout = collector.DefaultTimeout
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = cache.DefaultTTL
	}
	if cfg.Schedule.WarmCron == "" {
		// weekdays, every half hour through the trading session
		cfg.Schedule.WarmCron = "0 0,30 9-15 * * 1-5"
	}
	if cfg.Schedule.PurgeCron == "" {
		cfg.Schedule.PurgeCron = "0 */10 * * * *"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	if len(cfg.Watchlist) == 0 {
		cfg.Watchlist = ticker.Available()
	}
	for i, s := range cfg.Watchlist {
		cfg.Watchlist[i] = ticker.Normalize(s)
	}

	return cfg, nil
}

// Override applies command-line values on top of the loaded config. Empty or
// false values leave the config as loaded.
func (c *Config) Override(logLevel string, offline bool) {
	if logLevel != "" {
		c.Log.Level = strings.ToLower(strings.TrimSpace(logLevel))
	}
	if offline {
		c.DataSource.Offline = true
	}
}

// Validate checks field formats and that both cron specs parse.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := CronParser.Parse(c.Schedule.WarmCron); err != nil {
		return fmt.Errorf("schedule.warm_cron: %w", err)
	}
	if _, err := CronParser.Parse(c.Schedule.PurgeCron); err != nil {
		return fmt.Errorf("schedule.purge_cron: %w", err)
	}
	return nil
}
