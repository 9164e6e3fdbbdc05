package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix = "opttab"

	defaultBaseURL = "https://opttab.com/api/v1/user"
)

// Config holds the application configuration loaded from env files, environment variables and flags.
type Config struct {
	AppName        string `mapstructure:"app_name"`
	LogLevel       string `mapstructure:"log_level"`
	APIKey         string `mapstructure:"api_key"`
	BaseURL        string `mapstructure:"base_url"`
	PublishersFile string `mapstructure:"publishers_file"`

	RequestTimeoutSeconds int64 `mapstructure:"request_timeout_seconds"`
	RetryCount            int   `mapstructure:"retry_count"`
	RetryWaitMillis       int64 `mapstructure:"retry_wait_ms"`
	RetryMaxWaitMillis    int64 `mapstructure:"retry_max_wait_ms"`

	RequestTimeout time.Duration `mapstructure:"-"`
	RetryWait      time.Duration `mapstructure:"-"`
	RetryMaxWait   time.Duration `mapstructure:"-"`
}

// Redacted returns a copy safe for logging.
func (c Config) Redacted() Config {
	if c.APIKey != "" {
		c.APIKey = "***"
	}
	return c
}

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"api-key":         "api_key",
	"base-url":        "base_url",
	"timeout":         "request_timeout_seconds",
	"retries":         "retry_count",
	"log-level":       "log_level",
	"publishers-file": "publishers_file",
}

// Load reads configuration from configs/.env, OPTTAB_* environment variables and,
// when fs is not nil, any flags the user set explicitly.
func Load(fs *pflag.FlagSet) (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "opttab")
	v.SetDefault("log_level", "warn")
	v.SetDefault("api_key", "")
	v.SetDefault("base_url", defaultBaseURL)
	v.SetDefault("publishers_file", "")
	v.SetDefault("request_timeout_seconds", 30)
	v.SetDefault("retry_count", 0)
	v.SetDefault("retry_wait_ms", 500)
	v.SetDefault("retry_max_wait_ms", 5000)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.PublishersFile = strings.TrimSpace(cfg.PublishersFile)

	if cfg.RequestTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid request_timeout_seconds (must be positive seconds)")
	}
	if cfg.RetryCount < 0 {
		return nil, fmt.Errorf("invalid retry_count (must not be negative)")
	}
	if cfg.RetryWaitMillis <= 0 || cfg.RetryMaxWaitMillis <= 0 {
		return nil, fmt.Errorf("invalid retry wait (must be positive milliseconds)")
	}
	if cfg.RetryMaxWaitMillis < cfg.RetryWaitMillis {
		return nil, fmt.Errorf("retry_max_wait_ms must not be below retry_wait_ms")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	cfg.RetryWait = time.Duration(cfg.RetryWaitMillis) * time.Millisecond
	cfg.RetryMaxWait = time.Duration(cfg.RetryMaxWaitMillis) * time.Millisecond

	return &cfg, nil
}

// Validate checks settings required to talk to the API.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("api key is required (set OPTTAB_API_KEY or --api-key)")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base url is required")
	}
	return nil
}
