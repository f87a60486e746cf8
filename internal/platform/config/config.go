package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Scanner   ScannerConfig   `mapstructure:"scanner"`
	Redirects RedirectsConfig `mapstructure:"redirects"`
	Cache     CacheConfig     `mapstructure:"cache"`
	History   HistoryConfig   `mapstructure:"history"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type ScannerConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	APIKey       string        `mapstructure:"api_key"`
	Timeout      time.Duration `mapstructure:"timeout"`
	PollAttempts int           `mapstructure:"poll_attempts"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

type RedirectsConfig struct {
	MaxHops int           `mapstructure:"max_hops"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

type HistoryConfig struct {
	DatabasePath   string        `mapstructure:"database_path"`
	Retention      time.Duration `mapstructure:"retention"`
	MaxConnections int           `mapstructure:"max_connections"`
}

type RateLimitConfig struct {
	CheckPerMinute int `mapstructure:"check_per_minute"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func Load(path string) (*Config, error) {
	viper.SetConfigFile(path)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// The scanner key is secret material, supplied through the environment
	// (SCANNER_API_KEY) rather than the config file.
	if key := viper.GetString("scanner.api_key"); key != "" {
		config.Scanner.APIKey = key
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("scanner.timeout", 5*time.Second)
	viper.SetDefault("scanner.poll_attempts", 5)
	viper.SetDefault("scanner.poll_interval", time.Second)
	viper.SetDefault("redirects.max_hops", 3)
	viper.SetDefault("redirects.timeout", 5*time.Second)
	viper.SetDefault("cache.ttl", 24*time.Hour)
	viper.SetDefault("history.retention", 30*24*time.Hour)
	viper.SetDefault("history.max_connections", 5)
	viper.SetDefault("rate_limit.check_per_minute", 60)
	viper.SetDefault("logging.level", "info")
}
