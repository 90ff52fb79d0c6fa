package config

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

var configValue atomic.Value

func GetConfig() *Config {
	cfg, _ := configValue.Load().(*Config)
	if cfg == nil {
		return NewDefaultConfig()
	}
	return cfg
}

func SetConfig(cfg *Config) {
	configValue.Store(cfg)
}

type Config struct {
	Version     string            `mapstructure:"version"`
	Environment string            `mapstructure:"environment"`
	Server      ServerConfig      `mapstructure:"server"`
	OpenWeather OpenWeatherConfig `mapstructure:"openweather"`
	Cache       CacheConfig       `mapstructure:"cache"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Telemetry   TelemetryConfig   `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	Host         string `mapstructure:"host"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	IdleTimeout  int    `mapstructure:"idle_timeout"`
}

// OpenWeatherConfig is handed to the OpenWeather client at construction.
// Timeouts are in seconds.
type OpenWeatherConfig struct {
	BaseURL         string  `mapstructure:"base_url"`
	APIKey          string  `mapstructure:"api_key"`
	Units           string  `mapstructure:"units"`
	Timeout         int     `mapstructure:"timeout"`
	RateLimit       float64 `mapstructure:"rate_limit"`
	Burst           int     `mapstructure:"burst"`
	BreakerFailures int     `mapstructure:"breaker_failures"`
	BreakerTimeout  int     `mapstructure:"breaker_timeout"`
}

type CacheConfig struct {
	TTL           int `mapstructure:"ttl"`
	SweepInterval int `mapstructure:"sweep_interval"`
}

type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
}

const (
	UnitsImperial = "imperial"
	UnitsMetric   = "metric"
)

func NewDefaultConfig() *Config {
	return &Config{
		Version:     "1.0.0",
		Environment: "development",
		Server: ServerConfig{
			Port:         8080,
			Host:         "0.0.0.0",
			ReadTimeout:  30,
			WriteTimeout: 30,
			IdleTimeout:  60,
		},
		OpenWeather: OpenWeatherConfig{
			BaseURL:         "https://api.openweathermap.org",
			APIKey:          "",
			Units:           UnitsImperial,
			Timeout:         5,
			RateLimit:       0,
			Burst:           5,
			BreakerFailures: 5,
			BreakerTimeout:  30,
		},
		Cache: CacheConfig{
			TTL:           1800,
			SweepInterval: 60,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "",
		},
		Telemetry: TelemetryConfig{
			Enabled:     false,
			Endpoint:    "tempo:4317",
			ServiceName: "zipweather",
		},
	}
}

func (c *Config) Validate() error {
	var errs []error

	if c.OpenWeather.BaseURL == "" {
		errs = append(errs, errors.New("openweather.base_url must not be empty"))
	}
	if c.OpenWeather.Units != UnitsImperial && c.OpenWeather.Units != UnitsMetric {
		errs = append(errs, fmt.Errorf("openweather.units must be %q or %q, got %q", UnitsImperial, UnitsMetric, c.OpenWeather.Units))
	}
	if c.OpenWeather.Timeout <= 0 {
		errs = append(errs, errors.New("openweather.timeout must be positive"))
	}
	if c.Cache.TTL <= 0 {
		errs = append(errs, errors.New("cache.ttl must be positive"))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}

	return errors.Join(errs...)
}

func (c OpenWeatherConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

func (c CacheConfig) TTLDuration() time.Duration {
	return time.Duration(c.TTL) * time.Second
}

func (c CacheConfig) SweepDuration() time.Duration {
	return time.Duration(c.SweepInterval) * time.Second
}
