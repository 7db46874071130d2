// Package config loads the pricing engine's runtime configuration with
// viper: a TOML file plus APP_-prefixed environment variable overrides.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/white07S/OptionPricing/pkg/logger"
)

// Config is the top-level configuration for the pricing service.
type Config struct {
	ServiceName string       `mapstructure:"service_name"`
	Environment string       `mapstructure:"environment"`
	HTTP        HTTPConfig   `mapstructure:"http"`
	Engine      EngineConfig `mapstructure:"engine"`
	Logger      logger.Config `mapstructure:"logger"`
}

// HTTPConfig controls the gin listener.
type HTTPConfig struct {
	Host         string `mapstructure:"host" default:"0.0.0.0"`
	Port         int    `mapstructure:"port" default:"8080"`
	ReadTimeout  int    `mapstructure:"read_timeout" default:"30"`
	WriteTimeout int    `mapstructure:"write_timeout" default:"30"`
}

// EngineConfig gives request handlers defaults to fall back to when a
// pricing request omits simulation size or worker count.
type EngineConfig struct {
	DefaultPaths      int `mapstructure:"default_paths" default:"100000"`
	DefaultWorkers    int `mapstructure:"default_workers" default:"8"`
	MaxPaths          int `mapstructure:"max_paths" default:"10000000"`
	MaxWorkers        int `mapstructure:"max_workers" default:"64"`
}

// Load reads configPath (TOML) and applies APP_-prefixed environment
// overrides, e.g. APP_HTTP_PORT=9090.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service_name", "pricing")
	v.SetDefault("environment", "dev")
	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.read_timeout", 30)
	v.SetDefault("http.write_timeout", 30)
	v.SetDefault("engine.default_paths", 100000)
	v.SetDefault("engine.default_workers", 8)
	v.SetDefault("engine.max_paths", 10000000)
	v.SetDefault("engine.max_workers", 64)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.file_path", "logs/pricing.log")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 10)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.with_caller", true)
}

func (c *Config) validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port out of range: %d", c.HTTP.Port)
	}
	if c.Engine.DefaultWorkers <= 0 {
		return fmt.Errorf("engine.default_workers must be positive")
	}
	if c.Engine.DefaultPaths <= 0 {
		return fmt.Errorf("engine.default_paths must be positive")
	}
	return nil
}
