// Package config resolves runtime settings from an optional config file and
// LAUNCHDASH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Defaults.
const (
	DefaultDataPath = "spacex_launch_dash.csv"
	DefaultHost     = "127.0.0.1"
	DefaultPort     = 8050
	EnvPrefix       = "LAUNCHDASH"
	FileName        = "launchdash"
)

// Config holds the resolved settings.
type Config struct {
	viper *viper.Viper

	DataPath     string `mapstructure:"data_path"`
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Debug        bool   `mapstructure:"debug"`
	ServiceName  string `mapstructure:"service_name"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool   `mapstructure:"otlp_insecure"`
}

// Load reads configuration. If path is empty, launchdash.{yaml,json,toml}
// in the working directory is used when present. Environment variables take
// precedence over the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("data_path", DefaultDataPath)
	v.SetDefault("host", DefaultHost)
	v.SetDefault("port", DefaultPort)
	v.SetDefault("debug", false)
	v.SetDefault("service_name", "launchdash")
	v.SetDefault("otlp_endpoint", "")
	v.SetDefault("otlp_insecure", true)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The standard OpenTelemetry variable is honoured without the prefix.
	if err := v.BindEnv("otlp_endpoint", EnvPrefix+"_OTLP_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT"); err != nil {
		return nil, fmt.Errorf("bind otlp endpoint: %w", err)
	}
	if err := v.BindEnv("service_name", EnvPrefix+"_SERVICE_NAME", "OTEL_SERVICE_NAME"); err != nil {
		return nil, fmt.Errorf("bind service name: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{viper: v}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config to struct : %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings for values the server cannot use.
func (c *Config) Validate() error {
	if c.DataPath == "" {
		return errors.New("data_path must not be empty")
	}
	if c.Port <= 0 || c.Port >= 65536 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Source returns the config file in use, or "" when running on defaults
// and environment only.
func (c *Config) Source() string {
	if c.viper == nil {
		return ""
	}
	return c.viper.ConfigFileUsed()
}
