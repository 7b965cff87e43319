// Package config loads runtime configuration for the carbonwise binaries.
//
// Values are resolved in order: built-in defaults, an optional YAML file
// (CONFIG_PATH or configs/config.yaml), then environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/carbonwise/carbonwise/internal/footprint"
)

const defaultConfigPath = "configs/config.yaml"

// Config aggregates runtime configuration used across the service.
type Config struct {
	App       AppConfig       `yaml:"app"`
	HTTP      HTTPConfig      `yaml:"http"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Engine    EngineConfig    `yaml:"engine"`
}

// AppConfig identifies the running deployment.
type AppConfig struct {
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"logLevel"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Port            string          `yaml:"port"`
	ReadTimeout     time.Duration   `yaml:"readTimeout"`
	WriteTimeout    time.Duration   `yaml:"writeTimeout"`
	IdleTimeout     time.Duration   `yaml:"idleTimeout"`
	ShutdownTimeout time.Duration   `yaml:"shutdownTimeout"`
	RequireTLS      bool            `yaml:"requireTLS"`
	RateLimit       RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the per-IP request limiting middleware.
type RateLimitConfig struct {
	Enabled            bool `yaml:"enabled"`
	CalculatePerMinute int  `yaml:"calculatePerMinute"`
	StandardPerMinute  int  `yaml:"standardPerMinute"`
}

// TelemetryConfig controls OpenTelemetry export.
type TelemetryConfig struct {
	Enabled      bool   `yaml:"enabled"`
	OTLPEndpoint string `yaml:"otlpEndpoint"`
	// SampleRatio is the fraction of root traces kept, in [0, 1].
	SampleRatio float64 `yaml:"sampleRatio"`
}

// EngineConfig controls the calculation engine.
type EngineConfig struct {
	// FactorsPath is an optional YAML file overriding the default factors.
	FactorsPath        string `yaml:"factorsPath"`
	MaxRecommendations int    `yaml:"maxRecommendations"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat(defaultConfigPath); err == nil {
		if err := hydrateFromFile(cfg, defaultConfigPath); err != nil {
			return nil, err
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Environment: "development",
			LogLevel:    "info",
		},
		HTTP: HTTPConfig{
			Port:            "8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:            true,
				CalculatePerMinute: 30,
				StandardPerMinute:  100,
			},
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: "localhost:4317",
			SampleRatio:  1,
		},
		Engine: EngineConfig{
			MaxRecommendations: footprint.DefaultMaxRecommendations,
		},
	}
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// applyEnvOverrides copies set environment variables onto cfg. Values that
// fail to parse are reported rather than ignored.
func applyEnvOverrides(cfg *Config) error {
	var errs []error

	if v := os.Getenv("APP_PORT"); v != "" {
		cfg.HTTP.Port = v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.App.Environment = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.App.LogLevel = v
	}
	if v := os.Getenv("REQUIRE_TLS"); v != "" {
		errs = appendParseErr(errs, "REQUIRE_TLS", parseBool(v, &cfg.HTTP.RequireTLS))
	}
	if v := os.Getenv("OTEL_ENABLED"); v != "" {
		errs = appendParseErr(errs, "OTEL_ENABLED", parseBool(v, &cfg.Telemetry.Enabled))
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.Telemetry.OTLPEndpoint = v
	}
	if v := os.Getenv("OTEL_TRACES_SAMPLER_ARG"); v != "" {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err == nil {
			cfg.Telemetry.SampleRatio = parsed
		}
		errs = appendParseErr(errs, "OTEL_TRACES_SAMPLER_ARG", err)
	}
	if v := os.Getenv("RATE_LIMIT_PER_MINUTE"); v != "" {
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err == nil {
			cfg.HTTP.RateLimit.CalculatePerMinute = parsed
		}
		errs = appendParseErr(errs, "RATE_LIMIT_PER_MINUTE", err)
	}
	if v := os.Getenv("FACTORS_PATH"); v != "" {
		cfg.Engine.FactorsPath = v
	}
	if v := os.Getenv("MAX_RECOMMENDATIONS"); v != "" {
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err == nil {
			cfg.Engine.MaxRecommendations = parsed
		}
		errs = appendParseErr(errs, "MAX_RECOMMENDATIONS", err)
	}

	return errors.Join(errs...)
}

func appendParseErr(errs []error, name string, err error) []error {
	if err == nil {
		return errs
	}
	return append(errs, fmt.Errorf("%s: %w", name, err))
}

func parseBool(v string, dst *bool) error {
	parsed, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return err
	}
	*dst = parsed
	return nil
}

// Validate ensures config values are usable.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.HTTP.Port) == "" {
		errs = append(errs, errors.New("http.port is required"))
	} else if port, err := strconv.Atoi(c.HTTP.Port); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, fmt.Errorf("http.port %q is not a valid port", c.HTTP.Port))
	}
	if c.HTTP.ReadTimeout <= 0 || c.HTTP.WriteTimeout <= 0 {
		errs = append(errs, errors.New("http timeouts must be positive"))
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.CalculatePerMinute <= 0 {
			errs = append(errs, errors.New("http.rateLimit.calculatePerMinute must be > 0"))
		}
		if c.HTTP.RateLimit.StandardPerMinute <= 0 {
			errs = append(errs, errors.New("http.rateLimit.standardPerMinute must be > 0"))
		}
	}
	if c.Telemetry.Enabled && c.Telemetry.OTLPEndpoint == "" {
		errs = append(errs, errors.New("telemetry.otlpEndpoint is required when telemetry is enabled"))
	}
	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("telemetry.sampleRatio %v must be within [0, 1]", c.Telemetry.SampleRatio))
	}
	if n := c.Engine.MaxRecommendations; n < 1 || n > footprint.DefaultMaxRecommendations {
		errs = append(errs, fmt.Errorf("engine.maxRecommendations %d must be within [1, %d]",
			n, footprint.DefaultMaxRecommendations))
	}
	if _, err := zerolog.ParseLevel(c.App.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("app.logLevel: %w", err))
	}

	return errors.Join(errs...)
}

// Level returns the configured zerolog level, defaulting to info.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.App.LogLevel)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
