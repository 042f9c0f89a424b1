// Package config loads client and callback receiver settings from YAML,
// with secrets overridable from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	gatefi "github.com/lubluniky/gatefi-client-go"
)

// Config holds everything needed to build a client and run a callback
// receiver.
type Config struct {
	Environment string        `yaml:"environment"`
	RESTHost    string        `yaml:"rest_host"`
	PartnerID   string        `yaml:"partner_id"`
	AccessKey   string        `yaml:"access_key"`
	SecretKey   string        `yaml:"secret_key"`
	Timeout     time.Duration `yaml:"timeout"`

	Callback struct {
		Addr   string `yaml:"addr"`
		Path   string `yaml:"path"`
		Secret string `yaml:"secret"`
		Redis  struct {
			Addr     string        `yaml:"addr"`
			Password string        `yaml:"password"`
			DB       int           `yaml:"db"`
			TTL      time.Duration `yaml:"ttl"`
		} `yaml:"redis"`
	} `yaml:"callback"`

	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
}

// Environment variables that override file values.
const (
	EnvEnvironment    = "GATEFI_ENV"
	EnvPartnerID      = "GATEFI_PARTNER_ID"
	EnvAccessKey      = "GATEFI_ACCESS_KEY"
	EnvSecretKey      = "GATEFI_SECRET_KEY"
	EnvCallbackSecret = "GATEFI_CALLBACK_SECRET"
	EnvRedisAddr      = "GATEFI_REDIS_ADDR"
)

// Load reads path, applies environment overrides and validates the result.
// An empty path builds the configuration from the environment alone.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}

	overrideWithEnv(&cfg)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: invalid configuration: %w", err)
	}
	return &cfg, nil
}

func overrideWithEnv(cfg *Config) {
	set := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	set(&cfg.Environment, EnvEnvironment)
	set(&cfg.PartnerID, EnvPartnerID)
	set(&cfg.AccessKey, EnvAccessKey)
	set(&cfg.SecretKey, EnvSecretKey)
	set(&cfg.Callback.Secret, EnvCallbackSecret)
	set(&cfg.Callback.Redis.Addr, EnvRedisAddr)
}

func (c *Config) applyDefaults() {
	if c.Environment == "" {
		c.Environment = string(gatefi.Sandbox)
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.Callback.Addr == "" {
		c.Callback.Addr = ":8080"
	}
	if c.Callback.Path == "" {
		c.Callback.Path = "/gatefi/callback"
	}
	if c.Callback.Secret == "" {
		c.Callback.Secret = c.SecretKey
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate reports missing or inconsistent settings.
func (c *Config) Validate() error {
	var errs []error
	if _, err := gatefi.ParseEnvironment(c.Environment); err != nil {
		errs = append(errs, err)
	}
	if c.AccessKey == "" {
		errs = append(errs, errors.New("access_key is required"))
	}
	if c.SecretKey == "" {
		errs = append(errs, errors.New("secret_key is required"))
	}
	if c.PartnerID == "" {
		errs = append(errs, errors.New("partner_id is required"))
	}
	if _, err := parseLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Env returns the parsed environment.
func (c *Config) Env() gatefi.Environment {
	env, _ := gatefi.ParseEnvironment(c.Environment)
	return env
}

// Credentials returns the client credentials.
func (c *Config) Credentials() gatefi.Credentials {
	return gatefi.Credentials{
		PartnerID: c.PartnerID,
		AccessKey: c.AccessKey,
		SecretKey: c.SecretKey,
	}
}

// NewClient builds a client from the configuration.
func (c *Config) NewClient(logger *slog.Logger) *gatefi.Client {
	opts := []gatefi.Option{
		gatefi.WithEnvironment(c.Env()),
		gatefi.WithCredentials(c.Credentials()),
		gatefi.WithTimeout(c.Timeout),
		gatefi.WithLogger(logger),
	}
	if c.RESTHost != "" {
		opts = append(opts, gatefi.WithBaseURL(c.RESTHost))
	}
	return gatefi.NewClient(opts...)
}

// Logger builds a slog logger honouring logging.level and logging.format
// ("json" or "text").
func (c *Config) Logger() *slog.Logger {
	level, _ := parseLevel(c.Logging.Level)
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Logging.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("logging.level: %w", err)
	}
	return l, nil
}
