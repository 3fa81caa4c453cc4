// Package config loads salaryscenes settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// AppConfig represents the application configuration
type AppConfig struct {
	Dataset   string    `yaml:"dataset" env:"SALARYSCENES_DATASET" validate:"required"`
	Year      string    `yaml:"year" env:"SALARYSCENES_YEAR" validate:"required,len=4,numeric"`
	TopN      int       `yaml:"top_n" env:"SALARYSCENES_TOP_N" validate:"min=1,max=50"`
	Port      int       `yaml:"port" env:"SALARYSCENES_PORT" validate:"min=1,max=65535"`
	Proxy     string    `yaml:"proxy" env:"SALARYSCENES_PROXY" validate:"omitempty,url"`
	LogLevel  string    `yaml:"log_level" env:"SALARYSCENES_LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat string    `yaml:"log_format" env:"SALARYSCENES_LOG_FORMAT" validate:"oneof=text json"`
	Web       WebConfig `yaml:"web"`
}

// WebConfig protects the JSON API with basic auth when both fields are set
type WebConfig struct {
	Username string `yaml:"username" env:"WEB_USERNAME"`
	Password string `yaml:"password" env:"WEB_PASSWORD"`
}

// AuthEnabled reports whether basic auth credentials are configured
func (w WebConfig) AuthEnabled() bool {
	return w.Username != "" && w.Password != ""
}

// Default returns the built-in configuration
func Default() AppConfig {
	return AppConfig{
		Dataset:   "embedded",
		Year:      "2025",
		TopN:      5,
		Port:      8080,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load builds the configuration: defaults, then the YAML file (if any),
// then environment overrides. The result is not validated yet.
func Load(path string) (*AppConfig, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = findConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case explicit || !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration values
func (c *AppConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			v := verrs[0]
			return fmt.Errorf("config error: '%s' failed '%s' check (value %v)", v.Namespace(), v.Tag(), v.Value())
		}
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

func findConfigPath() string {
	paths := []string{
		"salaryscenes.yaml",
		"config.yaml",
	}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "salaryscenes", "config.yaml"))
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return "salaryscenes.yaml"
}
