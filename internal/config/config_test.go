package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "salaryscenes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultsAreValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.False(t, cfg.Web.AuthEnabled())
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, `
dataset: data/salaries.csv
year: "2024"
top_n: 3
port: 9090
log_format: json
web:
  username: admin
  password: secret
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "data/salaries.csv", cfg.Dataset)
	assert.Equal(t, "2024", cfg.Year)
	assert.Equal(t, 3, cfg.TopN)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.Web.AuthEnabled())
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "port: 9090\nyear: \"2024\"\n")
	t.Setenv("SALARYSCENES_PORT", "7070")
	t.Setenv("WEB_USERNAME", "u")
	t.Setenv("WEB_PASSWORD", "p")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "2024", cfg.Year)
	assert.True(t, cfg.Web.AuthEnabled())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "port: [nope"))
	assert.Error(t, err)

	t.Setenv("SALARYSCENES_TOP_N", "many")
	_, err = Load(writeConfig(t, "year: \"2025\"\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*AppConfig){
		"year":       func(c *AppConfig) { c.Year = "25" },
		"top_n":      func(c *AppConfig) { c.TopN = 0 },
		"port":       func(c *AppConfig) { c.Port = 70000 },
		"log level":  func(c *AppConfig) { c.LogLevel = "loud" },
		"log format": func(c *AppConfig) { c.LogFormat = "xml" },
		"proxy":      func(c *AppConfig) { c.Proxy = "not a url" },
		"dataset":    func(c *AppConfig) { c.Dataset = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), "config error")
		})
	}
}
