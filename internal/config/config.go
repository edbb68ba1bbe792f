// Package config provides configuration loading and management.
package config

import (
	"time"

	"github.com/JonSteinn/vspy/internal/versions"
)

// HTTPConfig controls the version lookup client.
type HTTPConfig struct {
	// Timeout bounds each request. Env: VSPY_HTTP_TIMEOUT, Default: 20s
	Timeout time.Duration `mapstructure:"timeout"`

	// Retries is the number of extra attempts after a transport error or 5xx.
	// Env: VSPY_HTTP_RETRIES, Default: 0
	Retries int `mapstructure:"retries"`

	// RetryBackoff is the wait between attempts. Default: 500ms
	RetryBackoff time.Duration `mapstructure:"retryBackoff"`

	// MaxConcurrent bounds in-flight requests. Default: 8
	MaxConcurrent int `mapstructure:"maxConcurrent"`
}

// SourcesConfig overrides the endpoints versions are read from.
type SourcesConfig struct {
	// PyPI is the PyPI base URL. Env: VSPY_SOURCES_PYPI
	PyPI string `mapstructure:"pypi"`

	// Downloads is the python.org downloads page. Env: VSPY_SOURCES_DOWNLOADS
	Downloads string `mapstructure:"downloads"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps"`
}

// Config is the vspy configuration, loaded from ~/.vspy/config.yaml and
// VSPY_* environment variables.
type Config struct {
	// Author is the default author for new projects. Env: VSPY_AUTHOR
	Author string `mapstructure:"author"`

	// Email is the default author email. Env: VSPY_EMAIL
	Email string `mapstructure:"email"`

	// Repository is the default repository URL. Env: VSPY_REPOSITORY
	Repository string `mapstructure:"repository"`

	// Workers bounds concurrent file writes. Zero means unbounded.
	Workers int `mapstructure:"workers"`

	HTTP    HTTPConfig    `mapstructure:"http"`
	Sources SourcesConfig `mapstructure:"sources"`
	Log     LogConfig     `mapstructure:"log"`
}

// DefaultConfig returns a Config with all default values populated.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:       versions.DefaultTimeout,
			RetryBackoff:  500 * time.Millisecond,
			MaxConcurrent: versions.DefaultMaxConcurrent,
		},
		Sources: SourcesConfig{
			PyPI:      versions.DefaultPyPIURL,
			Downloads: versions.DefaultDownloadsURL,
		},
	}
}

// PoolOptions maps the HTTP settings onto versions.PoolOptions.
func (c *Config) PoolOptions() versions.PoolOptions {
	return versions.PoolOptions{
		Timeout:       c.HTTP.Timeout,
		Retries:       c.HTTP.Retries,
		RetryBackoff:  c.HTTP.RetryBackoff,
		MaxConcurrent: c.HTTP.MaxConcurrent,
	}
}

// VersionSources maps the source settings onto versions.Sources.
func (c *Config) VersionSources() versions.Sources {
	return versions.Sources{
		PyPIURL:      c.Sources.PyPI,
		DownloadsURL: c.Sources.Downloads,
	}
}
