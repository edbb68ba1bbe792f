package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Environment variable prefix for vspy configuration.
const envPrefix = "VSPY"

// Loader handles loading and merging configuration from multiple sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader. Every known key has a
// default, so VSPY_* variables apply to all of them.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := DefaultConfig()
	v.SetDefault("author", d.Author)
	v.SetDefault("email", d.Email)
	v.SetDefault("repository", d.Repository)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("http.timeout", d.HTTP.Timeout)
	v.SetDefault("http.retries", d.HTTP.Retries)
	v.SetDefault("http.retryBackoff", d.HTTP.RetryBackoff)
	v.SetDefault("http.maxConcurrent", d.HTTP.MaxConcurrent)
	v.SetDefault("sources.pypi", d.Sources.PyPI)
	v.SetDefault("sources.downloads", d.Sources.Downloads)
	v.SetDefault("log.timestamps", true)

	return &Loader{v: v}
}

// Load loads configuration from the given file path.
// If configFile is empty, it uses the default config file path.
// A missing file is not an error. Environment variables take precedence
// over file values.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return nil, fmt.Errorf("getting config file path: %w", err)
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	l.v.SetConfigFile(expandedPath)
	l.v.SetConfigType("yaml")

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config file %s: %w", expandedPath, err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// ConfigFileUsed returns the path of the file read by Load.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// IsSet reports whether key was set by the config file or environment.
func (l *Loader) IsSet(key string) bool {
	return l.v.InConfig(key) || l.envSet(key)
}

func (l *Loader) envSet(key string) bool {
	_, ok := lookupEnv(EnvKey(key))
	return ok
}
