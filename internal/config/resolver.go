package config

import (
	"strings"

	"github.com/JonSteinn/vspy/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue is a single configuration value and where it came from.
type ResolvedValue struct {
	Key    string
	Value  string
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveOptions contains the candidate values for one key.
type ResolveOptions struct {
	// Key is the dotted config key, e.g. "author".
	Key string
	// FlagValue is the flag value (empty if not set).
	FlagValue string
	// ConfigValue is the value loaded from the config file. Viper merges
	// the environment into it, so it equals the env value when both are set.
	ConfigValue string
	// DefaultValue is used when nothing else is set.
	DefaultValue string
}

// EnvKey returns the environment variable name for a dotted config key.
func EnvKey(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Resolve resolves a value using precedence:
// (1) flag, (2) VSPY_* env, (3) config file, (4) default.
func Resolve(opts ResolveOptions) ResolvedValue {
	result := ResolvedValue{
		Key:      opts.Key,
		Shadowed: make(map[ConfigSource]string),
	}

	envValue, _ := lookupEnv(EnvKey(opts.Key))
	configValue := opts.ConfigValue
	if envValue != "" && configValue == envValue {
		configValue = ""
	}

	candidates := []struct {
		source ConfigSource
		value  string
	}{
		{SourceFlag, opts.FlagValue},
		{SourceEnv, envValue},
		{SourceConfig, configValue},
		{SourceDefault, opts.DefaultValue},
	}

	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if result.Source == "" {
			result.Value = c.value
			result.Source = c.source
			continue
		}
		result.Shadowed[c.source] = c.value
	}
	if result.Source == "" {
		result.Source = SourceDefault
	}
	return result
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) VSPY_CONFIG env, (3) ~/.vspy/config.yaml default
func ResolveConfigPath(flagValue string) (ResolvedValue, error) {
	envValue, _ := lookupEnv("VSPY_CONFIG")
	result := ResolvedValue{
		Key:      "config",
		Shadowed: make(map[ConfigSource]string),
	}

	paths, err := DefaultPaths()
	if err == nil {
		result.Shadowed[SourceDefault] = paths.ConfigFile
	}

	switch {
	case flagValue != "":
		result.Value = flagValue
		result.Source = SourceFlag
		if envValue != "" {
			result.Shadowed[SourceEnv] = envValue
		}
	case envValue != "":
		result.Value = envValue
		result.Source = SourceEnv
	case err != nil:
		return ResolvedValue{}, err
	default:
		result.Value = paths.ConfigFile
		result.Source = SourceDefault
		delete(result.Shadowed, SourceDefault)
	}
	return result, nil
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
