package config

import (
	"os"
	"path/filepath"
)

var lookupEnv = os.LookupEnv

// Paths contains standard filesystem paths for vspy.
type Paths struct {
	// ConfigFile is the path to the config file (~/.vspy/config.yaml).
	ConfigFile string

	// HomeDir is the vspy home directory (~/.vspy).
	HomeDir string
}

// DefaultPaths returns the default paths for vspy.
func DefaultPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	home := filepath.Join(homeDir, ".vspy")
	return &Paths{
		ConfigFile: filepath.Join(home, "config.yaml"),
		HomeDir:    home,
	}, nil
}

// GetConfigFile returns the config file path.
// If VSPY_CONFIG is set, it takes precedence.
func GetConfigFile() (string, error) {
	if envPath, ok := lookupEnv("VSPY_CONFIG"); ok && envPath != "" {
		return envPath, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}
	return paths.ConfigFile, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
// ~username forms are returned unchanged.
func ExpandPath(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}
	return path, nil
}
