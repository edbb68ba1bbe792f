package templates

import (
	"fmt"

	"github.com/spf13/afero"

	verrors "github.com/JonSteinn/vspy/internal/errors"
	"github.com/JonSteinn/vspy/internal/fileio"
)

type dependencyList struct {
	DevDependencies []string `yaml:"dev-dependencies"`
}

// LoadDependencies reads the development dependencies pinned into a
// generated project.
func LoadDependencies(fsys afero.Fs, path string) ([]string, error) {
	var list dependencyList
	if err := fileio.ReadYAML(fsys, path, &list); err != nil {
		return nil, fmt.Errorf("loading dependencies: %w", err)
	}

	seen := make(map[string]bool, len(list.DevDependencies))
	for _, pkg := range list.DevDependencies {
		if pkg == "" {
			return nil, verrors.Wrap(verrors.ErrValidation, "empty dependency name in "+path)
		}
		if seen[pkg] {
			return nil, verrors.Wrap(verrors.ErrValidation, fmt.Sprintf("duplicate dependency %q in %s", pkg, path))
		}
		seen[pkg] = true
	}
	return list.DevDependencies, nil
}
