// Package templates holds the embedded resources of a generated project:
// static payloads, Go text templates, the job manifest and the list of
// development dependencies.
package templates

import (
	"embed"

	"github.com/spf13/afero"
)

// Paths of the embedded metadata files.
const (
	ManifestPath     = "manifest.json"
	DependenciesPath = "dependencies.yaml"
	schemaPath       = "schema.cue"
)

// FS is the embedded resource tree.
//
//go:embed static templates manifest.json dependencies.yaml schema.cue
var FS embed.FS

// ResourceFS returns the embedded resources as a read-only afero.Fs.
func ResourceFS() afero.Fs {
	return afero.NewReadOnlyFs(&afero.FromIOFS{FS: FS})
}
