package templates

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/spf13/afero"

	verrors "github.com/JonSteinn/vspy/internal/errors"
	"github.com/JonSteinn/vspy/internal/fileio"
)

// ManifestEntry describes one generated file.
type ManifestEntry struct {
	// Src is the resource path.
	Src string `json:"src"`

	// Dst is the output path relative to the project root.
	Dst string `json:"dst"`

	// IsTemplate marks Src as a template rendered with the project data.
	IsTemplate bool `json:"is_template"`

	// PathIsTemplate marks Dst as a template rendered with the project name.
	PathIsTemplate bool `json:"path_is_template"`
}

// LoadManifest reads the manifest at path and validates it.
func LoadManifest(fsys afero.Fs, path string) ([]ManifestEntry, error) {
	var entries []ManifestEntry
	if err := fileio.ReadJSON(fsys, path, &entries); err != nil {
		return nil, fmt.Errorf("loading manifest: %w", err)
	}
	if err := ValidateManifest(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ValidateManifest checks entries against the #Manifest definition in the
// embedded CUE schema.
func ValidateManifest(entries []ManifestEntry) error {
	if len(entries) == 0 {
		return verrors.Wrap(verrors.ErrValidation, "manifest has no entries")
	}

	schemaData, err := FS.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("reading embedded schema: %w", err)
	}

	ctx := cuecontext.New()
	schema := ctx.CompileBytes(schemaData, cue.Filename(schemaPath))
	if schema.Err() != nil {
		return fmt.Errorf("compiling schema: %w", schema.Err())
	}

	manifest := schema.LookupPath(cue.ParsePath("#Manifest"))
	unified := manifest.Unify(ctx.Encode(entries))
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%w: manifest: %s", verrors.ErrValidation, cueerrors.Details(err, nil))
	}
	return nil
}
