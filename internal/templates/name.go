package templates

import (
	"fmt"
	"strings"

	verrors "github.com/JonSteinn/vspy/internal/errors"
)

// InvalidNameChars are the characters a project name may not contain.
const InvalidNameChars = `<>\/:"|?*`

// ValidateProjectName checks that name is usable as a directory and
// package name.
func ValidateProjectName(name string) error {
	if name == "" {
		return verrors.NewValidationError(
			"project name must not be empty",
			"", "name",
			"pass --name or enter a name at the prompt",
		)
	}
	if name == "." || name == ".." {
		return verrors.NewValidationError(
			fmt.Sprintf("project name %q is a relative directory reference", name),
			"", "name",
			"choose a name that is a plain directory name",
		)
	}
	if i := strings.IndexAny(name, InvalidNameChars); i >= 0 {
		return verrors.NewValidationError(
			fmt.Sprintf("project name %q contains %q", name, name[i]),
			"", "name",
			fmt.Sprintf("project name must not include any of %s", strings.Join(strings.Split(InvalidNameChars, ""), " ")),
		)
	}
	return nil
}
