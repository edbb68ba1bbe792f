package render

import (
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	verrors "github.com/JonSteinn/vspy/internal/errors"
)

// CheckFormat verifies that rendered content is well-formed for the
// structured format implied by the extension of path. Files with other
// extensions are accepted as-is.
func CheckFormat(path, content string) error {
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		var v any
		err = json.Unmarshal([]byte(content), &v)
	case ".toml":
		var v map[string]any
		err = toml.Unmarshal([]byte(content), &v)
	case ".yaml", ".yml":
		err = checkYAML(content)
	default:
		return nil
	}
	if err != nil {
		return &verrors.RenderError{Template: path, Err: err}
	}
	return nil
}

func checkYAML(content string) error {
	dec := yaml.NewDecoder(strings.NewReader(content))
	for {
		var v any
		err := dec.Decode(&v)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
