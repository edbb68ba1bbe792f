// Package fileio provides whole-file read and write primitives over an afero.Fs.
//
// Every call blocks only the calling goroutine, so callers fan out work with
// goroutines rather than waiting on each file in turn. Failures are returned
// as *errors.IOError carrying the operation and path.
package fileio

import (
	"bytes"
	"encoding/json"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	verrors "github.com/JonSteinn/vspy/internal/errors"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// ReadText reads the whole file at path.
func ReadText(fsys afero.Fs, path string) (string, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return "", &verrors.IOError{Op: "read", Path: path, Err: err}
	}
	return string(data), nil
}

// WriteText writes content to path, creating missing parent directories and
// replacing any existing file.
func WriteText(fsys afero.Fs, path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := fsys.MkdirAll(dir, dirPerm); err != nil {
			return &verrors.IOError{Op: "mkdir", Path: dir, Err: err}
		}
	}
	if err := afero.WriteFile(fsys, path, []byte(content), filePerm); err != nil {
		return &verrors.IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// ReadJSON reads path and decodes it as JSON into v.
func ReadJSON(fsys afero.Fs, path string, v any) error {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return &verrors.IOError{Op: "read", Path: path, Err: err}
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &verrors.IOError{Op: "decode", Path: path, Err: err}
	}
	return nil
}

// ReadYAML reads path and decodes it as YAML into v.
func ReadYAML(fsys afero.Fs, path string, v any) error {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return &verrors.IOError{Op: "read", Path: path, Err: err}
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return &verrors.IOError{Op: "decode", Path: path, Err: err}
	}
	return nil
}

// IsEmptyDir reports whether path is a directory with no entries.
// A missing path or a regular file is reported as not empty.
func IsEmptyDir(fsys afero.Fs, path string) (bool, error) {
	isDir, err := afero.IsDir(fsys, path)
	if err != nil || !isDir {
		return false, nil
	}
	empty, err := afero.IsEmpty(fsys, path)
	if err != nil {
		return false, &verrors.IOError{Op: "readdir", Path: path, Err: err}
	}
	return empty, nil
}

// CleanDir removes every entry inside path but keeps path itself.
// Cleaning an empty directory is a no-op.
func CleanDir(fsys afero.Fs, path string) error {
	entries, err := afero.ReadDir(fsys, path)
	if err != nil {
		return &verrors.IOError{Op: "readdir", Path: path, Err: err}
	}
	for _, entry := range entries {
		child := filepath.Join(path, entry.Name())
		if err := fsys.RemoveAll(child); err != nil {
			return &verrors.IOError{Op: "remove", Path: child, Err: err}
		}
	}
	return nil
}
