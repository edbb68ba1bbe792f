package fileio

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	verrors "github.com/JonSteinn/vspy/internal/errors"
)

func TestWriteAndReadText(t *testing.T) {
	fsys := afero.NewMemMapFs()

	require.NoError(t, WriteText(fsys, "/out/nested/file.txt", "abc\n"))

	got, err := ReadText(fsys, "/out/nested/file.txt")
	require.NoError(t, err)
	assert.Equal(t, "abc\n", got)
}

func TestWriteText_RoundTripOnDisk(t *testing.T) {
	fsys := afero.NewOsFs()
	path := filepath.Join(t.TempDir(), "deep", "er", "payload.bin")
	content := "line one\r\n\ttabbed \x00 nul\nü\n"

	require.NoError(t, WriteText(fsys, path, content))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte(content), raw)
}

func TestWriteText_Overwrites(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, WriteText(fsys, "/f.txt", "a much longer first version"))
	require.NoError(t, WriteText(fsys, "/f.txt", "short"))

	got, err := ReadText(fsys, "/f.txt")
	require.NoError(t, err)
	assert.Equal(t, "short", got)
}

func TestReadText_Missing(t *testing.T) {
	_, err := ReadText(afero.NewMemMapFs(), "/nope.txt")
	require.Error(t, err)

	var ioErr *verrors.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "read", ioErr.Op)
	assert.Equal(t, "/nope.txt", ioErr.Path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.True(t, errors.Is(err, verrors.ErrNotFound))
}

func TestWriteText_ReadOnly(t *testing.T) {
	fsys := afero.NewReadOnlyFs(afero.NewMemMapFs())
	err := WriteText(fsys, "/dir/f.txt", "x")

	var ioErr *verrors.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "mkdir", ioErr.Op)
}

func TestReadJSON(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, WriteText(fsys, "/data.json", `{"a": 123, "b": [1,1,2,3,5,8,13]}`))

	var got struct {
		A int   `json:"a"`
		B []int `json:"b"`
	}
	require.NoError(t, ReadJSON(fsys, "/data.json", &got))
	assert.Equal(t, 123, got.A)
	assert.Equal(t, []int{1, 1, 2, 3, 5, 8, 13}, got.B)
}

func TestReadJSON_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"truncated", `{"a": `},
		{"unknown field", `{"a": 1, "c": 2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			require.NoError(t, WriteText(fsys, "/bad.json", tt.content))

			var got struct {
				A int `json:"a"`
			}
			err := ReadJSON(fsys, "/bad.json", &got)

			var ioErr *verrors.IOError
			require.True(t, errors.As(err, &ioErr))
			assert.Equal(t, "decode", ioErr.Op)
		})
	}
}

func TestReadYAML(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, WriteText(fsys, "/deps.yaml", "dev-dependencies:\n  - pytest\n  - tox\n"))

	var got struct {
		Dev []string `yaml:"dev-dependencies"`
	}
	require.NoError(t, ReadYAML(fsys, "/deps.yaml", &got))
	assert.Equal(t, []string{"pytest", "tox"}, got.Dev)

	require.NoError(t, WriteText(fsys, "/bad.yaml", "a: [1, 2"))
	var bad map[string]any
	err := ReadYAML(fsys, "/bad.yaml", &bad)
	var ioErr *verrors.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "decode", ioErr.Op)
}

func TestIsEmptyDir(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/empty", 0o755))
	require.NoError(t, WriteText(fsys, "/full/stuff.txt", ""))

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"empty directory", "/empty", true},
		{"directory with a file", "/full", false},
		{"regular file", "/full/stuff.txt", false},
		{"missing path", "/missing", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsEmptyDir(fsys, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCleanDir(t *testing.T) {
	fsys := afero.NewOsFs()
	root := t.TempDir()
	require.NoError(t, WriteText(fsys, filepath.Join(root, "stuff.txt"), "x"))
	require.NoError(t, WriteText(fsys, filepath.Join(root, "subdir", "subdir_file"), "y"))
	require.NoError(t, WriteText(fsys, filepath.Join(root, ".hidden", "a", "b", "c.txt"), "z"))

	empty, err := IsEmptyDir(fsys, root)
	require.NoError(t, err)
	require.False(t, empty)

	require.NoError(t, CleanDir(fsys, root))

	empty, err = IsEmptyDir(fsys, root)
	require.NoError(t, err)
	assert.True(t, empty)
	assert.DirExists(t, root)

	// A second pass over the now-empty directory is a no-op.
	require.NoError(t, CleanDir(fsys, root))
	assert.DirExists(t, root)
}

func TestCleanDir_Missing(t *testing.T) {
	err := CleanDir(afero.NewMemMapFs(), "/missing")
	var ioErr *verrors.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "readdir", ioErr.Op)
}
