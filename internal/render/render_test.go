package render

import (
	"errors"
	"testing"

	"github.com/lithammer/dedent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	verrors "github.com/JonSteinn/vspy/internal/errors"
)

func projectData() map[string]any {
	return map[string]any{
		"name":         "testproj",
		"author":       "me",
		"py_versions":  []string{"3.7", "3.8", "3.9", "3.10"},
		"dependencies": map[string]string{"tox": "13.22.14", "pytest-timeout": "2.1.0"},
	}
}

func TestRender_IgnoresUnusedKeys(t *testing.T) {
	got, err := Render("__{{.x}}__", map[string]any{"x": 3, "y": 5})
	require.NoError(t, err)
	assert.Equal(t, "__3__", got)
}

func TestRender_Lookups(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
		want string
	}{
		{"plain key", "{{.name}}", "testproj"},
		{"map subscript", `{{index .dependencies "tox"}}`, "13.22.14"},
		{"hyphenated subscript", `{{index .dependencies "pytest-timeout"}}`, "2.1.0"},
		{"dotted map field", "{{.dependencies.tox}}", "13.22.14"},
		{"first element", "{{index .py_versions 0}}", "3.7"},
		{"last element", "{{index .py_versions -1}}", "3.10"},
		{"second to last", "{{index .py_versions -2}}", "3.9"},
		{"sprig last", "{{last .py_versions}}", "3.10"},
		{"sprig pipeline", `{{.py_versions | join "," | replace "." ""}}`, "37,38,39,310"},
		{"literal braces", `py{{"{"}}{{.py_versions | join ","}}{{"}"}}`, "py{3.7,3.8,3.9,3.10}"},
		{"github expression", `{{ "${{ matrix.python-version }}" }}`, "${{ matrix.python-version }}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.tmpl, projectData())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
	}{
		{"missing key", "{{.missing}}"},
		{"missing subscript", `{{index .dependencies "black"}}`},
		{"missing dotted map field", "{{.dependencies.black}}"},
		{"index out of range", "{{index .py_versions 4}}"},
		{"negative index out of range", "{{index .py_versions -5}}"},
		{"index a string key into a slice", `{{index .py_versions "a"}}`},
		{"index a scalar", "{{index .name 0 0}}"},
		{"unterminated action", "{{.name"},
		{"unknown function", "{{nope .name}}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.tmpl, projectData())
			require.Error(t, err)
			assert.Empty(t, got)

			var renderErr *verrors.RenderError
			assert.True(t, errors.As(err, &renderErr))
		})
	}
}

func TestRender_Loop(t *testing.T) {
	tmpl := dedent.Dedent(`
		[testenv]
		basepython =
		{{- range $v := .py_versions }}
		    py{{ $v | replace "." "" }}: python{{ $v }}
		{{- end }}
		deps = -rrequirements-dev.txt
	`)
	want := dedent.Dedent(`
		[testenv]
		basepython =
		    py37: python3.7
		    py38: python3.8
		    py39: python3.9
		    py310: python3.10
		deps = -rrequirements-dev.txt
	`)

	got, err := Render(tmpl, projectData())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRender_ToxTemplate(t *testing.T) {
	tmpl := dedent.Dedent(`
		[tox]
		minversion = {{ index .dependencies "tox" }}
		envlist =
		    flake8, mypy, pylint, black
		    py{{"{"}}{{ .py_versions | join "," | replace "." "" }}{{"}"}},

		[default]
		basepython=python{{ index .py_versions -1 }}
	`)
	want := dedent.Dedent(`
		[tox]
		minversion = 13.22.14
		envlist =
		    flake8, mypy, pylint, black
		    py{37,38,39,310},

		[default]
		basepython=python3.10
	`)

	got, err := Render(tmpl, projectData())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRender_PreservesTrailingNewline(t *testing.T) {
	got, err := Render("****\n{{.name}}\n****\n", projectData())
	require.NoError(t, err)
	assert.Equal(t, "****\ntestproj\n****\n", got)

	got, err = Render("{{.name}}", projectData())
	require.NoError(t, err)
	assert.Equal(t, "testproj", got)
}

func TestRender_Idempotent(t *testing.T) {
	tmpl := `{{range $k, $v := .dependencies}}{{$k}}=={{$v}}
{{end}}{{.author}}`
	first, err := Render(tmpl, projectData())
	require.NoError(t, err)
	second, err := Render(tmpl, projectData())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "pytest-timeout==2.1.0\ntox==13.22.14\nme", first)
}

func TestRenderer_NameInError(t *testing.T) {
	_, err := New().Render("tox.ini", "{{.missing}}", map[string]any{})
	var renderErr *verrors.RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, "tox.ini", renderErr.Template)
}
