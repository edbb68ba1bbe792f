package project

import (
	"errors"
	"maps"
	"slices"
	"strings"
)

// Metadata is the user supplied description of a project.
type Metadata struct {
	Author      string
	Description string
	Email       string
	Keywords    string
	Name        string
	Repository  string
}

// NormalizeKeywords turns a comma separated keyword list into the space
// separated form used in setup.py.
func NormalizeKeywords(raw string) string {
	var words []string
	for _, w := range strings.Split(raw, ",") {
		if w = strings.TrimSpace(w); w != "" {
			words = append(words, w)
		}
	}
	return strings.Join(words, " ")
}

var (
	errAlreadyResolved = errors.New("project context is already resolved")
	errNotResolved     = errors.New("project context is not resolved yet")
)

// Context is the data that templates are rendered against. Metadata is fixed
// at construction; versions are filled in exactly once by Resolve.
type Context struct {
	meta         Metadata
	pyVersions   []string
	dependencies map[string]string
	resolved     bool
}

// NewContext returns an unresolved Context.
func NewContext(meta Metadata) *Context {
	return &Context{meta: meta}
}

// Metadata returns the project metadata.
func (c *Context) Metadata() Metadata {
	return c.meta
}

// Resolve stores the active Python versions and dependency versions.
func (c *Context) Resolve(pyVersions []string, dependencies map[string]string) error {
	if c.resolved {
		return errAlreadyResolved
	}
	c.pyVersions = slices.Clone(pyVersions)
	c.dependencies = maps.Clone(dependencies)
	if c.dependencies == nil {
		c.dependencies = map[string]string{}
	}
	c.resolved = true
	return nil
}

// Resolved reports whether Resolve has been called.
func (c *Context) Resolved() bool {
	return c.resolved
}

// PyVersions returns a copy of the resolved Python versions.
func (c *Context) PyVersions() []string {
	return slices.Clone(c.pyVersions)
}

// Dependencies returns a copy of the resolved dependency versions.
func (c *Context) Dependencies() map[string]string {
	return maps.Clone(c.dependencies)
}

// TemplateData returns the data for rendering file templates. Every call
// returns fresh copies.
func (c *Context) TemplateData() (map[string]any, error) {
	if !c.resolved {
		return nil, errNotResolved
	}
	return map[string]any{
		"author":       c.meta.Author,
		"description":  c.meta.Description,
		"email":        c.meta.Email,
		"keywords":     c.meta.Keywords,
		"name":         c.meta.Name,
		"repository":   c.meta.Repository,
		"py_versions":  slices.Clone(c.pyVersions),
		"dependencies": maps.Clone(c.dependencies),
	}, nil
}

// PathData returns the data for rendering destination paths. It is
// available before resolution and only carries the project name.
func (c *Context) PathData() map[string]any {
	return map[string]any{"name": c.meta.Name}
}
