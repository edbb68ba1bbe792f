package versions

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// DefaultPyPIURL is the base of the PyPI JSON API.
const DefaultPyPIURL = "https://pypi.org"

// Record is the latest known version of a package. An empty Version means
// the index did not report one.
type Record struct {
	Package string
	Version string
}

// PyPI resolves the latest released version of a package.
type PyPI struct {
	client  Client
	baseURL string
}

// NewPyPI returns a PyPI lookup against baseURL, or DefaultPyPIURL when
// baseURL is empty.
func NewPyPI(client Client, baseURL string) *PyPI {
	if baseURL == "" {
		baseURL = DefaultPyPIURL
	}
	return &PyPI{client: client, baseURL: strings.TrimSuffix(baseURL, "/")}
}

type pypiProject struct {
	Info struct {
		Version string `json:"version"`
	} `json:"info"`
}

// Version fetches the latest version of pkg.
func (p *PyPI) Version(ctx context.Context, pkg string) (Record, error) {
	var project pypiProject
	endpoint := fmt.Sprintf("%s/pypi/%s/json", p.baseURL, url.PathEscape(pkg))
	if err := p.client.GetJSON(ctx, endpoint, &project); err != nil {
		return Record{}, fmt.Errorf("looking up %s: %w", pkg, err)
	}
	return Record{Package: pkg, Version: project.Info.Version}, nil
}
