package versions

import (
	"context"
	"fmt"
	"slices"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/sync/errgroup"

	"github.com/JonSteinn/vspy/internal/output"
)

// Sources overrides the endpoints used by FetchAll. Empty fields select the
// public defaults.
type Sources struct {
	PyPIURL      string
	DownloadsURL string
}

// Resolved is the outcome of FetchAll.
type Resolved struct {
	// Dependencies maps each requested package to its latest version.
	Dependencies map[string]string

	// PythonVersions lists active Python releases in page order.
	PythonVersions []string
}

// FetchAll concurrently resolves the latest version of every package and the
// active Python releases. The first failure cancels the remaining lookups and
// is returned.
func FetchAll(ctx context.Context, client Client, packages []string, src Sources) (*Resolved, error) {
	pypi := NewPyPI(client, src.PyPIURL)
	python := NewPython(client, src.DownloadsURL)

	g, gctx := errgroup.WithContext(ctx)

	var active []string
	g.Go(func() error {
		v, err := python.ActiveVersions(gctx)
		if err != nil {
			return err
		}
		active = v
		return nil
	})

	records := make([]Record, len(packages))
	for i, pkg := range packages {
		g.Go(func() error {
			rec, err := pypi.Version(gctx, pkg)
			if err != nil {
				return err
			}
			records[i] = rec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	deps := make(map[string]string, len(records))
	for _, rec := range records {
		if rec.Version == "" {
			output.Warn("no version reported", "package", rec.Package)
		}
		deps[rec.Package] = rec.Version
	}
	return &Resolved{Dependencies: deps, PythonVersions: active}, nil
}

// SortVersions returns a copy of labels ordered oldest first by numeric
// components, so "3.10" sorts after "3.9".
func SortVersions(labels []string) ([]string, error) {
	parsed := make(map[string]*semver.Version, len(labels))
	for _, label := range labels {
		v, err := semver.NewVersion(label)
		if err != nil {
			return nil, fmt.Errorf("invalid python version %q: %w", label, err)
		}
		parsed[label] = v
	}

	sorted := slices.Clone(labels)
	slices.SortStableFunc(sorted, func(a, b string) int {
		return parsed[a].Compare(parsed[b])
	})
	return sorted, nil
}
