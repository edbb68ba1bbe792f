// Package testutil provides test helpers shared across vspy packages.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

// ReleasesPage is a python.org downloads page listing 3.10 down to 3.7
// plus 2.7.
const ReleasesPage = `<html><body><div class="row active-release-list-widget"><ol>
<li><span class="release-version">3.10</span></li>
<li><span class="release-version">3.9</span></li>
<li><span class="release-version">3.8</span></li>
<li><span class="release-version">3.7</span></li>
<li><span class="release-version">2.7</span></li>
</ol></div></body></html>`

// VersionServerOptions configures a fake PyPI and python.org server.
type VersionServerOptions struct {
	// Versions maps package names to the version PyPI reports.
	Versions map[string]string

	// DefaultVersion is reported for packages not in Versions.
	DefaultVersion string

	// PyPIStatus, when set, is returned for every PyPI lookup instead of a body.
	PyPIStatus int

	// Page is served for the downloads URL. Defaults to ReleasesPage.
	Page string
}

// VersionServer stands in for pypi.org and python.org.
type VersionServer struct {
	*httptest.Server

	pypiRequests atomic.Int64
}

// NewVersionServer starts a server that is closed when the test ends.
func NewVersionServer(t *testing.T, opts VersionServerOptions) *VersionServer {
	t.Helper()
	if opts.Page == "" {
		opts.Page = ReleasesPage
	}
	if opts.DefaultVersion == "" {
		opts.DefaultVersion = "1.0.0"
	}

	vs := &VersionServer{}
	mux := http.NewServeMux()
	mux.HandleFunc("/pypi/{pkg}/json", func(w http.ResponseWriter, r *http.Request) {
		vs.pypiRequests.Add(1)
		if opts.PyPIStatus != 0 {
			w.WriteHeader(opts.PyPIStatus)
			return
		}
		version, ok := opts.Versions[r.PathValue("pkg")]
		if !ok {
			version = opts.DefaultVersion
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"info": {"version": %q}}`, version)
	})
	mux.HandleFunc("/downloads/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(opts.Page))
	})

	vs.Server = httptest.NewServer(mux)
	t.Cleanup(vs.Close)
	return vs
}

// PyPIURL returns the base URL to use in place of https://pypi.org.
func (s *VersionServer) PyPIURL() string {
	return s.URL
}

// DownloadsURL returns the URL to use in place of the python.org downloads page.
func (s *VersionServer) DownloadsURL() string {
	return s.URL + "/downloads/"
}

// PyPIRequests returns how many PyPI lookups the server has answered.
func (s *VersionServer) PyPIRequests() int64 {
	return s.pypiRequests.Load()
}

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}
