package versions

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	verrors "github.com/JonSteinn/vspy/internal/errors"
)

const (
	testPyPI      = "https://pypi.test"
	testDownloads = "https://python.test/downloads/"
)

// fakeClient serves canned bodies by URL. Unknown URLs answer 404.
type fakeClient struct {
	mu    sync.Mutex
	pages map[string]string
	errs  map[string]error
	calls []string
}

func (f *fakeClient) Get(ctx context.Context, url string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err, ok := f.errs[url]; ok {
		return "", err
	}
	body, ok := f.pages[url]
	if !ok {
		return "", &verrors.HTTPError{URL: url, StatusCode: 404}
	}
	return body, nil
}

func (f *fakeClient) GetJSON(ctx context.Context, url string, v any) error {
	body, err := f.Get(ctx, url)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(body), v)
}

func downloadsPage(t *testing.T) string {
	t.Helper()
	b, err := os.ReadFile("testdata/downloads.html")
	require.NoError(t, err)
	return string(b)
}

func TestPyPI_Version(t *testing.T) {
	client := &fakeClient{pages: map[string]string{
		testPyPI + "/pypi/tox/json":            `{"info": {"version": "13.22.14", "name": "tox"}, "releases": {}}`,
		testPyPI + "/pypi/pytest-timeout/json": `{"info": {"version": "2.1.0"}}`,
		testPyPI + "/pypi/unversioned/json":    `{"info": {}}`,
		testPyPI + "/pypi/vspy/json":           `{"info":{"version":"0.1.0"}}`,
	}}
	pypi := NewPyPI(client, testPyPI+"/")

	tests := []struct {
		pkg  string
		want string
	}{
		{"tox", "13.22.14"},
		{"pytest-timeout", "2.1.0"},
		{"unversioned", ""},
		{"vspy", "0.1.0"},
	}
	for _, tt := range tests {
		t.Run(tt.pkg, func(t *testing.T) {
			rec, err := pypi.Version(context.Background(), tt.pkg)
			require.NoError(t, err)
			assert.Equal(t, Record{Package: tt.pkg, Version: tt.want}, rec)
		})
	}
}

func TestPyPI_VersionNotFound(t *testing.T) {
	pypi := NewPyPI(&fakeClient{}, testPyPI)

	_, err := pypi.Version(context.Background(), "does-not-exist")
	require.Error(t, err)
	assert.True(t, errors.Is(err, verrors.ErrNotFound))
	assert.Contains(t, err.Error(), "does-not-exist")
}

func TestPyPI_DefaultBaseURL(t *testing.T) {
	client := &fakeClient{}
	_, _ = NewPyPI(client, "").Version(context.Background(), "black")
	assert.Equal(t, []string{"https://pypi.org/pypi/black/json"}, client.calls)
}

func TestParseActiveVersions(t *testing.T) {
	tests := []struct {
		name string
		page string
		want []string
	}{
		{
			name: "drops headings and python 2",
			page: downloadsPage(t),
			want: []string{"3.10", "3.9", "3.8", "3.7"},
		},
		{
			name: "trims and skips empty labels",
			page: `<div class="active-release-list-widget row"><ol><li><span class="release-version">
				3.12 </span></li><li><span class="release-version"></span></li></ol></div>`,
			want: []string{"3.12"},
		},
		{
			name: "ignores spans outside the widget",
			page: `<div class="row"><ol><li><span class="release-version">3.11</span></li></ol></div>`,
			want: []string{},
		},
		{
			name: "requires direct children",
			page: `<div class="row active-release-list-widget"><section><ol><li><span class="release-version">3.11</span></li></ol></section></div>`,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseActiveVersions(strings.NewReader(tt.page))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPython_ActiveVersions(t *testing.T) {
	client := &fakeClient{pages: map[string]string{testDownloads: downloadsPage(t)}}

	got, err := NewPython(client, testDownloads).ActiveVersions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"3.10", "3.9", "3.8", "3.7"}, got)
}

func TestPython_ActiveVersionsError(t *testing.T) {
	client := &fakeClient{errs: map[string]error{
		testDownloads: &verrors.HTTPError{URL: testDownloads, StatusCode: 503},
	}}

	_, err := NewPython(client, testDownloads).ActiveVersions(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, verrors.ErrConnectivity))
}

func TestFetchAll(t *testing.T) {
	client := &fakeClient{pages: map[string]string{
		testDownloads:                          downloadsPage(t),
		testPyPI + "/pypi/tox/json":            `{"info": {"version": "13.22.14"}}`,
		testPyPI + "/pypi/pytest-timeout/json": `{"info": {"version": "2.1.0"}}`,
		testPyPI + "/pypi/black/json":          `{"info": {}}`,
	}}

	got, err := FetchAll(context.Background(), client, []string{"tox", "pytest-timeout", "black"}, Sources{
		PyPIURL:      testPyPI,
		DownloadsURL: testDownloads,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"tox":            "13.22.14",
		"pytest-timeout": "2.1.0",
		"black":          "",
	}, got.Dependencies)
	assert.Equal(t, []string{"3.10", "3.9", "3.8", "3.7"}, got.PythonVersions)
	assert.Len(t, client.calls, 4)
}

func TestFetchAll_NoPackages(t *testing.T) {
	client := &fakeClient{pages: map[string]string{testDownloads: downloadsPage(t)}}

	got, err := FetchAll(context.Background(), client, nil, Sources{DownloadsURL: testDownloads})
	require.NoError(t, err)
	assert.Empty(t, got.Dependencies)
	assert.Len(t, got.PythonVersions, 4)
}

func TestFetchAll_FirstFailureWins(t *testing.T) {
	client := &fakeClient{pages: map[string]string{
		testDownloads:               downloadsPage(t),
		testPyPI + "/pypi/tox/json": `{"info": {"version": "13.22.14"}}`,
	}}

	got, err := FetchAll(context.Background(), client, []string{"tox", "missing"}, Sources{
		PyPIURL:      testPyPI,
		DownloadsURL: testDownloads,
	})
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, verrors.ErrNotFound))
}

func TestFetchAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FetchAll(ctx, &fakeClient{}, []string{"tox"}, Sources{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestSortVersions(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"page order", []string{"3.10", "3.9", "3.8", "3.7"}, []string{"3.7", "3.8", "3.9", "3.10"}},
		{"shuffled", []string{"3.10", "3.7", "3.9", "3.8"}, []string{"3.7", "3.8", "3.9", "3.10"}},
		{"numeric not lexical", []string{"3.9", "3.11", "3.10"}, []string{"3.9", "3.10", "3.11"}},
		{"patch components", []string{"3.9.1", "3.9", "3.8.12"}, []string{"3.8.12", "3.9", "3.9.1"}},
		{"empty", []string{}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := slices.Clone(tt.in)
			got, err := SortVersions(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, in, tt.in, "input must not be reordered")
		})
	}
}

func TestSortVersions_Invalid(t *testing.T) {
	_, err := SortVersions([]string{"3.10", "three"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "three")
}
