package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcl/internal/platform"
)

func newTestDistributor(t *testing.T, handler http.HandlerFunc) *AzulDistributor {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p := platform.Platform{OS: platform.Linux, Arch: platform.Arm64}
	return NewAzulDistributor(p, WithBaseURL(server.URL+"/packages/"), WithHTTPClient(server.Client()))
}

func TestFetchPackagesQueryAndDecode(t *testing.T) {
	d := newTestDistributor(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/packages/", r.URL.Path)
		assert.Equal(t, "arm64", q.Get("arch"))
		assert.Equal(t, "17", q.Get("java_version"))
		assert.Equal(t, "linux", q.Get("os"))
		assert.Equal(t, "zip", q.Get("archive_type"))
		assert.Equal(t, "false", q.Get("javafx_bundled"))
		assert.Equal(t, "jre", q.Get("java_package_type"))
		assert.Equal(t, "1", q.Get("page_size"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"download_url":"https://cdn.example/zulu17.zip","name":"zulu17.zip","extra":1}]`))
	})

	packages, err := d.FetchPackages(context.Background(), 17)
	require.NoError(t, err)
	require.Len(t, packages, 1)
	assert.Equal(t, Package{DownloadURL: "https://cdn.example/zulu17.zip", Name: "zulu17.zip"}, packages[0])
}

func TestFetchPackagesEmptyIsNotAnError(t *testing.T) {
	d := newTestDistributor(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	packages, err := d.FetchPackages(context.Background(), 99)
	require.NoError(t, err)
	assert.Empty(t, packages)
}

func TestFetchPackagesStatusError(t *testing.T) {
	d := newTestDistributor(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := d.FetchPackages(context.Background(), 17)
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.Status)
}

func TestFetchPackagesParseError(t *testing.T) {
	d := newTestDistributor(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"download_url":`))
	})

	_, err := d.FetchPackages(context.Background(), 17)
	assert.True(t, errors.Is(err, ErrCatalogParse))
}

func TestFetchPackagesUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	d := NewAzulDistributor(platform.Platform{}, WithBaseURL(url))
	_, err := d.FetchPackages(context.Background(), 17)
	assert.True(t, errors.Is(err, ErrCatalogUnreachable))
}

func TestQueryURLAppendsToExistingQuery(t *testing.T) {
	d := NewAzulDistributor(platform.Platform{OS: platform.Windows, Arch: platform.X64}, WithBaseURL("https://example.test/p?release_status=ga"))
	assert.Equal(t,
		"https://example.test/p?release_status=ga&arch=x64&java_version=21&os=windows&archive_type=zip&javafx_bundled=false&java_package_type=jre&page_size=1",
		d.QueryURL(21))
}

func TestKnownReleasesNewestFirst(t *testing.T) {
	releases := KnownReleases()
	require.NotEmpty(t, releases)
	for i := 1; i < len(releases); i++ {
		assert.Greater(t, releases[i-1].Major, releases[i].Major)
	}
}
