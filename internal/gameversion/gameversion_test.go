package gameversion

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dpgen-labs/dpgen/internal/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackFormat(t *testing.T) {
	tests := []struct {
		version string
		want    int
		known   bool
	}{
		{"1.13", 4, true},
		{"1.14.4", 4, true},
		{"1.16.1", 5, true},
		{"1.16.5", 6, true},
		{"1.17.1", 7, true},
		{"1.18.1", 8, true},
		{"1.18.2", 9, true},
		{"1.19.3", 10, true},
		{"1.19.4", 12, true},
		{"1.20.1", 15, true},
		{"1.20.2", 18, true},
		{"1.20.4", 26, true},
		{"1.20.6", 41, true},
		{"1.21", 48, true},
		{"1.21.1", 48, true},
		{"1.21.3", 57, true},
		{"1.21.4", 61, true},
		{"1.21.5", 71, true},
		{"1.21.5-pre1", 71, true},
		{"1.21.6", 80, true},
		{"1.21.8", 81, true},
		{"24w14a", LatestPackFormat(), false},
		{"1.12.2", LatestPackFormat(), false},
		{"2.0", LatestPackFormat(), false},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			got, known := PackFormat(tt.version)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.known, known)
		})
	}
}

func manifestServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"latest":{"release":"1.21.4","snapshot":"25w02a"},"versions":[]}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestResolveExplicit(t *testing.T) {
	r := NewResolver(workspace.Memory(), "", WithManifestURL("http://invalid.invalid"))
	v, err := r.Resolve(context.Background(), "1.20.4")
	require.NoError(t, err)
	assert.Equal(t, "1.20.4", v)
}

func TestResolveLatestCaches(t *testing.T) {
	var hits atomic.Int32
	srv := manifestServer(t, &hits)
	fsys := workspace.Memory()
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	r := NewResolver(fsys, "/home/u/.dpgen", WithManifestURL(srv.URL), WithClock(func() time.Time { return now }))

	v, err := r.Resolve(context.Background(), Latest)
	require.NoError(t, err)
	assert.Equal(t, "1.21.4", v)

	v, err = r.Resolve(context.Background(), LatestSnapshot)
	require.NoError(t, err)
	assert.Equal(t, "25w02a", v)
	assert.Equal(t, int32(1), hits.Load())
	assert.True(t, fsys.PathAccessible("/home/u/.dpgen/version-manifest.json"))

	now = now.Add(25 * time.Hour)
	_, err = r.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestResolveFallsBackToStaleCache(t *testing.T) {
	fsys := workspace.Memory()
	require.NoError(t, fsys.WriteFile("/cache/version-manifest.json",
		[]byte(`{"release":"1.20.1","snapshot":"23w31a","checked_at":"2020-01-01T00:00:00Z"}`)))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := NewResolver(fsys, "/cache", WithManifestURL(srv.URL))
	v, err := r.Resolve(context.Background(), Latest)
	require.NoError(t, err)
	assert.Equal(t, "1.20.1", v)
}

func TestResolveLogsCorruptCache(t *testing.T) {
	var hits atomic.Int32
	srv := manifestServer(t, &hits)
	fsys := workspace.Memory()
	require.NoError(t, fsys.WriteFile("/cache/version-manifest.json", []byte(`{not json`)))

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	r := NewResolver(fsys, "/cache", WithManifestURL(srv.URL), WithLogger(logger))

	v, err := r.Resolve(context.Background(), Latest)
	require.NoError(t, err)
	assert.Equal(t, "1.21.4", v)
	assert.Equal(t, int32(1), hits.Load())
	assert.Contains(t, buf.String(), "ignoring version cache")
	assert.Contains(t, buf.String(), "parsing version cache")

	data, err := fsys.ReadFile("/cache/version-manifest.json")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"release": "1.21.4"`)
}

func TestResolveErrorWithoutCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"latest":{}}`))
	}))
	defer srv.Close()

	r := NewResolver(workspace.Memory(), "", WithManifestURL(srv.URL))
	_, err := r.Resolve(context.Background(), Latest)
	assert.Error(t, err)
}

func TestCacheIsStale(t *testing.T) {
	now := time.Now()
	var nilCache *Cache
	assert.True(t, nilCache.IsStale(now, time.Hour))
	assert.False(t, (&Cache{CheckedAt: now.Add(-time.Minute)}).IsStale(now, time.Hour))
	assert.True(t, (&Cache{CheckedAt: now.Add(-2 * time.Hour)}).IsStale(now, time.Hour))
}
