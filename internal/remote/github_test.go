package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContentsServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	var srv *httptest.Server

	mux.HandleFunc("/repos/misode/mcmeta/contents/data/minecraft/tags/block", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1.21-data", r.URL.Query().Get("ref"))
		json.NewEncoder(w).Encode([]map[string]string{
			{"type": "file", "name": "logs.json", "path": "data/minecraft/tags/block/logs.json", "download_url": srv.URL + "/raw/logs.json"},
			{"type": "dir", "name": "mineable", "path": "data/minecraft/tags/block/mineable"},
		})
	})
	mux.HandleFunc("/repos/misode/mcmeta/contents/data/minecraft/tags/block/mineable", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]string{
			{"type": "file", "name": "axe.json", "path": "data/minecraft/tags/block/mineable/axe.json", "download_url": srv.URL + "/raw/axe.json"},
		})
	})
	mux.HandleFunc("/repos/misode/mcmeta/contents/pack.mcmeta", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"type": "file", "name": "pack.mcmeta", "path": "pack.mcmeta", "download_url": srv.URL + "/raw/pack.mcmeta",
		})
	})
	mux.HandleFunc("/raw/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{\n  \"values\": []\n}\n"))
	})
	mux.HandleFunc("/repos/misode/mcmeta/contents/limited", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	mux.HandleFunc("/repos/misode/mcmeta/contents/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestGitHubListRecursive(t *testing.T) {
	srv := newContentsServer(t)
	g := NewGitHub(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))

	items, err := g.List(context.Background(), Location{
		Owner: "misode", Repo: "mcmeta", Ref: "1.21-data", Path: "data/minecraft/tags/block",
	})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "data/minecraft/tags/block/logs.json", items[0].Path)
	assert.Equal(t, "logs.json", items[0].Name)
	assert.Equal(t, "data/minecraft/tags/block/mineable/axe.json", items[1].Path)
}

func TestGitHubListSingleFile(t *testing.T) {
	srv := newContentsServer(t)
	g := NewGitHub(WithBaseURL(srv.URL))

	items, err := g.List(context.Background(), Location{Owner: "misode", Repo: "mcmeta", Path: "pack.mcmeta"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "pack.mcmeta", items[0].Name)
}

func TestGitHubDownload(t *testing.T) {
	srv := newContentsServer(t)
	g := NewGitHub(WithBaseURL(srv.URL))

	data, err := g.Download(context.Background(), Item{DownloadURL: srv.URL + "/raw/logs.json"})
	require.NoError(t, err)
	assert.Contains(t, string(data), "values")

	_, err = g.Download(context.Background(), Item{Path: "x"})
	assert.ErrorIs(t, err, ErrFetch)
}

func TestGitHubErrors(t *testing.T) {
	srv := newContentsServer(t)
	g := NewGitHub(WithBaseURL(srv.URL))
	ctx := context.Background()

	_, err := g.List(ctx, Location{Owner: "misode", Repo: "mcmeta", Path: "missing"})
	assert.ErrorIs(t, err, ErrFetch)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = g.List(ctx, Location{Owner: "misode", Repo: "mcmeta", Path: "limited"})
	assert.ErrorIs(t, err, ErrRateLimited)

	_, err = g.List(ctx, Location{Owner: "misode", Repo: "mcmeta", Path: "broken"})
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusBadGateway, fe.Status)
}

func TestGitHubSendsToken(t *testing.T) {
	var auth, agent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		agent = r.Header.Get("User-Agent")
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	g := NewGitHub(WithBaseURL(srv.URL+"/"), WithToken("secret"))
	items, err := g.List(context.Background(), Location{Owner: "o", Repo: "r", Path: "p"})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, "Bearer secret", auth)
	assert.NotEmpty(t, agent)
}

func TestEscapePath(t *testing.T) {
	assert.Equal(t, "", escapePath(""))
	assert.Equal(t, "data/minecraft/tags", escapePath("/data/minecraft/tags/"))
	assert.Equal(t, "a%20b/c", escapePath("a b/c"))
}
