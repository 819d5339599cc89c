//go:build integration

package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// testEnv holds the isolated directories and fake servers of one test.
type testEnv struct {
	HomeDir  string // HOME, holds ~/.dpgen
	WorkDir  string // where datapacks are created
	GitHub   *httptest.Server
	Manifest *httptest.Server

	mu       sync.Mutex
	requests map[string]int
}

func (e *testEnv) hit(path string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.requests[path]++
}

// Hits returns how often path was requested on either server.
func (e *testEnv) Hits(path string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.requests[path]
}

// setupTestEnv points HOME at a temp dir and starts fake GitHub contents and
// version manifest servers. vanilla maps repository paths to file bodies.
func setupTestEnv(t *testing.T, release string, vanilla map[string]string) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:  t.TempDir(),
		WorkDir:  t.TempDir(),
		requests: map[string]int{},
	}
	t.Setenv("HOME", env.HomeDir)
	t.Setenv("GITHUB_TOKEN", "")

	env.Manifest = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.hit(r.URL.Path)
		fmt.Fprintf(w, `{"latest":{"release":%q,"snapshot":"25w99a"},"versions":[]}`, release)
	}))
	t.Cleanup(env.Manifest.Close)

	env.GitHub = httptest.NewServer(githubHandler(env, release+"-data", vanilla))
	t.Cleanup(env.GitHub.Close)

	return env
}

type contentEntry struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Path        string `json:"path"`
	DownloadURL string `json:"download_url,omitempty"`
}

// githubHandler serves the contents API for misode/mcmeta at ref from the
// vanilla map, listing one directory level at a time.
func githubHandler(env *testEnv, ref string, vanilla map[string]string) http.Handler {
	const prefix = "/repos/misode/mcmeta/contents/"
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.hit(r.URL.Path)

		if raw, ok := strings.CutPrefix(r.URL.Path, "/raw/"); ok {
			body, found := vanilla[raw]
			if !found {
				http.NotFound(w, r)
				return
			}
			fmt.Fprint(w, body)
			return
		}

		dir, ok := strings.CutPrefix(r.URL.Path, prefix)
		if !ok || r.URL.Query().Get("ref") != ref {
			http.NotFound(w, r)
			return
		}

		seen := map[string]bool{}
		var entries []contentEntry
		for p := range vanilla {
			rest, ok := strings.CutPrefix(p, dir+"/")
			if !ok {
				continue
			}
			name, _, isDir := strings.Cut(rest, "/")
			if seen[name] {
				continue
			}
			seen[name] = true
			e := contentEntry{Type: "file", Name: name, Path: dir + "/" + name}
			if isDir {
				e.Type = "dir"
			} else {
				e.DownloadURL = env.GitHub.URL + "/raw/" + p
			}
			entries = append(entries, e)
		}
		if len(entries) == 0 {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(entries)
	})
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertDirExists fails the test if the directory does not exist.
func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s (error: %v)", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory, but it is a file", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}

// assertFileEquals fails unless the file holds exactly want.
func assertFileEquals(t *testing.T, path, want string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if string(data) != want {
		t.Errorf("file %s:\n got: %q\nwant: %q", path, string(data), want)
	}
}
