package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/dpgen-labs/dpgen/internal/branding"
)

// DefaultAPIURL is the public GitHub REST endpoint.
const DefaultAPIURL = "https://api.github.com"

var (
	// ErrFetch is matched by every *FetchError.
	ErrFetch = errors.New("remote fetch failed")
	// ErrNotFound reports a missing repository, ref or path.
	ErrNotFound = errors.New("not found")
	// ErrRateLimited reports an exhausted API quota.
	ErrRateLimited = errors.New("GitHub API rate limit exceeded, set github_token or GITHUB_TOKEN for higher limits")
)

// FetchError describes a failed HTTP request.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetching %s: status %d: %v", e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() []error {
	return []error{ErrFetch, e.Err}
}

// Location addresses a directory (or single file) in a repository.
type Location struct {
	Owner string
	Repo  string
	Ref   string
	Path  string
}

func (l Location) String() string {
	return fmt.Sprintf("%s/%s@%s:%s", l.Owner, l.Repo, l.Ref, l.Path)
}

// Item is one file found by a listing.
type Item struct {
	Path        string
	Name        string
	DownloadURL string
}

// Lister enumerates the files under a location and downloads them.
type Lister interface {
	List(ctx context.Context, loc Location) ([]Item, error)
	Download(ctx context.Context, item Item) ([]byte, error)
}

// GitHub lists repository contents through the GitHub REST API.
type GitHub struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures a GitHub client.
type Option func(*GitHub)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(g *GitHub) {
		g.httpClient = c
	}
}

// WithBaseURL points the client at another API endpoint, such as a GitHub
// Enterprise server or a test server.
func WithBaseURL(u string) Option {
	return func(g *GitHub) {
		if u != "" {
			g.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithToken sends a token for higher rate limits.
func WithToken(token string) Option {
	return func(g *GitHub) {
		g.token = token
	}
}

// NewGitHub creates a GitHub lister.
func NewGitHub(opts ...Option) *GitHub {
	g := &GitHub{
		baseURL:    DefaultAPIURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type contentEntry struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Path        string `json:"path"`
	DownloadURL string `json:"download_url"`
}

// List walks loc recursively and returns its files in API order, directories
// expanded in place.
func (g *GitHub) List(ctx context.Context, loc Location) ([]Item, error) {
	entries, err := g.contents(ctx, loc)
	if err != nil {
		return nil, err
	}

	var items []Item
	for _, e := range entries {
		switch e.Type {
		case "file":
			items = append(items, Item{Path: e.Path, Name: e.Name, DownloadURL: e.DownloadURL})
		case "dir":
			sub := loc
			sub.Path = e.Path
			children, err := g.List(ctx, sub)
			if err != nil {
				return nil, err
			}
			items = append(items, children...)
		}
	}
	return items, nil
}

// Download returns the raw content of item.
func (g *GitHub) Download(ctx context.Context, item Item) ([]byte, error) {
	if item.DownloadURL == "" {
		return nil, &FetchError{URL: item.Path, Err: errors.New("entry has no download URL")}
	}
	return g.get(ctx, item.DownloadURL, "")
}

func (g *GitHub) contents(ctx context.Context, loc Location) ([]contentEntry, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/contents/%s",
		g.baseURL, url.PathEscape(loc.Owner), url.PathEscape(loc.Repo), escapePath(loc.Path))
	if loc.Ref != "" {
		u += "?ref=" + url.QueryEscape(loc.Ref)
	}

	body, err := g.get(ctx, u, "application/vnd.github+json")
	if err != nil {
		return nil, err
	}

	// A directory yields an array, a single file an object.
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var single contentEntry
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return nil, fmt.Errorf("parsing contents of %s: %w", loc, err)
		}
		return []contentEntry{single}, nil
	}

	var entries []contentEntry
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, fmt.Errorf("parsing contents of %s: %w", loc, err)
	}
	return entries, nil
}

func (g *GitHub) get(ctx context.Context, u, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	req.Header.Set("User-Agent", branding.UserAgent())
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: u, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &FetchError{URL: u, Status: resp.StatusCode, Err: ErrNotFound}
	case resp.StatusCode == http.StatusForbidden, resp.StatusCode == http.StatusTooManyRequests:
		return nil, &FetchError{URL: u, Status: resp.StatusCode, Err: ErrRateLimited}
	case resp.StatusCode != http.StatusOK:
		return nil, &FetchError{URL: u, Status: resp.StatusCode, Err: errors.New(http.StatusText(resp.StatusCode))}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: u, Err: fmt.Errorf("reading response body: %w", err)}
	}
	return body, nil
}

func escapePath(p string) string {
	p = path.Clean("/" + p)[1:]
	if p == "" {
		return ""
	}
	parts := strings.Split(p, "/")
	for i, s := range parts {
		parts[i] = url.PathEscape(s)
	}
	return strings.Join(parts, "/")
}
