// Package gameversion resolves the game version a datapack targets and maps
// it to a data pack format.
package gameversion

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dpgen-labs/dpgen/internal/branding"
	"github.com/dpgen-labs/dpgen/internal/workspace"
)

// Keywords accepted in place of an explicit version.
const (
	Latest         = "latest"
	LatestSnapshot = "latest-snapshot"
)

const (
	// DefaultManifestURL lists every published game version.
	DefaultManifestURL = "https://piston-meta.mojang.com/mc/game/version_manifest_v2.json"
	// DefaultCacheMaxAge is how long a fetched manifest summary is trusted.
	DefaultCacheMaxAge = 24 * time.Hour

	cacheFileName = "version-manifest.json"
)

// Cache holds the latest versions from the last manifest fetch.
type Cache struct {
	Release   string    `json:"release"`
	Snapshot  string    `json:"snapshot"`
	CheckedAt time.Time `json:"checked_at"`
}

// IsStale reports whether c is nil or older than maxAge at now.
func (c *Cache) IsStale(now time.Time, maxAge time.Duration) bool {
	if c == nil {
		return true
	}
	return now.Sub(c.CheckedAt) > maxAge
}

type versionManifest struct {
	Latest struct {
		Release  string `json:"release"`
		Snapshot string `json:"snapshot"`
	} `json:"latest"`
}

// Resolver turns "latest" and "latest-snapshot" into concrete versions.
type Resolver struct {
	fsys        *workspace.FS
	cacheDir    string
	manifestURL string
	maxAge      time.Duration
	httpClient  *http.Client
	now         func() time.Time
	logger      *log.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(r *Resolver) {
		r.httpClient = c
	}
}

// WithManifestURL overrides the version manifest location.
func WithManifestURL(u string) Option {
	return func(r *Resolver) {
		r.manifestURL = u
	}
}

// WithClock sets the time source used for cache expiry.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		r.now = now
	}
}

// WithLogger sets the logger for cache diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(r *Resolver) {
		r.logger = l
	}
}

// NewResolver creates a Resolver caching into cacheDir on fsys. An empty
// cacheDir disables caching.
func NewResolver(fsys *workspace.FS, cacheDir string, opts ...Option) *Resolver {
	r := &Resolver{
		fsys:        fsys,
		cacheDir:    cacheDir,
		manifestURL: DefaultManifestURL,
		maxAge:      DefaultCacheMaxAge,
		httpClient:  http.DefaultClient,
		now:         time.Now,
		logger:      log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns want unchanged unless it is empty, Latest or
// LatestSnapshot, in which case the cached or freshly fetched manifest
// decides.
func (r *Resolver) Resolve(ctx context.Context, want string) (string, error) {
	if want != "" && want != Latest && want != LatestSnapshot {
		return want, nil
	}

	cache, err := r.loadCache()
	if err != nil {
		r.logger.Debug("ignoring version cache", "path", r.cachePath(), "err", err)
	}
	if cache.IsStale(r.now(), r.maxAge) {
		fresh, err := r.fetch(ctx)
		if err != nil {
			if cache == nil {
				return "", err
			}
			r.logger.Debug("using stale version cache", "checked_at", cache.CheckedAt, "err", err)
		} else {
			cache = fresh
			if err := r.saveCache(cache); err != nil {
				r.logger.Debug("could not write version cache", "path", r.cachePath(), "err", err)
			}
		}
	}

	if want == LatestSnapshot {
		return cache.Snapshot, nil
	}
	return cache.Release, nil
}

func (r *Resolver) fetch(ctx context.Context) (*Cache, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.manifestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", branding.UserAgent())

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching version manifest: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("version manifest returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var m versionManifest
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, fmt.Errorf("parsing version manifest: %w", err)
	}
	if m.Latest.Release == "" {
		return nil, fmt.Errorf("version manifest has no latest release")
	}
	return &Cache{Release: m.Latest.Release, Snapshot: m.Latest.Snapshot, CheckedAt: r.now()}, nil
}

func (r *Resolver) cachePath() string {
	return filepath.Join(r.cacheDir, cacheFileName)
}

// loadCache returns nil, nil when caching is off or nothing is cached yet.
func (r *Resolver) loadCache() (*Cache, error) {
	if r.cacheDir == "" || !r.fsys.PathAccessible(r.cachePath()) {
		return nil, nil
	}
	data, err := r.fsys.ReadFile(r.cachePath())
	if err != nil {
		return nil, err
	}

	var c Cache
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing version cache: %w", err)
	}
	return &c, nil
}

func (r *Resolver) saveCache(c *Cache) error {
	if r.cacheDir == "" {
		return nil
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling version cache: %w", err)
	}
	return r.fsys.WriteFile(r.cachePath(), data)
}
