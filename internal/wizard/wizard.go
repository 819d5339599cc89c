// Package wizard drives the two interactive generation flows: creating a new
// datapack and adding templates to an existing one. Both collect names and
// options through a Prompter, optionally download reference data, and hand
// the flattened selection to the scaffold materializer.
package wizard

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dpgen-labs/dpgen/internal/catalog"
	"github.com/dpgen-labs/dpgen/internal/datapack"
	"github.com/dpgen-labs/dpgen/internal/remote"
	"github.com/dpgen-labs/dpgen/internal/scaffold"
	"github.com/dpgen-labs/dpgen/internal/vars"
	"github.com/dpgen-labs/dpgen/internal/workspace"
)

// Fetcher turns a remote source into file records.
type Fetcher interface {
	Fetch(ctx context.Context, src catalog.RemoteSource, c *vars.Container, onProgress remote.ProgressFunc) ([]catalog.Record, error)
}

// VersionResolver turns a configured data version into a concrete one.
type VersionResolver interface {
	Resolve(ctx context.Context, want string) (string, error)
}

// Settings are the configuration values the flows consume.
type Settings struct {
	DateFormat  string
	DataVersion string
	LineEnding  string
	// PackFormat overrides the format derived from the game version when
	// non-zero.
	PackFormat int
}

// Wizard runs generation flows against one filesystem and prompter.
type Wizard struct {
	fsys     *workspace.FS
	prompter Prompter
	fetcher  Fetcher
	versions VersionResolver
	units    []catalog.Unit
	settings Settings
	logger   *log.Logger
	now      func() time.Time
	report   func(*scaffold.Result)
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithFetcher sets the remote fetcher used for units with remote sources.
func WithFetcher(f Fetcher) Option {
	return func(w *Wizard) {
		w.fetcher = f
	}
}

// WithVersionResolver sets how the data version is resolved.
func WithVersionResolver(r VersionResolver) Option {
	return func(w *Wizard) {
		w.versions = r
	}
}

// WithUnits replaces the offered units. The default is catalog.Builtin().
func WithUnits(units []catalog.Unit) Option {
	return func(w *Wizard) {
		w.units = units
	}
}

// WithSettings sets the configuration values.
func WithSettings(s Settings) Option {
	return func(w *Wizard) {
		w.settings = s
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *log.Logger) Option {
	return func(w *Wizard) {
		w.logger = l
	}
}

// WithClock sets the time source for %date%.
func WithClock(now func() time.Time) Option {
	return func(w *Wizard) {
		w.now = now
	}
}

// WithReport sets a callback that receives every finished materialization
// before the summary is shown.
func WithReport(fn func(*scaffold.Result)) Option {
	return func(w *Wizard) {
		w.report = fn
	}
}

// New creates a Wizard.
func New(fsys *workspace.FS, prompter Prompter, opts ...Option) *Wizard {
	w := &Wizard{
		fsys:     fsys,
		prompter: prompter,
		units:    catalog.Builtin(),
		logger:   log.New(io.Discard),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// finish maps a flow's outcome to the caller's error. Cancellation is
// silent; anything else is shown, logged and marked as reported.
func (w *Wizard) finish(err error) error {
	if err == nil || errors.Is(err, ErrCancelled) {
		return nil
	}
	if IsReported(err) {
		return err
	}

	w.prompter.Error(userMessage(err))
	w.logger.Error("generation failed", "err", err)
	return Reported(err)
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, remote.ErrDownloadTimeout):
		return msgDownloadTimeout
	case errors.Is(err, datapack.ErrNotDatapack):
		return msgNotDatapack
	default:
		return err.Error()
	}
}

func (w *Wizard) materializer() *scaffold.Materializer {
	return scaffold.New(w.fsys,
		scaffold.WithLineEnding(w.settings.LineEnding),
		scaffold.WithLogger(w.logger),
	)
}
