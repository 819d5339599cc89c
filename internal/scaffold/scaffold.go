package scaffold

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dpgen-labs/dpgen/internal/catalog"
	"github.com/dpgen-labs/dpgen/internal/datapack"
	"github.com/dpgen-labs/dpgen/internal/vars"
	"github.com/dpgen-labs/dpgen/internal/workspace"
)

// Line terminators accepted by WithLineEnding.
const (
	LineEndingLF   = "lf"
	LineEndingCRLF = "crlf"
)

// ProgressFunc receives the percentage increment after each record.
type ProgressFunc func(increment float64)

// Result holds the outcome of a materialization. Paths are relative to the
// datapack root and use forward slashes.
type Result struct {
	Root    string
	Created []string
	Skipped []string
	Folders []string
	Merged  []string
}

// Materializer writes records onto a workspace filesystem.
type Materializer struct {
	fsys       *workspace.FS
	terminator string
	logger     *log.Logger
}

// Option configures a Materializer.
type Option func(*Materializer)

// WithLineEnding selects LF or CRLF line terminators. Unknown values keep LF.
func WithLineEnding(ending string) Option {
	return func(m *Materializer) {
		if strings.EqualFold(ending, LineEndingCRLF) {
			m.terminator = "\r\n"
		} else {
			m.terminator = "\n"
		}
	}
}

// WithLogger sets the logger for per-record diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(m *Materializer) {
		m.logger = l
	}
}

// New creates a Materializer.
func New(fsys *workspace.FS, opts ...Option) *Materializer {
	m := &Materializer{
		fsys:       fsys,
		terminator: "\n",
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// planned is a record with its path resolved.
type planned struct {
	record catalog.Record
	rel    string
}

// Materialize writes records under root in order. Records that resolve to a
// path already claimed earlier in the same run are coalesced first: an
// Append descriptor pushes its element onto the earlier structured content,
// anything else is dropped. Progress is reported after every remaining
// record. The first I/O error aborts the run; nothing already written is
// removed.
func (m *Materializer) Materialize(root string, records []catalog.Record, c *vars.Container, onProgress ProgressFunc) (*Result, error) {
	result := &Result{Root: root}
	plan := m.coalesce(records, c, result)
	if len(plan) == 0 {
		return result, nil
	}
	increment := 100 / float64(len(plan))

	for _, p := range plan {
		target := filepath.Join(root, filepath.FromSlash(p.rel))

		if p.record.Kind == catalog.KindFolder {
			if err := m.fsys.CreateDir(target); err != nil {
				return result, err
			}
			result.Folders = append(result.Folders, p.rel)
			m.logger.Debug("folder", "path", p.rel)
		} else if m.fsys.PathAccessible(target) {
			result.Skipped = append(result.Skipped, p.rel)
			m.logger.Debug("skipped existing file", "path", p.rel)
		} else {
			if err := m.writeFile(root, target, p.record, c); err != nil {
				return result, err
			}
			result.Created = append(result.Created, p.rel)
			m.logger.Debug("created", "path", p.rel)
		}

		if onProgress != nil {
			onProgress(increment)
		}
	}
	return result, nil
}

func (m *Materializer) coalesce(records []catalog.Record, c *vars.Container, result *Result) []planned {
	var plan []planned
	files := make(map[string]int)

	for _, r := range records {
		rel := path.Clean(vars.Resolve(r.Rel, c))
		if r.Kind == catalog.KindFolder {
			plan = append(plan, planned{record: r, rel: rel})
			continue
		}

		i, seen := files[rel]
		if !seen {
			files[rel] = len(plan)
			plan = append(plan, planned{record: r.Clone(), rel: rel})
			continue
		}

		first := &plan[i].record
		if r.Append != nil && first.Content.IsStructured() &&
			catalog.AppendElem(first.Content.Value, r.Append.Key, r.Append.Elem) {
			result.Merged = append(result.Merged, rel)
			m.logger.Debug("merged duplicate record", "path", rel, "key", r.Append.Key)
			continue
		}
		result.Skipped = append(result.Skipped, rel)
		m.logger.Debug("dropped duplicate record", "path", rel)
	}
	return plan
}

func (m *Materializer) writeFile(root, target string, r catalog.Record, c *vars.Container) error {
	fc := c.With(vars.FileResourcePath, datapack.FileResourcePath(target, root))

	data, err := m.render(r.Content, fc)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", target, err)
	}
	if err := m.fsys.CreateDir(filepath.Dir(target)); err != nil {
		return err
	}
	return m.fsys.CreateFile(target, data)
}

// render produces the file body. Structured content becomes JSON indented
// with four spaces; both forms use the configured line terminator and have
// no trailing terminator.
func (m *Materializer) render(content catalog.Content, c *vars.Container) ([]byte, error) {
	var lines []string
	if content.IsStructured() {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "    ")
		if err := enc.Encode(vars.ResolveValue(content.Value, c)); err != nil {
			return nil, err
		}
		lines = strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	} else {
		lines = make([]string, len(content.Lines))
		for i, l := range content.Lines {
			lines[i] = vars.Resolve(l, c)
		}
	}
	return []byte(strings.Join(lines, m.terminator)), nil
}
