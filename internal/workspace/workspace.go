// Package workspace is the filesystem boundary used by the datapack
// generator. It wraps a go-billy filesystem so production code runs against
// the host OS while tests run against an in-memory tree.
package workspace

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
)

// Permission constants.
const (
	DirPerm  os.FileMode = 0755
	FilePerm os.FileMode = 0644
)

// FS performs the few filesystem operations the generator needs.
type FS struct {
	fs billy.Filesystem
}

// New wraps an existing billy filesystem.
func New(fsys billy.Filesystem) *FS {
	return &FS{fs: fsys}
}

// OS returns an FS rooted at the host filesystem root. Callers pass absolute
// paths.
func OS() *FS {
	return New(osfs.New("/"))
}

// Memory returns an empty in-memory FS.
func Memory() *FS {
	return New(memfs.New())
}

// PathAccessible reports whether anything exists at path.
func (w *FS) PathAccessible(path string) bool {
	_, err := w.fs.Stat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func (w *FS) IsDir(path string) bool {
	info, err := w.fs.Stat(path)
	return err == nil && info.IsDir()
}

// CreateDir creates path and any missing parents. It is a no-op when the
// directory already exists.
func (w *FS) CreateDir(path string) error {
	if err := w.fs.MkdirAll(path, DirPerm); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	return nil
}

// CreateFile writes data to a new file at path. It fails if the file already
// exists; the parent directory must have been created by the caller.
func (w *FS) CreateFile(path string, data []byte) error {
	f, err := w.fs.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, FilePerm)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// ReadFile returns the contents of the file at path.
func (w *FS) ReadFile(path string) ([]byte, error) {
	f, err := w.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// ReadDir lists the names of the subdirectories of path. A missing path
// yields an empty list.
func (w *FS) ReadDir(path string) ([]string, error) {
	entries, err := w.fs.ReadDir(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", path, err)
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	return dirs, nil
}

// WriteFile writes data to path, replacing any existing file. The parent
// directory is created when missing. Only state files owned by the tool use
// it; generated datapack files go through CreateFile.
func (w *FS) WriteFile(path string, data []byte) error {
	if err := w.CreateDir(filepath.Dir(path)); err != nil {
		return err
	}
	f, err := w.fs.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, FilePerm)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
