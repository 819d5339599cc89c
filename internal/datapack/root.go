// Package datapack knows the on-disk conventions of a datapack: how to
// recognize its root, which resource types live under data/<namespace>/, and
// which names are acceptable for packs and namespaces.
package datapack

import (
	"errors"
	"path/filepath"

	"github.com/dpgen-labs/dpgen/internal/workspace"
)

// Well-known entries of a datapack root.
const (
	PackMetaFile = "pack.mcmeta"
	DataDir      = "data"
)

// ErrNotDatapack is returned when a directory was expected to be a datapack
// root but lacks pack.mcmeta or data.
var ErrNotDatapack = errors.New("selected directory is not a datapack")

// IsRoot reports whether dir contains both pack.mcmeta and data.
func IsRoot(fsys *workspace.FS, dir string) bool {
	return fsys.PathAccessible(filepath.Join(dir, PackMetaFile)) &&
		fsys.PathAccessible(filepath.Join(dir, DataDir))
}

// FindRoot walks upward from path and returns the nearest ancestor (or path
// itself) that is a datapack root. ok is false once the filesystem root is
// reached without a match.
func FindRoot(fsys *workspace.FS, path string) (string, bool) {
	for {
		if path == filepath.Dir(path) {
			return "", false
		}
		if IsRoot(fsys, path) {
			return path, true
		}
		path = filepath.Dir(path)
	}
}
