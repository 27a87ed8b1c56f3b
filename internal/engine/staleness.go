package engine

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"stoke.dev/stoke/internal/registry"
)

// IsStale reports whether target must run. Timestamp comparison and the
// "dependency was rebuilt" check are independent and OR'd together.
func IsStale(target *registry.Target, self Stamp, deps []Stamp) bool {
	if target.Phony {
		return true
	}
	if !self.Exists {
		return true
	}
	return hasNewerDependency(self, deps) || hasRebuiltDependency(deps)
}

// hasNewerDependency only compares file dependencies; phony ones have no artifact
func hasNewerDependency(self Stamp, deps []Stamp) bool {
	for _, d := range deps {
		if d.Phony || !d.Exists {
			continue
		}
		if d.ModTime.After(self.ModTime) {
			return true
		}
	}
	return false
}

func hasRebuiltDependency(deps []Stamp) bool {
	for _, d := range deps {
		if d.Rebuilt {
			return true
		}
	}
	return false
}

// OSFileSystem stats paths relative to Dir
type OSFileSystem struct {
	Dir string
}

// Stat implements FileSystem
func (o OSFileSystem) Stat(name string) (fs.FileInfo, error) {
	if o.Dir != "" && !filepath.IsAbs(name) {
		name = filepath.Join(o.Dir, name)
	}
	return os.Stat(name)
}

// stamp reads the artifact state of target. Phony targets are never stat'ed.
func stamp(fsys FileSystem, target *registry.Target, rebuilt bool) (Stamp, error) {
	s := Stamp{Name: target.Name, Phony: target.Phony, Rebuilt: rebuilt}
	if !target.IsFile() {
		return s, nil
	}

	info, err := fsys.Stat(target.Name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return s, err
	}
	s.Exists = true
	s.ModTime = info.ModTime()
	return s, nil
}
