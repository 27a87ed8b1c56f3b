package decl

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"stoke.dev/stoke/internal/registry"
)

// DefaultFiles are looked up, in order, when no file is given
var DefaultFiles = []string{"Stokefile", "Makefile", "makefile", "stoke.hcl"}

// ErrNoDeclarationFile indicates that none of DefaultFiles exists
var ErrNoDeclarationFile = errors.New("no declaration file found")

// File is a loaded declaration file
type File struct {
	Path     string
	Registry *registry.Registry
	// Warnings lists constructs that were skipped, such as variable assignments
	Warnings []string
}

// Find resolves the declaration file inside dir. An explicit name is used as is.
func Find(dir, explicit string) (string, error) {
	if explicit != "" {
		path := explicit
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("cannot read %s: %w", explicit, err)
		}
		return path, nil
	}

	for _, name := range DefaultFiles {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("cannot read %s: %w", path, err)
		}
	}
	return "", fmt.Errorf("%w in %s (looked for %s)", ErrNoDeclarationFile, dir, strings.Join(DefaultFiles, ", "))
}

// Load parses path into an immutable registry
func Load(path string, opts ...registry.Option) (*File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	b := registry.NewBuilder(opts...)
	file := &File{Path: path}
	name := filepath.Base(path)

	if filepath.Ext(path) == ".hcl" {
		err = ParseHCL(src, name, b, os.Environ())
	} else {
		file.Warnings, err = ParseMakefile(strings.NewReader(string(src)), name, b)
	}
	if err != nil {
		return nil, err
	}

	file.Registry = b.Build()
	return file, nil
}
