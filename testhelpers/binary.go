// Package testhelpers provides shared test utilities for stoke packages,
// including temporary scenes with controlled mtimes and a shared binary build.
package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// binaryPath is set by TestMain before any test of the package runs
var binaryPath string

// TestMain builds the stoke binary once, runs the package's tests, then
// removes the binary. cleanup, when set, runs after the tests.
func TestMain(m *testing.M, cleanup func()) {
	dir, err := os.MkdirTemp("", "stoke-test-binary-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create temp directory: %v\n", err)
		os.Exit(1)
	}

	path := filepath.Join(dir, "stoke")
	if err := buildBinary(path); err != nil {
		_ = os.RemoveAll(dir)
		fmt.Fprintf(os.Stderr, "Failed to build stoke binary: %v\n", err)
		os.Exit(1)
	}
	binaryPath = path

	code := m.Run()

	_ = os.RemoveAll(dir)
	if cleanup != nil {
		cleanup()
	}
	os.Exit(code)
}

// GetBinary returns the path of the binary built by TestMain.
func GetBinary(t *testing.T) string {
	t.Helper()
	if binaryPath == "" {
		t.Fatal("stoke binary not built: call testhelpers.TestMain from the package's TestMain")
	}
	return binaryPath
}

// buildBinary compiles ./cmd/stoke of the enclosing module into path
func buildBinary(path string) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	root, err := findModuleRoot(wd)
	if err != nil {
		return err
	}

	cmd := exec.Command("go", "build", "-o", path, "./cmd/stoke")
	cmd.Dir = root
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("go build: %s: %w", output, err)
	}
	return nil
}

// findModuleRoot returns the nearest directory at or above dir holding go.mod
func findModuleRoot(dir string) (string, error) {
	for start := dir; ; {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no go.mod found above %s", start)
		}
		dir = parent
	}
}
