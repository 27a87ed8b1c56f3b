package testhelpers

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"
)

// Scene represents a test scene with a temporary working directory holding
// a declaration file and artifacts with controlled modification times.
type Scene struct {
	t   *testing.T
	Dir string
	// Epoch is the reference time that Touch offsets are relative to
	Epoch time.Time
}

// SceneSetup is a function type for setting up a scene.
type SceneSetup func(*Scene) error

// NewScene creates a new test scene in a temporary directory.
// The directory is removed by t.Cleanup unless DEBUG is set.
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "stoke-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() {
		if os.Getenv("DEBUG") == "" {
			_ = os.RemoveAll(tmpDir)
		}
	})

	scene := &Scene{
		t:     t,
		Dir:   tmpDir,
		Epoch: time.Now().Add(-24 * time.Hour).Truncate(time.Second),
	}

	if setup != nil {
		if err := setup(scene); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
	}
	return scene
}

// Path returns the absolute path of name inside the scene
func (s *Scene) Path(name string) string {
	return filepath.Join(s.Dir, name)
}

// WriteFile writes content to name, creating parent directories
func (s *Scene) WriteFile(name, content string) {
	s.t.Helper()
	path := s.Path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		s.t.Fatalf("Failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		s.t.Fatalf("Failed to write %s: %v", name, err)
	}
}

// Stokefile writes the scene's declaration file
func (s *Scene) Stokefile(content string) {
	s.t.Helper()
	s.WriteFile("Stokefile", content)
}

// Touch creates name if needed and sets its modification time to Epoch plus offset
func (s *Scene) Touch(name string, offset time.Duration) {
	s.t.Helper()
	path := s.Path(name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		s.WriteFile(name, name+"\n")
	}
	mtime := s.Epoch.Add(offset)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		s.t.Fatalf("Failed to set mtime of %s: %v", name, err)
	}
}

// ModTime returns the modification time of name
func (s *Scene) ModTime(name string) time.Time {
	s.t.Helper()
	info, err := os.Stat(s.Path(name))
	if err != nil {
		s.t.Fatalf("Failed to stat %s: %v", name, err)
	}
	return info.ModTime()
}

// RunResult is the outcome of running the stoke binary
type RunResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Run executes binaryPath in the scene directory
func (s *Scene) Run(binaryPath string, args ...string) RunResult {
	s.t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = s.Dir
	cmd.Env = append(os.Environ(), "STOKE_NO_INTERACTIVE=1", "NO_COLOR=1", "STOKE_LOG_FILE=", "DEBUG=")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	result := RunResult{}
	if err := cmd.Run(); err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			s.t.Fatalf("Failed to run %s: %v", binaryPath, err)
		}
		result.ExitCode = exitErr.ExitCode()
	}
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()
	return result
}
