package testhelpers

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Must is a generic helper function that panics if err is not nil,
// otherwise returns the value. This is useful for test setup code
// where errors are not expected and should halt execution immediately.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// ExpectFileContent asserts that name exists in the scene with the given content.
func ExpectFileContent(t *testing.T, s *Scene, name, expected string) {
	t.Helper()
	data, err := os.ReadFile(s.Path(name))
	require.NoError(t, err, "expected %s to exist", name)
	require.Equal(t, expected, string(data))
}

// ExpectNoFile asserts that name does not exist in the scene.
func ExpectNoFile(t *testing.T, s *Scene, name string) {
	t.Helper()
	require.NoFileExists(t, s.Path(name))
}

// ExpectModTime asserts that name still has the modification time Touch gave it.
func ExpectModTime(t *testing.T, s *Scene, name string, offset time.Duration) {
	t.Helper()
	require.True(t, s.ModTime(name).Equal(s.Epoch.Add(offset)), "%s was modified", name)
}
