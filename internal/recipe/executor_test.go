package recipe_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	stokeerrors "stoke.dev/stoke/internal/errors"
	"stoke.dev/stoke/internal/recipe"
	"stoke.dev/stoke/internal/registry"
)

type captureLogger struct {
	warnings []string
}

func (l *captureLogger) Warn(format string, args ...interface{}) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

func (l *captureLogger) Debug(string, ...interface{}) {}

func newTarget(name string, lines ...string) *registry.Target {
	return &registry.Target{Name: name, Phony: true, Recipe: registry.ParseRecipe(lines)}
}

func newExecutor(t *testing.T, opts recipe.Options) (*recipe.Executor, *bytes.Buffer, *captureLogger) {
	t.Helper()
	var out bytes.Buffer
	if opts.Shell == nil {
		opts.Shell = recipe.DefaultShell
	}
	if opts.Dir == "" {
		opts.Dir = t.TempDir()
	}
	opts.Stdout = &out
	opts.Stderr = &out
	logger := &captureLogger{}
	return recipe.NewExecutor(opts, logger), &out, logger
}

func TestRun(t *testing.T) {
	t.Run("echoes and runs lines in order", func(t *testing.T) {
		exec, out, _ := newExecutor(t, recipe.Options{})

		report, err := exec.Run(context.Background(), newTarget("greet", "echo one", "@echo two"))
		require.NoError(t, err)
		require.Equal(t, 2, report.Ran)
		require.Equal(t, "echo one\none\ntwo\n", out.String())
	})

	t.Run("global silent suppresses echo", func(t *testing.T) {
		exec, out, _ := newExecutor(t, recipe.Options{Silent: true})

		_, err := exec.Run(context.Background(), newTarget("greet", "echo one"))
		require.NoError(t, err)
		require.Equal(t, "one\n", out.String())
	})

	t.Run("zero recipe lines is a no-op success", func(t *testing.T) {
		exec, out, _ := newExecutor(t, recipe.Options{})

		report, err := exec.Run(context.Background(), newTarget("group"))
		require.NoError(t, err)
		require.Zero(t, report.Ran)
		require.Empty(t, out.String())
	})

	t.Run("lines do not share shell state", func(t *testing.T) {
		exec, out, _ := newExecutor(t, recipe.Options{Silent: true})

		_, err := exec.Run(context.Background(), newTarget("vars", "FOO=bar", "echo \"[$FOO]\""))
		require.NoError(t, err)
		require.Equal(t, "[]\n", out.String())
	})

	t.Run("ignored failure continues and is recorded", func(t *testing.T) {
		exec, out, logger := newExecutor(t, recipe.Options{Silent: true})

		report, err := exec.Run(context.Background(), newTarget("lint", "-exit 3", "echo after"))
		require.NoError(t, err)
		require.Equal(t, []recipe.IgnoredFailure{{Line: "exit 3", ExitStatus: 3}}, report.Ignored)
		require.Equal(t, "after\n", out.String())
		require.Len(t, logger.warnings, 1)
		require.Contains(t, logger.warnings[0], "(ignored)")
	})

	t.Run("unmarked failure aborts remaining lines", func(t *testing.T) {
		exec, out, _ := newExecutor(t, recipe.Options{Silent: true})

		report, err := exec.Run(context.Background(), newTarget("test", "-false", "exit 2", "echo unreachable"))
		require.ErrorIs(t, err, stokeerrors.ErrRecipeFailure)

		var failure *stokeerrors.RecipeFailure
		require.ErrorAs(t, err, &failure)
		require.Equal(t, "test", failure.Target)
		require.Equal(t, "exit 2", failure.Line)
		require.Equal(t, 2, failure.ExitStatus)
		require.Equal(t, 2, report.Ran)
		require.NotContains(t, out.String(), "unreachable")
	})

	t.Run("dry run only executes always lines", func(t *testing.T) {
		dir := t.TempDir()
		exec, out, _ := newExecutor(t, recipe.Options{DryRun: true, Dir: dir})

		report, err := exec.Run(context.Background(), newTarget("build", "touch skipped", "@touch hidden", "+touch forced"))
		require.NoError(t, err)
		require.Equal(t, 1, report.Ran)
		require.Equal(t, 2, report.Skipped)
		require.Equal(t, "touch skipped\ntouch hidden\ntouch forced\n", out.String())

		require.NoFileExists(t, filepath.Join(dir, "skipped"))
		require.NoFileExists(t, filepath.Join(dir, "hidden"))
		require.FileExists(t, filepath.Join(dir, "forced"))
	})

	t.Run("canceled context fails without running", func(t *testing.T) {
		exec, out, _ := newExecutor(t, recipe.Options{})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := exec.Run(ctx, newTarget("slow", "-echo never"))
		require.ErrorIs(t, err, stokeerrors.ErrRecipeFailure)
		require.ErrorIs(t, err, context.Canceled)
		require.Empty(t, out.String())
	})

	t.Run("cancel kills the running line and its children", func(t *testing.T) {
		dir := t.TempDir()
		exec, out, _ := newExecutor(t, recipe.Options{Dir: dir, Silent: true})
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go func() {
			time.Sleep(200 * time.Millisecond)
			cancel()
		}()

		start := time.Now()
		_, err := exec.Run(ctx, newTarget("slow", "-sleep 5; touch finished", "echo never"))
		require.Less(t, time.Since(start), 3*time.Second)
		require.ErrorIs(t, err, stokeerrors.ErrRecipeFailure)
		require.ErrorIs(t, err, context.Canceled)
		require.Empty(t, out.String())
		require.NoFileExists(t, filepath.Join(dir, "finished"))
	})

	t.Run("direct exec without a shell", func(t *testing.T) {
		dir := t.TempDir()
		exec, _, _ := newExecutor(t, recipe.Options{Shell: []string{}, Dir: dir, Silent: true})

		_, err := exec.Run(context.Background(), newTarget("mk", "mkdir 'with space'"))
		require.NoError(t, err)
		info, err := os.Stat(filepath.Join(dir, "with space"))
		require.NoError(t, err)
		require.True(t, info.IsDir())
	})

	t.Run("direct exec reports missing command", func(t *testing.T) {
		exec, _, _ := newExecutor(t, recipe.Options{Shell: []string{}, Silent: true})

		_, err := exec.Run(context.Background(), newTarget("mk", "definitely-not-a-command-xyz"))
		var failure *stokeerrors.RecipeFailure
		require.ErrorAs(t, err, &failure)
		require.Equal(t, -1, failure.ExitStatus)
	})
}

func TestDescribe(t *testing.T) {
	exec := recipe.NewExecutor(recipe.Options{Shell: recipe.DefaultShell}, &captureLogger{})
	require.Equal(t, "/bin/sh -c 'echo hi'", exec.Describe("echo hi"))

	direct := recipe.NewExecutor(recipe.Options{}, &captureLogger{})
	require.Equal(t, "echo hi", direct.Describe("echo hi"))
}
