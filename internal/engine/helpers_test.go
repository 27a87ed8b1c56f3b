package engine_test

import (
	"context"
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	stokeerrors "stoke.dev/stoke/internal/errors"
	"stoke.dev/stoke/internal/recipe"
	"stoke.dev/stoke/internal/registry"
)

type decl struct {
	name   string
	deps   []string
	recipe []string
	phony  bool
}

func buildRegistry(t *testing.T, decls ...decl) *registry.Registry {
	t.Helper()
	b := registry.NewBuilder()
	for _, d := range decls {
		require.NoError(t, b.Register(d.name, d.deps, registry.ParseRecipe(d.recipe), d.phony, ""))
	}
	return b.Build()
}

// fakeFS serves modification times from a map
type fakeFS map[string]time.Time

type fakeInfo struct {
	name    string
	modTime time.Time
}

func (i fakeInfo) Name() string       { return i.name }
func (i fakeInfo) Size() int64        { return 0 }
func (i fakeInfo) Mode() fs.FileMode  { return 0o644 }
func (i fakeInfo) ModTime() time.Time { return i.modTime }
func (i fakeInfo) IsDir() bool        { return false }
func (i fakeInfo) Sys() any           { return nil }

func (f fakeFS) Stat(name string) (fs.FileInfo, error) {
	mt, ok := f[name]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return fakeInfo{name: name, modTime: mt}, nil
}

// fakeRunner records executed targets and lines. A line "fail" fails the
// target; "-fail" is ignored. Each run touches the target in fs when set.
type fakeRunner struct {
	fs    fakeFS
	now   time.Time
	calls []string
	lines []string
}

func (r *fakeRunner) Run(_ context.Context, target *registry.Target) (recipe.Report, error) {
	r.calls = append(r.calls, target.Name)
	report := recipe.Report{Target: target.Name}
	for _, line := range target.Recipe {
		r.lines = append(r.lines, line.Command)
		report.Ran++
		if line.Command != "fail" {
			continue
		}
		if line.Mods.Has(registry.ModIgnoreError) {
			report.Ignored = append(report.Ignored, recipe.IgnoredFailure{Line: line.Command, ExitStatus: 1})
			continue
		}
		return report, stokeerrors.NewRecipeFailure(target.Name, line.Command, 1, nil)
	}
	if r.fs != nil && !target.Phony {
		r.now = r.now.Add(time.Second)
		r.fs[target.Name] = r.now
	}
	return report, nil
}

// cancelingRunner cancels the invocation once its first target finishes
type cancelingRunner struct {
	*fakeRunner
	cancel context.CancelFunc
}

func (r *cancelingRunner) Run(ctx context.Context, target *registry.Target) (recipe.Report, error) {
	defer r.cancel()
	return r.fakeRunner.Run(ctx, target)
}
