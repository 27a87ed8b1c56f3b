package registry_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	stokeerrors "stoke.dev/stoke/internal/errors"
	"stoke.dev/stoke/internal/registry"
)

func TestRegister(t *testing.T) {
	t.Run("last registration wins by default", func(t *testing.T) {
		b := registry.NewBuilder()
		require.NoError(t, b.Register("build", []string{"a"}, nil, false, "first"))
		require.NoError(t, b.Register("test", nil, nil, true, ""))
		require.NoError(t, b.Register("build", []string{"b"}, registry.ParseRecipe([]string{"cc"}), false, ""))
		reg := b.Build()

		target, err := reg.Lookup("build")
		require.NoError(t, err)
		require.Equal(t, []string{"b"}, target.Deps)
		require.Empty(t, target.Description)
		require.Len(t, target.Recipe, 1)
		require.Equal(t, []string{"build", "test"}, reg.Names())
		require.Equal(t, 2, reg.Len())
	})

	t.Run("strict builder rejects redefinition", func(t *testing.T) {
		b := registry.NewBuilder(registry.WithStrict())
		require.NoError(t, b.Register("build", nil, nil, false, ""))
		err := b.Register("build", nil, nil, false, "")
		require.ErrorIs(t, err, stokeerrors.ErrDuplicateTarget)
	})

	t.Run("registry is isolated from builder slices", func(t *testing.T) {
		deps := []string{"a"}
		b := registry.NewBuilder()
		require.NoError(t, b.Register("x", deps, nil, false, ""))
		reg := b.Build()
		deps[0] = "mutated"

		target, err := reg.Lookup("x")
		require.NoError(t, err)
		require.Equal(t, "a", target.Deps[0])
	})
}

func TestMarkPhony(t *testing.T) {
	b := registry.NewBuilder()
	b.MarkPhony("clean")
	require.NoError(t, b.Register("clean", nil, nil, false, "Remove artifacts"))
	require.NoError(t, b.Register("out", nil, nil, false, ""))
	b.MarkPhony("lint")
	require.NoError(t, b.Register("lint", nil, nil, false, ""))
	reg := b.Build()

	clean, err := reg.Lookup("clean")
	require.NoError(t, err)
	require.True(t, clean.Phony)

	lint, err := reg.Lookup("lint")
	require.NoError(t, err)
	require.True(t, lint.Phony)

	out, err := reg.Lookup("out")
	require.NoError(t, err)
	require.True(t, out.IsFile())
}

func TestLookupUnknown(t *testing.T) {
	reg := registry.NewBuilder().Build()
	_, err := reg.Lookup("ghost")
	require.ErrorIs(t, err, stokeerrors.ErrUnknownTarget)
	require.False(t, reg.Has("ghost"))
}

func TestDefault(t *testing.T) {
	t.Run("empty registry", func(t *testing.T) {
		require.Empty(t, registry.NewBuilder().Build().Default())
	})

	t.Run("first registered", func(t *testing.T) {
		b := registry.NewBuilder()
		require.NoError(t, b.Register("all", nil, nil, true, ""))
		require.NoError(t, b.Register("clean", nil, nil, true, ""))
		require.Equal(t, "all", b.Build().Default())
	})

	t.Run("explicit default", func(t *testing.T) {
		b := registry.NewBuilder()
		require.NoError(t, b.Register("all", nil, nil, true, ""))
		b.SetDefault("help")
		require.Equal(t, "help", b.Build().Default())
	})
}

func TestListPhonyDocumented(t *testing.T) {
	b := registry.NewBuilder()
	require.NoError(t, b.Register("venv", nil, nil, true, "Create the virtualenv"))
	require.NoError(t, b.Register("out.txt", nil, nil, false, "file targets are not listed"))
	require.NoError(t, b.Register("clean", nil, nil, true, ""))
	require.NoError(t, b.Register("lint", nil, nil, true, "Run linters"))
	reg := b.Build()

	collect := func() [][2]string {
		var out [][2]string
		for name, desc := range reg.ListPhonyDocumented() {
			out = append(out, [2]string{name, desc})
		}
		return out
	}

	expected := [][2]string{
		{"venv", "Create the virtualenv"},
		{"lint", "Run linters"},
	}
	require.Equal(t, expected, collect())
	// restartable
	require.Equal(t, expected, collect())

	// early break
	count := 0
	for range reg.ListPhonyDocumented() {
		count++
		break
	}
	require.Equal(t, 1, count)
}
