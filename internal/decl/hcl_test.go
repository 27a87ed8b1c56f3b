package decl

import (
	"testing"

	"github.com/stretchr/testify/require"

	stokeerrors "stoke.dev/stoke/internal/errors"
	"stoke.dev/stoke/internal/registry"
)

const sampleHCL = `
default = "test"
phony   = ["clean"]

target "venv" {
  deps        = ["setup.py"]
  phony       = true
  description = "Create the virtualenv"
  recipe      = ["python3 -m venv ${env.VENV_DIR}", "@-${env.VENV_DIR}/bin/pip install -e ."]
}

target "setup.py" {}

target "test" {
  deps   = ["venv"]
  phony  = true
  recipe = ["${env.VENV_DIR}/bin/pytest"]
}

target "clean" {
  description = "Remove artifacts"
  recipe      = ["-rm -rf ${env.VENV_DIR}"]
}
`

func TestParseHCL(t *testing.T) {
	b := registry.NewBuilder()
	err := ParseHCL([]byte(sampleHCL), "stoke.hcl", b, []string{"VENV_DIR=.venv", "IGNORED"})
	require.NoError(t, err)
	reg := b.Build()

	require.Equal(t, []string{"venv", "setup.py", "test", "clean"}, reg.Names())
	require.Equal(t, "test", reg.Default())

	venv, err := reg.Lookup("venv")
	require.NoError(t, err)
	require.True(t, venv.Phony)
	require.Equal(t, []registry.RecipeLine{
		{Command: "python3 -m venv .venv"},
		{Command: ".venv/bin/pip install -e .", Mods: registry.ModSilent | registry.ModIgnoreError},
	}, venv.Recipe)

	clean, err := reg.Lookup("clean")
	require.NoError(t, err)
	require.True(t, clean.Phony)
	require.Equal(t, registry.ModIgnoreError, clean.Recipe[0].Mods)

	setup, err := reg.Lookup("setup.py")
	require.NoError(t, err)
	require.False(t, setup.Phony)
}

func TestParseHCLErrors(t *testing.T) {
	t.Run("syntax error", func(t *testing.T) {
		err := ParseHCL([]byte("target \"a\" {\n"), "stoke.hcl", registry.NewBuilder(), nil)
		require.ErrorIs(t, err, stokeerrors.ErrParse)
	})

	t.Run("unknown attribute", func(t *testing.T) {
		err := ParseHCL([]byte("target \"a\" {\n  command = \"x\"\n}\n"), "stoke.hcl", registry.NewBuilder(), nil)
		var perr *stokeerrors.ParseError
		require.ErrorAs(t, err, &perr)
		require.Equal(t, 2, perr.Line)
	})

	t.Run("missing env variable", func(t *testing.T) {
		err := ParseHCL([]byte("target \"a\" {\n  recipe = [\"${env.NOPE}\"]\n}\n"), "stoke.hcl", registry.NewBuilder(), nil)
		require.ErrorIs(t, err, stokeerrors.ErrParse)
	})
}
