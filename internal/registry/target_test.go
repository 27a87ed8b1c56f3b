package registry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRecipeLine(t *testing.T) {
	tests := []struct {
		raw     string
		command string
		mods    Modifier
	}{
		{"echo hi", "echo hi", 0},
		{"@echo hi", "echo hi", ModSilent},
		{"-rm -f out", "rm -f out", ModIgnoreError},
		{"+make -C sub", "make -C sub", ModAlways},
		{"@-false", "false", ModSilent | ModIgnoreError},
		{"-@ false", "false", ModSilent | ModIgnoreError},
		{"+@-  touch x", "touch x", ModSilent | ModIgnoreError | ModAlways},
		{"\t@echo tabbed", "echo tabbed", ModSilent},
		{"@", "", ModSilent},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			line := ParseRecipeLine(tt.raw)
			require.Equal(t, tt.command, line.Command)
			require.Equal(t, tt.mods, line.Mods)
		})
	}
}

func TestModifierString(t *testing.T) {
	require.Equal(t, "", Modifier(0).String())
	require.Equal(t, "@-+", (ModSilent | ModIgnoreError | ModAlways).String())
	require.True(t, (ModSilent | ModAlways).Has(ModAlways))
	require.False(t, ModSilent.Has(ModIgnoreError))
}
