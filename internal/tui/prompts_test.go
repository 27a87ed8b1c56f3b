package tui

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPromptSelectDisabled(t *testing.T) {
	t.Setenv("STOKE_NO_INTERACTIVE", "1")

	_, err := PromptSelect("Target", []SelectOption{{Label: "build", Value: "build"}}, 0)
	require.ErrorIs(t, err, ErrInteractiveDisabled)
}

func TestGetLogFilePath(t *testing.T) {
	t.Setenv("STOKE_LOG_FILE", "/tmp/from-env.log")
	require.Equal(t, "configured.log", GetLogFilePath("configured.log"))
	require.Equal(t, "/tmp/from-env.log", GetLogFilePath(""))

	t.Setenv("STOKE_LOG_FILE", "")
	require.Empty(t, GetLogFilePath(""))
}
