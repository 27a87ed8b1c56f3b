package actions

import "stoke.dev/stoke/internal/tui"

// SetPromptSelect replaces the interactive picker until the returned func is called
func SetPromptSelect(fn func(string, []tui.SelectOption, int) (string, error)) func() {
	prev := promptSelect
	promptSelect = fn
	return func() { promptSelect = prev }
}
