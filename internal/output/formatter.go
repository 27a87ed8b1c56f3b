// Package output renders user-facing text for stoke.
package output

import (
	"github.com/charmbracelet/lipgloss"
)

// ColorTarget colors a target name
func ColorTarget(name string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("6")).
		Render(name)
}

// ColorDim makes text dim/gray
func ColorDim(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Render(text)
}
