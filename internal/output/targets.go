package output

import (
	"cmp"
	"iter"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TargetDoc is a documented target
type TargetDoc struct {
	Name        string
	Description string
}

// CollectTargetDocs drains a (name, description) sequence sorted by name
func CollectTargetDocs(seq iter.Seq2[string, string]) []TargetDoc {
	var docs []TargetDoc
	for name, desc := range seq {
		docs = append(docs, TargetDoc{Name: name, Description: desc})
	}
	slices.SortFunc(docs, func(a, b TargetDoc) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return docs
}

// RenderTargetList renders one line per target: the name left-justified to the
// widest name, then its description
func RenderTargetList(docs []TargetDoc) string {
	width := 0
	for _, d := range docs {
		width = max(width, lipgloss.Width(d.Name))
	}

	nameStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("6")).
		Width(width + 2)

	var b strings.Builder
	for _, d := range docs {
		b.WriteString(nameStyle.Render(d.Name))
		b.WriteString(d.Description)
		b.WriteByte('\n')
	}
	return b.String()
}
