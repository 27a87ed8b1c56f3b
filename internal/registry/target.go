package registry

import (
	"strings"
)

// Modifier is the set of execution modifiers attached to a recipe line
type Modifier uint8

const (
	// ModSilent suppresses echoing the line before it runs (@)
	ModSilent Modifier = 1 << iota
	// ModIgnoreError continues past a failure of this line (-)
	ModIgnoreError
	// ModAlways runs the line even in dry-run mode (+)
	ModAlways
)

// Has reports whether all bits of m2 are set in m
func (m Modifier) Has(m2 Modifier) bool {
	return m&m2 == m2
}

// String returns the modifiers in their prefix form, e.g. "@-"
func (m Modifier) String() string {
	var b strings.Builder
	if m.Has(ModSilent) {
		b.WriteByte('@')
	}
	if m.Has(ModIgnoreError) {
		b.WriteByte('-')
	}
	if m.Has(ModAlways) {
		b.WriteByte('+')
	}
	return b.String()
}

// RecipeLine is one command of a target's recipe with its modifiers already extracted
type RecipeLine struct {
	Command string
	Mods    Modifier
}

// ParseRecipeLine splits the modifier prefix from a raw recipe line.
// Prefix characters may repeat, combine in any order and be separated by whitespace.
func ParseRecipeLine(raw string) RecipeLine {
	var mods Modifier
	s := strings.TrimSpace(raw)
	for len(s) > 0 {
		switch s[0] {
		case '@':
			mods |= ModSilent
		case '-':
			mods |= ModIgnoreError
		case '+':
			mods |= ModAlways
		default:
			return RecipeLine{Command: s, Mods: mods}
		}
		s = strings.TrimLeft(s[1:], " \t")
	}
	return RecipeLine{Command: s, Mods: mods}
}

// ParseRecipe parses every raw line of a recipe
func ParseRecipe(raw []string) []RecipeLine {
	lines := make([]RecipeLine, 0, len(raw))
	for _, r := range raw {
		lines = append(lines, ParseRecipeLine(r))
	}
	return lines
}

// Target is a named unit of work, either file-backed or phony
type Target struct {
	Name        string
	Deps        []string
	Recipe      []RecipeLine
	Phony       bool
	Description string
}

// IsFile returns true if the target is satisfied by a file artifact
func (t *Target) IsFile() bool {
	return !t.Phony
}
