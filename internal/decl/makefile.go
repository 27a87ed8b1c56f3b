package decl

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	stokeerrors "stoke.dev/stoke/internal/errors"
	"stoke.dev/stoke/internal/registry"
)

var (
	defaultGoalPattern = regexp.MustCompile(`^\.DEFAULT_GOAL\s*:?=\s*(\S*)\s*$`)
	assignmentPattern  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*\s*(:{1,3}=|\?=|\+=|!=|=)`)
)

// rule is a declaration whose recipe is still being read
type rule struct {
	names       []string
	deps        []string
	recipe      []string
	description string
}

type makefileParser struct {
	file     string
	builder  *registry.Builder
	current  *rule
	warnings []string
}

// ParseMakefile reads make-style declarations from r into b. name is used in
// error messages.
func ParseMakefile(r io.Reader, name string, b *registry.Builder) ([]string, error) {
	p := &makefileParser{file: name, builder: b}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		start := lineNo
		for strings.HasSuffix(line, `\`) && scanner.Scan() {
			lineNo++
			line = strings.TrimRight(strings.TrimSuffix(line, `\`), " \t") + " " + strings.TrimLeft(scanner.Text(), " \t")
		}
		if err := p.parseLine(line, start); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	if err := p.flush(); err != nil {
		return nil, err
	}
	return p.warnings, nil
}

func (p *makefileParser) parseLine(line string, lineNo int) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}

	if line[0] == '\t' || line[0] == ' ' {
		if p.current == nil {
			if strings.HasPrefix(strings.TrimSpace(line), "#") {
				return nil
			}
			return stokeerrors.NewParseError(p.file, lineNo, "recipe commences before first target")
		}
		p.current.recipe = append(p.current.recipe, strings.TrimSpace(line))
		return nil
	}

	if strings.HasPrefix(line, "#") {
		return nil
	}

	// Variable definitions end the current rule context
	if m := defaultGoalPattern.FindStringSubmatch(line); m != nil {
		p.builder.SetDefault(m[1])
		return p.flush()
	}
	if assignmentPattern.MatchString(line) {
		if err := p.flush(); err != nil {
			return err
		}
		p.warnings = append(p.warnings, fmt.Sprintf("%s:%d: variable assignments are not supported, line skipped", p.file, lineNo))
		return nil
	}

	return p.parseRule(line, lineNo)
}

func (p *makefileParser) parseRule(line string, lineNo int) error {
	if err := p.flush(); err != nil {
		return err
	}

	colon := strings.Index(line, ":")
	if colon < 0 {
		return stokeerrors.NewParseError(p.file, lineNo, "missing separator")
	}

	names := strings.Fields(line[:colon])
	if len(names) == 0 {
		return stokeerrors.NewParseError(p.file, lineNo, "missing target name")
	}

	rest := strings.TrimLeft(line[colon+1:], ":")
	deps, inline, description := splitRuleTail(rest)

	if names[0] == ".PHONY" {
		p.builder.MarkPhony(strings.Fields(deps)...)
		return nil
	}

	var targets []string
	for _, n := range names {
		switch {
		case strings.HasPrefix(n, "."):
			p.warnings = append(p.warnings, fmt.Sprintf("%s:%d: special target %s is not supported, ignored", p.file, lineNo, n))
		case strings.Contains(n, "%"):
			p.warnings = append(p.warnings, fmt.Sprintf("%s:%d: pattern rule %s is not supported, ignored", p.file, lineNo, n))
		default:
			targets = append(targets, n)
		}
	}

	// Ignored rules still swallow their recipe lines
	p.current = &rule{
		names:       targets,
		deps:        strings.Fields(deps),
		recipe:      inline,
		description: description,
	}
	return nil
}

// splitRuleTail separates the dependency list from what follows it. Whichever
// of ';' and '#' comes first wins: after ';' the rest of the line is the first
// recipe line, verbatim. After '#' it is a comment, and a "## text" comment is
// the description. Anything else means "no description".
func splitRuleTail(rest string) (deps string, inline []string, description string) {
	cut := strings.IndexAny(rest, ";#")
	if cut < 0 {
		return rest, nil, ""
	}
	deps = rest[:cut]
	tail := rest[cut:]

	if tail[0] == ';' {
		if cmd := strings.TrimSpace(tail[1:]); cmd != "" {
			inline = []string{cmd}
		}
		return deps, inline, ""
	}
	if strings.HasPrefix(tail, "##") {
		description = strings.TrimSpace(strings.TrimLeft(tail, "#"))
	}
	return deps, nil, description
}

// flush registers the rule being read, if any
func (p *makefileParser) flush() error {
	r := p.current
	p.current = nil
	if r == nil {
		return nil
	}

	recipe := registry.ParseRecipe(r.recipe)
	for _, name := range r.names {
		if err := p.builder.Register(name, r.deps, recipe, false, r.description); err != nil {
			return fmt.Errorf("%s: %w", p.file, err)
		}
	}
	return nil
}
