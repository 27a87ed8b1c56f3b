package decl

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	stokeerrors "stoke.dev/stoke/internal/errors"
	"stoke.dev/stoke/internal/registry"
)

// hclRoot decodes the top level of an HCL declaration file
type hclRoot struct {
	Default *string      `hcl:"default,optional"`
	Phony   []string     `hcl:"phony,optional"`
	Targets []*hclTarget `hcl:"target,block"`
}

type hclTarget struct {
	Name        string   `hcl:"name,label"`
	Deps        []string `hcl:"deps,optional"`
	Recipe      []string `hcl:"recipe,optional"`
	Phony       bool     `hcl:"phony,optional"`
	Description string   `hcl:"description,optional"`
}

// ParseHCL decodes target blocks from src into b. environ is exposed to
// expressions as the env object ("KEY=value" entries, as os.Environ returns).
func ParseHCL(src []byte, name string, b *registry.Builder, environ []string) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, name)
	if diags.HasErrors() {
		return diagsError(name, diags)
	}

	var root hclRoot
	diags = gohcl.DecodeBody(file.Body, newEvalContext(environ), &root)
	if diags.HasErrors() {
		return diagsError(name, diags)
	}

	for _, t := range root.Targets {
		if err := b.Register(t.Name, t.Deps, registry.ParseRecipe(t.Recipe), t.Phony, t.Description); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	b.MarkPhony(root.Phony...)
	if root.Default != nil {
		b.SetDefault(*root.Default)
	}
	return nil
}

func newEvalContext(environ []string) *hcl.EvalContext {
	env := make(map[string]cty.Value, len(environ))
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		env[key] = cty.StringVal(value)
	}

	envVal := cty.EmptyObjectVal
	if len(env) > 0 {
		envVal = cty.ObjectVal(env)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": envVal},
	}
}

// diagsError reports the first error diagnostic as a ParseError
func diagsError(name string, diags hcl.Diagnostics) error {
	for _, d := range diags {
		if d.Severity != hcl.DiagError {
			continue
		}
		line := 0
		if d.Subject != nil {
			line = d.Subject.Start.Line
		}
		msg := d.Summary
		if d.Detail != "" {
			msg += "; " + d.Detail
		}
		return stokeerrors.NewParseError(name, line, msg)
	}
	return fmt.Errorf("failed to parse HCL file %s: %w", name, diags)
}
