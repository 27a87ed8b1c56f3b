// Package registry holds the declared set of targets for one invocation.
//
// A Registry is assembled through a Builder and is immutable once built, so it
// can be shared by the resolver and the executor without locking.
package registry

import (
	"iter"
	"slices"

	stokeerrors "stoke.dev/stoke/internal/errors"
)

// Option configures a Builder
type Option func(*Builder)

// WithStrict makes redefinition of a target an error instead of an override
func WithStrict() Option {
	return func(b *Builder) {
		b.strict = true
	}
}

// Builder accumulates target declarations
type Builder struct {
	strict  bool
	order   []string
	targets map[string]*Target
	phony   map[string]bool
	deflt   string
}

// NewBuilder creates an empty Builder
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		targets: make(map[string]*Target),
		phony:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Register declares a target. The last registration of a name wins unless the
// builder is strict. A redefinition keeps the position of the first one.
func (b *Builder) Register(name string, deps []string, recipe []RecipeLine, phony bool, description string) error {
	if _, exists := b.targets[name]; exists {
		if b.strict {
			return stokeerrors.NewDuplicateTargetError(name)
		}
	} else {
		b.order = append(b.order, name)
	}

	b.targets[name] = &Target{
		Name:        name,
		Deps:        slices.Clone(deps),
		Recipe:      slices.Clone(recipe),
		Phony:       phony,
		Description: description,
	}
	return nil
}

// MarkPhony flags names as phony. Names may be registered before or after.
func (b *Builder) MarkPhony(names ...string) {
	for _, n := range names {
		b.phony[n] = true
	}
}

// SetDefault records the default target named by the declaration source
func (b *Builder) SetDefault(name string) {
	b.deflt = name
}

// Build freezes the declarations into a Registry
func (b *Builder) Build() *Registry {
	r := &Registry{
		order:   slices.Clone(b.order),
		targets: make(map[string]*Target, len(b.targets)),
		deflt:   b.deflt,
	}
	for name, t := range b.targets {
		cp := *t
		if b.phony[name] {
			cp.Phony = true
		}
		r.targets[name] = &cp
	}
	return r
}

// Registry is an immutable table of targets
type Registry struct {
	order   []string
	targets map[string]*Target
	deflt   string
}

// Lookup returns the target registered under name
func (r *Registry) Lookup(name string) (*Target, error) {
	t, ok := r.targets[name]
	if !ok {
		return nil, stokeerrors.NewUnknownTargetError(name, "")
	}
	return t, nil
}

// Has returns true if name is registered
func (r *Registry) Has(name string) bool {
	_, ok := r.targets[name]
	return ok
}

// Names returns target names in registration order
func (r *Registry) Names() []string {
	return slices.Clone(r.order)
}

// Len returns the number of registered targets
func (r *Registry) Len() int {
	return len(r.order)
}

// Default returns the default target: the one named by the declaration
// source, otherwise the first registered target. Empty if there are none.
func (r *Registry) Default() string {
	if r.deflt != "" {
		return r.deflt
	}
	if len(r.order) > 0 {
		return r.order[0]
	}
	return ""
}

// ListPhonyDocumented yields (name, description) for every phony target with a
// description, in registration order. Each range over the result recomputes it.
func (r *Registry) ListPhonyDocumented() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, name := range r.order {
			t := r.targets[name]
			if !t.Phony || t.Description == "" {
				continue
			}
			if !yield(name, t.Description) {
				return
			}
		}
	}
}
