package engine

import (
	"slices"

	stokeerrors "stoke.dev/stoke/internal/errors"
	"stoke.dev/stoke/internal/registry"
)

// planner builds depth-first, dependency-first plans. done carries over between
// top-level requests of one invocation so no target is planned twice.
type planner struct {
	reg     *registry.Registry
	done    map[string]bool
	stack   []string
	onStack map[string]int
}

func newPlanner(reg *registry.Registry) *planner {
	return &planner{
		reg:     reg,
		done:    make(map[string]bool),
		onStack: make(map[string]int),
	}
}

// plan returns the targets reachable from name that are not yet planned, in
// execution order
func (p *planner) plan(name string) ([]string, error) {
	var order []string
	if err := p.visit(name, "", &order); err != nil {
		return nil, err
	}
	return order, nil
}

func (p *planner) visit(name, parent string, order *[]string) error {
	if p.done[name] {
		return nil
	}
	if idx, inProgress := p.onStack[name]; inProgress {
		cycle := append(slices.Clone(p.stack[idx:]), name)
		return stokeerrors.NewCyclicDependencyError(cycle)
	}

	target, err := p.reg.Lookup(name)
	if err != nil {
		return stokeerrors.NewUnknownTargetError(name, parent)
	}

	p.onStack[name] = len(p.stack)
	p.stack = append(p.stack, name)
	for _, dep := range target.Deps {
		if err := p.visit(dep, name, order); err != nil {
			return err
		}
	}
	p.stack = p.stack[:len(p.stack)-1]
	delete(p.onStack, name)

	p.done[name] = true
	*order = append(*order, name)
	return nil
}

// Plan returns the execution plan for a single target without running anything
func Plan(reg *registry.Registry, name string) ([]string, error) {
	return newPlanner(reg).plan(name)
}
