package engine

import (
	"context"
	"fmt"

	"stoke.dev/stoke/internal/registry"
)

// Engine resolves and builds targets of a registry
type Engine interface {
	// Plan returns the execution plan for the requested targets without running anything
	Plan(targets ...string) ([]string, error)
	// Run brings the requested targets up to date, in order
	Run(ctx context.Context, targets ...string) (*Result, error)
}

// Option configures the engine
type Option func(*engineImpl)

// WithFileSystem sets where artifact timestamps are read from
func WithFileSystem(fsys FileSystem) Option {
	return func(e *engineImpl) {
		e.fs = fsys
	}
}

// WithAlwaysMake treats every reached target as stale
func WithAlwaysMake(always bool) Option {
	return func(e *engineImpl) {
		e.alwaysMake = always
	}
}

// WithLogger sets the progress logger
func WithLogger(logger Logger) Option {
	return func(e *engineImpl) {
		e.logger = logger
	}
}

// WithObserver is notified of every state transition
func WithObserver(fn TransitionFunc) Option {
	return func(e *engineImpl) {
		e.observer = fn
	}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}

type engineImpl struct {
	reg        *registry.Registry
	runner     Runner
	fs         FileSystem
	logger     Logger
	observer   TransitionFunc
	alwaysMake bool
}

// NewEngine creates an engine over an immutable registry
func NewEngine(reg *registry.Registry, runner Runner, opts ...Option) Engine {
	e := &engineImpl{
		reg:    reg,
		runner: runner,
		fs:     OSFileSystem{},
		logger: nopLogger{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *engineImpl) Plan(targets ...string) ([]string, error) {
	p := newPlanner(e.reg)
	var all []string
	for _, name := range targets {
		order, err := p.plan(name)
		if err != nil {
			return nil, err
		}
		all = append(all, order...)
	}
	return all, nil
}

func (e *engineImpl) Run(ctx context.Context, targets ...string) (*Result, error) {
	m := &machine{state: StateIdle, observer: e.observer}
	result := &Result{Requested: targets}
	fail := func(target string, err error) (*Result, error) {
		if terr := m.transition(target, StateFailed); terr != nil {
			return result, fmt.Errorf("%w (%v)", err, terr)
		}
		result.State = m.state
		return result, err
	}

	if err := m.transition("", StateResolving); err != nil {
		return result, err
	}

	// Resolve everything first so unknown targets and cycles abort before any recipe runs
	plan, err := e.Plan(targets...)
	if err != nil {
		return fail("", err)
	}
	result.Plan = plan
	e.logger.Debug("plan: %v", plan)

	rebuilt := make(map[string]bool, len(plan))
	for _, name := range plan {
		if err := ctx.Err(); err != nil {
			return fail(name, fmt.Errorf("interrupted before %s: %w", name, err))
		}
		target, err := e.reg.Lookup(name)
		if err != nil {
			return fail(name, err)
		}

		if err := m.transition(name, StateChecking); err != nil {
			return result, err
		}
		stale, err := e.isStale(target, rebuilt)
		if err != nil {
			return fail(name, err)
		}

		tr := TargetResult{Name: name, Outcome: OutcomeFresh}
		if stale {
			e.logger.Debug("%s is stale", name)
			if err := m.transition(name, StateStale); err != nil {
				return result, err
			}
			if err := m.transition(name, StateExecuting); err != nil {
				return result, err
			}
			report, err := e.runner.Run(ctx, target)
			tr.Outcome = OutcomeExecuted
			tr.Report = report
			result.Targets = append(result.Targets, tr)
			if err != nil {
				return fail(name, err)
			}
			rebuilt[name] = true
		} else {
			e.logger.Debug("%s is up to date", name)
			if err := m.transition(name, StateFresh); err != nil {
				return result, err
			}
			result.Targets = append(result.Targets, tr)
		}

		if err := m.transition(name, StateCompleted); err != nil {
			return result, err
		}
		if err := m.transition("", StateResolving); err != nil {
			return result, err
		}
	}

	if err := m.transition("", StateDone); err != nil {
		return result, err
	}
	result.State = m.state
	return result, nil
}

func (e *engineImpl) isStale(target *registry.Target, rebuilt map[string]bool) (bool, error) {
	if e.alwaysMake {
		return true, nil
	}

	self, err := stamp(e.fs, target, false)
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", target.Name, err)
	}

	deps := make([]Stamp, 0, len(target.Deps))
	for _, name := range target.Deps {
		dep, err := e.reg.Lookup(name)
		if err != nil {
			return false, err
		}
		s, err := stamp(e.fs, dep, rebuilt[name])
		if err != nil {
			return false, fmt.Errorf("failed to stat %s: %w", name, err)
		}
		deps = append(deps, s)
	}

	return IsStale(target, self, deps), nil
}
