package engine

import (
	"context"
	"io/fs"
	"time"

	"stoke.dev/stoke/internal/recipe"
	"stoke.dev/stoke/internal/registry"
)

// Runner executes the recipe of a stale target
type Runner interface {
	Run(ctx context.Context, target *registry.Target) (recipe.Report, error)
}

// FileSystem provides artifact modification times
type FileSystem interface {
	Stat(name string) (fs.FileInfo, error)
}

// Logger receives progress from the engine
type Logger interface {
	Debug(format string, args ...interface{})
}

// Stamp is what the staleness evaluator knows about one artifact
type Stamp struct {
	Name    string
	Phony   bool
	Exists  bool
	ModTime time.Time
	// Rebuilt is true when the target's recipe ran earlier in this invocation
	Rebuilt bool
}

// Outcome is how a planned target was handled
type Outcome int

const (
	// OutcomeFresh indicates the target was up to date
	OutcomeFresh Outcome = iota
	// OutcomeExecuted indicates the target's recipe ran
	OutcomeExecuted
)

func (o Outcome) String() string {
	if o == OutcomeExecuted {
		return "executed"
	}
	return "fresh"
}

// TargetResult records the handling of one planned target
type TargetResult struct {
	Name    string
	Outcome Outcome
	Report  recipe.Report
}

// Result summarizes one invocation
type Result struct {
	Requested []string
	Plan      []string
	Targets   []TargetResult
	State     State
}

// Executed returns the names of targets whose recipe ran, in order
func (r *Result) Executed() []string {
	var names []string
	for _, t := range r.Targets {
		if t.Outcome == OutcomeExecuted {
			names = append(names, t.Name)
		}
	}
	return names
}

// LinesRun returns the number of recipe lines executed across all targets
func (r *Result) LinesRun() int {
	n := 0
	for _, t := range r.Targets {
		n += t.Report.Ran
	}
	return n
}
