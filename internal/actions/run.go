package actions

import (
	"errors"

	"stoke.dev/stoke/internal/engine"
	"stoke.dev/stoke/internal/runtime"
)

// ErrNoTargets is returned when nothing was requested and no default exists
var ErrNoTargets = errors.New("no targets specified and no default target found")

// RunOptions contains options for building targets
type RunOptions struct {
	// Targets to build in order; empty means the default target
	Targets []string
}

// RunAction brings the requested targets up to date
func RunAction(ctx *runtime.Context, opts RunOptions) error {
	targets, err := requestedTargets(ctx, opts.Targets)
	if err != nil {
		return err
	}
	ctx.Splog.Debug("building %v from %s", targets, ctx.File)

	result, err := ctx.Engine.Run(ctx.Context, targets...)
	if err != nil {
		return err
	}

	reportNothingDone(ctx, result)
	return nil
}

func requestedTargets(ctx *runtime.Context, targets []string) ([]string, error) {
	if len(targets) > 0 {
		return targets, nil
	}
	def := ctx.DefaultTarget()
	if def == "" {
		return nil, ErrNoTargets
	}
	return []string{def}, nil
}

// reportNothingDone tells the user when no recipe line was run or echoed
func reportNothingDone(ctx *runtime.Context, result *engine.Result) {
	for _, t := range result.Targets {
		if t.Report.Ran > 0 || t.Report.Skipped > 0 {
			return
		}
	}

	seen := make(map[string]bool, len(result.Requested))
	for _, name := range result.Requested {
		if seen[name] {
			continue
		}
		seen[name] = true

		target, err := ctx.Registry.Lookup(name)
		if err != nil {
			continue
		}
		if target.Phony || len(target.Recipe) == 0 {
			ctx.Splog.Info("Nothing to be done for '%s'.", name)
		} else {
			ctx.Splog.Info("'%s' is up to date.", name)
		}
	}
}
