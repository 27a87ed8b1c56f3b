// Package recipe runs the recipe lines of a target as independent processes.
package recipe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/kballard/go-shellquote"

	stokeerrors "stoke.dev/stoke/internal/errors"
	"stoke.dev/stoke/internal/registry"
)

// DefaultShell runs each line through the POSIX shell
var DefaultShell = []string{"/bin/sh", "-c"}

// waitDelay bounds how long a canceled line may hold its output pipes open
const waitDelay = 2 * time.Second

// Logger receives diagnostics from the executor
type Logger interface {
	Warn(format string, args ...interface{})
	Debug(format string, args ...interface{})
}

// Options configures an Executor
type Options struct {
	// Shell is the command prefix each line is appended to. An empty Shell
	// splits the line with shell quoting rules and executes it directly.
	Shell  []string
	Dir    string
	Env    []string
	DryRun bool
	Silent bool
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// IgnoredFailure records a failing line that carried the ignore-error modifier
type IgnoredFailure struct {
	Line       string
	ExitStatus int
}

// Report summarizes one target's recipe run
type Report struct {
	Target  string
	Ran     int
	Skipped int
	Ignored []IgnoredFailure
}

// Executor runs recipe lines sequentially
type Executor struct {
	opts   Options
	logger Logger
}

// NewExecutor creates an Executor
func NewExecutor(opts Options, logger Logger) *Executor {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	return &Executor{opts: opts, logger: logger}
}

// Run executes every recipe line of target in declared order. The first failing
// line without the ignore-error modifier aborts with a RecipeFailure.
func (e *Executor) Run(ctx context.Context, target *registry.Target) (Report, error) {
	report := Report{Target: target.Name}

	for _, line := range target.Recipe {
		if err := ctx.Err(); err != nil {
			return report, stokeerrors.NewRecipeFailure(target.Name, line.Command, -1, err)
		}
		if line.Command == "" {
			continue
		}

		execute := !e.opts.DryRun || line.Mods.Has(registry.ModAlways)
		// dry-run shows silenced lines too, it is the only way to see them
		if !execute || (!e.opts.Silent && !line.Mods.Has(registry.ModSilent)) {
			_, _ = fmt.Fprintln(e.opts.Stdout, line.Command)
		}
		if !execute {
			report.Skipped++
			continue
		}

		status, err := e.runLine(ctx, line.Command)
		report.Ran++
		if err == nil {
			continue
		}

		if ctx.Err() != nil {
			return report, stokeerrors.NewRecipeFailure(target.Name, line.Command, -1, ctx.Err())
		}
		if line.Mods.Has(registry.ModIgnoreError) {
			e.logger.Warn("[%s] %s: exit status %d (ignored)", target.Name, line.Command, status)
			report.Ignored = append(report.Ignored, IgnoredFailure{Line: line.Command, ExitStatus: status})
			continue
		}
		return report, stokeerrors.NewRecipeFailure(target.Name, line.Command, status, err)
	}

	return report, nil
}

// runLine runs one command in its own process and blocks until it exits
func (e *Executor) runLine(ctx context.Context, line string) (int, error) {
	cmd, err := e.command(ctx, line)
	if err != nil {
		return -1, err
	}
	if cmd == nil {
		return 0, nil
	}

	e.logger.Debug("exec: %s", e.Describe(line))
	err = cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), err
	}
	return -1, err
}

func (e *Executor) command(ctx context.Context, line string) (*exec.Cmd, error) {
	var cmd *exec.Cmd
	if len(e.opts.Shell) == 0 {
		args, err := shellquote.Split(line)
		if err != nil {
			return nil, fmt.Errorf("failed to split %q: %w", line, err)
		}
		if len(args) == 0 {
			return nil, nil
		}
		cmd = exec.CommandContext(ctx, args[0], args[1:]...)
	} else {
		args := append(append([]string{}, e.opts.Shell[1:]...), line)
		cmd = exec.CommandContext(ctx, e.opts.Shell[0], args...)
	}

	setProcessGroup(cmd)
	cmd.WaitDelay = waitDelay
	cmd.Dir = e.opts.Dir
	if len(e.opts.Env) > 0 {
		cmd.Env = append(os.Environ(), e.opts.Env...)
	}
	cmd.Stdin = e.opts.Stdin
	cmd.Stdout = e.opts.Stdout
	cmd.Stderr = e.opts.Stderr
	return cmd, nil
}

// Describe renders the shell invocation used for a line, for debug output
func (e *Executor) Describe(line string) string {
	if len(e.opts.Shell) == 0 {
		return line
	}
	return shellquote.Join(append(append([]string{}, e.opts.Shell...), line)...)
}
