package runtime

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"stoke.dev/stoke/internal/config"
	"stoke.dev/stoke/internal/decl"
	"stoke.dev/stoke/internal/engine"
	"stoke.dev/stoke/internal/output"
	"stoke.dev/stoke/internal/recipe"
	"stoke.dev/stoke/internal/registry"
	"stoke.dev/stoke/internal/tui"
)

// Context provides access to the engine and output for commands
type Context struct {
	// Context bounds recipe execution; canceled on interrupt
	Context  context.Context
	Engine   engine.Engine
	Registry *registry.Registry
	Config   *config.Config
	Splog    *tui.Splog
	Dir      string
	File     string
}

// Options selects how a Context is built
type Options struct {
	Context context.Context
	// Dir is the working directory; empty means the process working directory
	Dir string
	// Overrides are applied on top of the configuration file
	Overrides config.Config
	// Explicit names boolean overrides that were set deliberately, even to false
	Explicit   []string
	DryRun     bool
	AlwaysMake bool
	Debug      bool
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
}

// NewContext loads configuration and declarations and wires the engine
func NewContext(opts Options) (*Context, error) {
	dir, err := resolveDir(opts.Dir)
	if err != nil {
		return nil, err
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	cfg, err := config.LoadConfig(dir)
	if err != nil {
		return nil, err
	}
	if err := cfg.Override(opts.Overrides, opts.Explicit...); err != nil {
		return nil, err
	}

	output.ConfigureColor(cfg.Color, opts.Stdout)

	splog, err := tui.NewSplogWithConfig(tui.SplogConfig{
		Out:     opts.Stdout,
		Err:     opts.Stderr,
		LogFile: tui.GetLogFilePath(cfg.LogFile),
		Debug:   opts.Debug,
	})
	if err != nil {
		return nil, err
	}
	splog.SetQuiet(cfg.Silent)

	path, err := decl.Find(dir, cfg.File)
	if err != nil {
		_ = splog.Close()
		return nil, err
	}

	var regOpts []registry.Option
	if cfg.Strict {
		regOpts = append(regOpts, registry.WithStrict())
	}
	file, err := decl.Load(path, regOpts...)
	if err != nil {
		_ = splog.Close()
		return nil, err
	}
	for _, w := range file.Warnings {
		splog.Warn("%s", w)
	}
	splog.Debug("loaded %d targets from %s", file.Registry.Len(), path)

	shell, err := cfg.ShellArgs()
	if err != nil {
		_ = splog.Close()
		return nil, err
	}

	executor := recipe.NewExecutor(recipe.Options{
		Shell:  shell,
		Dir:    dir,
		DryRun: opts.DryRun,
		Silent: cfg.Silent,
		Stdin:  opts.Stdin,
		Stdout: opts.Stdout,
		Stderr: opts.Stderr,
	}, splog)

	eng := engine.NewEngine(file.Registry, executor,
		engine.WithFileSystem(engine.OSFileSystem{Dir: dir}),
		engine.WithAlwaysMake(opts.AlwaysMake),
		engine.WithLogger(splog),
		engine.WithObserver(func(target string, from, to engine.State) {
			if target != "" {
				splog.Debug("%s: %s -> %s", target, from, to)
			}
		}),
	)

	return &Context{
		Context:  opts.Context,
		Engine:   eng,
		Registry: file.Registry,
		Config:   cfg,
		Splog:    splog,
		Dir:      dir,
		File:     path,
	}, nil
}

// DefaultTarget returns the configured default target, falling back to the
// declaration file's default
func (c *Context) DefaultTarget() string {
	if c.Config.DefaultTarget != "" {
		return c.Config.DefaultTarget
	}
	return c.Registry.Default()
}

// Close releases the log file
func (c *Context) Close() error {
	return c.Splog.Close()
}

func resolveDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("invalid directory %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("cannot change to %s: %w", dir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("cannot change to %s: not a directory", dir)
	}
	return abs, nil
}
