package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"stoke.dev/stoke/internal/actions"
	"stoke.dev/stoke/internal/config"
	"stoke.dev/stoke/internal/runtime"
)

// rootFlags holds the values bound to the root command's flags
type rootFlags struct {
	file       string
	directory  string
	dryRun     bool
	silent     bool
	alwaysMake bool
	list       bool
	choose     bool
	plan       bool
	logFile    string
	color      string
	strict     bool
	debug      bool
}

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	var flags rootFlags

	rootCmd := &cobra.Command{
		Use:   "stoke [flags] [target ...]",
		Short: "Stoke brings targets up to date by running the recipes of stale targets in dependency order",
		Long: `Stoke brings targets up to date by running the recipes of stale targets in dependency order.

Targets are declared in a Stokefile, Makefile, or stoke.hcl in the working directory.
With no target, the default target is built.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.list && flags.choose {
				return fmt.Errorf("--list and --choose cannot be used together")
			}

			ctx, err := runtime.NewContext(runtime.Options{
				Context: cmd.Context(),
				Dir:     flags.directory,
				Overrides: config.Config{
					File:    flags.file,
					LogFile: flags.logFile,
					Color:   flags.color,
					Silent:  flags.silent,
					Strict:  flags.strict,
				},
				Explicit:   changedFlags(cmd, "silent", "strict"),
				DryRun:     flags.dryRun,
				AlwaysMake: flags.alwaysMake,
				Debug:      flags.debug,
				Stdin:      cmd.InOrStdin(),
				Stdout:     cmd.OutOrStdout(),
				Stderr:     cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			defer func() { _ = ctx.Close() }()

			switch {
			case flags.list:
				return actions.ListAction(ctx)
			case flags.choose:
				return actions.ChooseAction(ctx)
			case flags.plan:
				return actions.PlanAction(ctx, actions.RunOptions{Targets: args})
			default:
				return actions.RunAction(ctx, actions.RunOptions{Targets: args})
			}
		},
	}

	rootCmd.Flags().StringVarP(&flags.file, "file", "f", "", "Read targets from this declaration file")
	rootCmd.Flags().StringVarP(&flags.directory, "directory", "C", "", "Change to this directory before doing anything")
	rootCmd.Flags().BoolVarP(&flags.dryRun, "dry-run", "n", false, "Print the recipe lines that would run without running them ('+' lines still run)")
	rootCmd.Flags().BoolVarP(&flags.silent, "silent", "s", false, "Don't echo recipe lines")
	rootCmd.Flags().BoolVarP(&flags.alwaysMake, "always-make", "B", false, "Treat every target as stale")
	rootCmd.Flags().BoolVarP(&flags.list, "list", "l", false, "List documented phony targets")
	rootCmd.Flags().BoolVar(&flags.choose, "choose", false, "Pick a documented target to build interactively")
	rootCmd.Flags().BoolVar(&flags.plan, "plan", false, "Print the execution order without running anything")
	rootCmd.Flags().StringVar(&flags.logFile, "log-file", "", "Also write logs to this file (rotated)")
	rootCmd.Flags().StringVar(&flags.color, "color", "", "When to color output: auto, always, or never")
	rootCmd.Flags().BoolVar(&flags.strict, "strict", false, "Fail when a target is declared twice")
	rootCmd.Flags().BoolVar(&flags.debug, "debug", false, "Enable debug logging")

	return rootCmd
}

// changedFlags returns the names among names that were set on the command line
func changedFlags(cmd *cobra.Command, names ...string) []string {
	var changed []string
	for _, name := range names {
		if cmd.Flags().Changed(name) {
			changed = append(changed, name)
		}
	}
	return changed
}
