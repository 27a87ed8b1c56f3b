package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"stoke.dev/stoke/internal/cli"
	"stoke.dev/stoke/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cli.NewRootCmd(version, commit, date)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		tui.NewSplog().Error("stoke: %v", err)
		stop()
		os.Exit(1)
	}
}
