// Package main provides the entrypoint for the footprint CLI.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/carbonwise/carbonwise/internal/cli"
)

// Version is set at compile time via ldflags.
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCmd(Version).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
