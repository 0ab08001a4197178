package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/devopsgroupeu/StateCraft/cli"
	"github.com/devopsgroupeu/StateCraft/internal/log"
)

// version is overridden at build time via -ldflags.
var version = "1.0.0"

// The main entrypoint for statecraft.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.NewApp(version)

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.New().Error(err.Error())
		os.Exit(1)
	}
}
