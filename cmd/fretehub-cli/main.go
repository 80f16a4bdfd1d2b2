// Package main provides the entry point for fretehub-cli.
//
// fretehub-cli is the command-line client for FreteHub accounts,
// supporting both single-command mode and an interactive shell.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fretehub/fretehub-go/internal/cli/command"
	"github.com/fretehub/fretehub-go/internal/infra/shutdown"
)

// shutdownTimeout is how long a command may take to return after an
// interrupt before the session store is closed under it.
const shutdownTimeout = 3 * time.Second

func main() {
	h := shutdown.NewHandler(shutdownTimeout)
	ctx, stop := h.Notify(context.Background())

	app := command.App()
	err := app.RunContext(shutdown.WithHandler(ctx, h), os.Args)
	h.Shutdown()
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(command.ExitCode(err))
	}
}
