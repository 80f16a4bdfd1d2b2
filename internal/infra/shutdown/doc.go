// Package shutdown coordinates process termination for fretehub-cli.
//
// A Handler cancels the command context on SIGINT or SIGTERM and runs the
// registered cleanup hooks (closing the session engine, saving shell
// history). A command blocked on input gets a grace period to return on
// its own; after that the hooks run and the process exits.
//
// Usage:
//
//	h := shutdown.NewHandler(2 * time.Second)
//	ctx, stop := h.Notify(context.Background())
//	defer stop()
//	err := app.RunContext(shutdown.WithHandler(ctx, h), os.Args)
//	h.Shutdown()
package shutdown
