package command

import (
	"context"
	"errors"

	"github.com/urfave/cli/v2"

	"github.com/fretehub/fretehub-go/internal/cli/config"
	"github.com/fretehub/fretehub-go/internal/cli/connection"
	"github.com/fretehub/fretehub-go/internal/cli/repl"
	"github.com/fretehub/fretehub-go/internal/infra/confloader"
	"github.com/fretehub/fretehub-go/internal/infra/shutdown"
)

var errNestedShell = errors.New("already in a shell")

// ShellCommand returns the interactive shell command.
func ShellCommand() *cli.Command {
	return &cli.Command{
		Name:  "shell",
		Usage: "Start an interactive shell sharing one session",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-watch",
				Usage: "Do not reload the configuration file when it changes",
			},
		},
		Action: shell,
	}
}

// shell runs every line as a command of a fresh app bound to this
// runtime, so the session store, client and metrics live as long as the
// shell does.
func shell(c *cli.Context) error {
	rt := GetRuntime(c)
	if !rt.enterShell() {
		return errNestedShell
	}
	defer rt.leaveShell()

	if !c.Bool("no-watch") {
		if w := watchConfig(rt); w != nil {
			defer w.Stop()
		}
	}

	exec := func(ctx context.Context, args []string) error {
		sub := App()
		sub.Metadata = map[string]any{runtimeKey: rt}
		sub.Reader = c.App.Reader
		sub.Writer = rt.out
		sub.ErrWriter = rt.errw
		sub.HideVersion = true
		return sub.RunContext(ctx, append([]string{c.App.Name}, args...))
	}

	r := repl.New(exec,
		repl.WithIO(rt.Prompter().Reader(), rt.out),
		repl.WithPrompt(func() string { return shellPrompt(rt) }),
		repl.WithCompleter(repl.NewCompleter(commandPaths(c.App.Commands, ""))),
		repl.WithHistory(repl.NewHistory(rt.Config().HistoryFile, repl.DefaultHistorySize)),
	)

	if h, ok := shutdown.FromContext(c.Context); ok {
		h.OnShutdown(func(context.Context) error { return r.History().Save() })
	}

	rt.Printer().Infof("FreteHub shell for %s. Type 'help' for commands, 'exit' to quit.",
		connection.NormalizeServer(rt.Config().Server))
	return r.Run(c.Context)
}

// watchConfig reloads the runtime when the configuration file changes.
// It returns nil when the file's directory cannot be watched.
func watchConfig(rt *Runtime) *confloader.Watcher {
	w, err := config.Watch(rt.ConfigPath(), rt.flags.Overrides, func(cfg *config.CLIConfig, err error) {
		if err == nil {
			err = rt.Reload(cfg)
		}
		if err != nil {
			rt.Printer().Warnf("configuration not reloaded: %v", err)
			return
		}
		rt.Printer().Infof("configuration reloaded")
	})
	if err != nil {
		rt.Logger().Debug("config watch disabled", "path", rt.ConfigPath(), "error", err)
		return nil
	}
	return w
}

func shellPrompt(rt *Runtime) string {
	sess := rt.Store().Session()
	if name := displayName(sess); name != "" {
		return "fretehub(" + name + ")> "
	}
	if sess.IsAuthenticated() {
		return "fretehub*> "
	}
	return "fretehub> "
}

// commandPaths lists commands and subcommands as space-separated paths.
func commandPaths(cmds []*cli.Command, prefix string) []string {
	var paths []string
	for _, cmd := range cmds {
		if cmd.Hidden {
			continue
		}
		path := prefix + cmd.Name
		paths = append(paths, path)
		paths = append(paths, commandPaths(cmd.Subcommands, path+" ")...)
	}
	return paths
}

func (rt *Runtime) enterShell() bool {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.inShell {
		return false
	}
	rt.inShell = true
	return true
}

func (rt *Runtime) leaveShell() {
	rt.mu.Lock()
	rt.inShell = false
	rt.mu.Unlock()
}
