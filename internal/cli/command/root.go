// Package command provides CLI command definitions for fretehub-cli.
package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/fretehub/fretehub-go/internal/infra/buildinfo"
)

// App creates the CLI application.
func App() *cli.App {
	info := buildinfo.Get()
	app := &cli.App{
		Name:     "fretehub-cli",
		Usage:    "FreteHub account and session client",
		Version:  fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.BuildTime),
		Flags:    globalFlags(),
		Commands: commands(),
		Before:   before,
		After:    after,
		// Errors are printed once by main, or by the shell for each line.
		ExitErrHandler: func(*cli.Context, error) {},
	}
	return app
}

func commands() []*cli.Command {
	return []*cli.Command{
		LoginCommand(),
		RegisterCommand(),
		TrialCommand(),
		CompanyCommand(),
		LogoutCommand(),
		WhoamiCommand(),
		NotificationsCommand(),
		ConfigCommand(),
		SystemCommand(),
		ShellCommand(),
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to the CLI configuration file",
		},
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "API base URL (e.g., https://app.fretehub.com.br)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
		},
		&cli.StringFlag{
			Name:  "timeout",
			Usage: "Request timeout (e.g., 30s)",
		},
		&cli.StringFlag{
			Name:  "session-backend",
			Usage: "Where the session is kept between runs: memory, badger",
		},
		&cli.StringFlag{
			Name:  "session-dir",
			Usage: "Directory of the persisted session",
		},
		&cli.StringFlag{
			Name:  "ca-file",
			Usage: "PEM bundle of extra trusted CA certificates",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
		&cli.BoolFlag{
			Name:    "no-input",
			Aliases: []string{"n"},
			Usage:   "Never prompt; missing values fail validation",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable verbose output (same as --log-level debug)",
		},
	}
}

// flagKeys maps global flags to configuration keys.
var flagKeys = map[string]string{
	"server":          "server",
	"output":          "output",
	"timeout":         "timeout",
	"session-backend": "session.backend",
	"session-dir":     "session.dir",
	"ca-file":         "tls.ca_file",
	"log-level":       "log.level",
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	ConfigPath string
	NoInput    bool
	Verbose    bool

	// Overrides holds the configuration keys set on the command line.
	Overrides map[string]any
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	flags := &GlobalFlags{
		ConfigPath: c.String("config"),
		NoInput:    c.Bool("no-input"),
		Verbose:    c.Bool("verbose"),
		Overrides:  make(map[string]any),
	}
	for name, key := range flagKeys {
		if c.IsSet(name) {
			flags.Overrides[key] = c.String(name)
		}
	}
	if flags.Verbose {
		flags.Overrides["log.level"] = "debug"
	}
	return flags
}

// before builds the runtime, or reuses the one a shell already owns.
func before(c *cli.Context) error {
	if rt, ok := lookupRuntime(c); ok {
		c.Context = rt.bind(c.Context)
		return nil
	}

	rt, err := newRuntime(c, ParseGlobalFlags(c))
	if err != nil {
		return err
	}
	c.App.Metadata[runtimeKey] = rt
	c.Context = rt.bind(c.Context)
	return nil
}

// after releases the runtime when this app created it.
func after(c *cli.Context) error {
	rt, ok := lookupRuntime(c)
	if !ok || rt.owner != c.App {
		return nil
	}
	return rt.Close()
}
