// Package command provides CLI command definitions for fretehub-cli.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: Root command, global flags, Before/After hooks
//   - runtime.go: Shared runtime (config, logger, session store, client)
//   - account.go: login, register, trial, company register, logout, whoami
//   - submit.go: Form submission with interactive prompting
//   - notifications.go: Notifications listing
//   - config.go: Configuration subcommand group
//   - system.go: System subcommand group
//   - shell.go: Interactive shell
//   - exitcode.go: Process exit status for command errors
//
// Commands follow a consistent pattern of reading the runtime, driving
// a form or the HTTP client, and formatting output through the printer.
package command
