package command

import (
	"github.com/urfave/cli/v2"

	"github.com/fretehub/fretehub-go/internal/infra/buildinfo"
)

// SystemCommand returns the system subcommand group.
func SystemCommand() *cli.Command {
	return &cli.Command{
		Name:    "system",
		Aliases: []string{"sys"},
		Usage:   "Client diagnostics",
		Subcommands: []*cli.Command{
			{
				Name:   "version",
				Usage:  "Show build information",
				Action: systemVersion,
			},
			{
				Name:   "metrics",
				Usage:  "Print client metrics in Prometheus text format",
				Action: systemMetrics,
			},
		},
	}
}

func systemVersion(c *cli.Context) error {
	return GetRuntime(c).Printer().Print(buildinfo.Get())
}

// systemMetrics prints the metrics gathered so far in the text format
// regardless of --output. In a shell they cover every command run since
// it started.
func systemMetrics(c *cli.Context) error {
	rt := GetRuntime(c)
	return rt.Metrics().WriteText(rt.Printer().Out())
}
