package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/fretehub/fretehub-go/internal/cli/config"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:    "config",
		Aliases: []string{"cfg"},
		Usage:   "Configuration management",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration",
				Action: configShow,
			},
			{
				Name:   "path",
				Usage:  "Print the configuration file path",
				Action: configPath,
			},
			{
				Name:      "set",
				Usage:     "Set a configuration value in the file",
				ArgsUsage: "KEY VALUE",
				Action:    configSet,
			},
			{
				Name:   "keys",
				Usage:  "List configuration keys",
				Action: configKeys,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	rt := GetRuntime(c)
	return rt.Printer().Print(rt.Config())
}

func configPath(c *cli.Context) error {
	rt := GetRuntime(c)
	fmt.Fprintln(rt.Printer().Out(), rt.ConfigPath())
	return nil
}

// configSet writes one key to the file. Values from the environment and
// flags are not persisted; the file is loaded on its own.
func configSet(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("usage: config set KEY VALUE")
	}
	key, value := c.Args().Get(0), c.Args().Get(1)

	rt := GetRuntime(c)
	current, err := config.LoadFile(rt.ConfigPath())
	if err != nil {
		return err
	}

	updated, err := config.Set(current, key, value)
	if err != nil {
		return err
	}
	if err := config.Save(updated, rt.ConfigPath()); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	rt.Printer().Successf("%s = %s", key, value)
	return nil
}

func configKeys(c *cli.Context) error {
	out := GetRuntime(c).Printer().Out()
	for _, key := range config.Keys() {
		fmt.Fprintln(out, key)
	}
	return nil
}
