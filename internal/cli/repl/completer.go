package repl

import (
	"sort"
	"strings"
)

// Builtins are handled by the shell itself.
var Builtins = []string{"complete", "exit", "help", "history", "quit"}

// Completer provides command completion for the REPL.
type Completer struct {
	commands []string
}

// NewCompleter creates a Completer over commands plus the shell builtins.
// Entries may contain spaces for subcommands, e.g. "config set".
func NewCompleter(commands []string) *Completer {
	seen := make(map[string]bool)
	var all []string
	for _, list := range [][]string{commands, Builtins} {
		for _, cmd := range list {
			if cmd == "" || seen[cmd] {
				continue
			}
			seen[cmd] = true
			all = append(all, cmd)
		}
	}
	sort.Strings(all)
	return &Completer{commands: all}
}

// Complete returns completion suggestions for the given prefix, sorted.
// Runs of whitespace in the prefix count as one space.
func (c *Completer) Complete(prefix string) []string {
	prefix = strings.Join(strings.Fields(prefix), " ")
	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, prefix) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}

// Commands returns every known command.
func (c *Completer) Commands() []string {
	return append([]string(nil), c.commands...)
}
