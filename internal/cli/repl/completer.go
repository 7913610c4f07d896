package repl

import "strings"

// Completer lists known commands by prefix.
type Completer struct {
	commands []string
}

// NewCompleter creates a new Completer.
func NewCompleter() *Completer {
	return &Completer{
		commands: []string{
			"ping",
			"echo <message>",
			"get <key>",
			"set <key> <value> [px <milliseconds>]",
			"config get dir",
			"config get dbfilename",
			"help [prefix]",
			"exit",
			"quit",
		},
	}
}

// Complete returns the commands starting with prefix (case-insensitive).
func (c *Completer) Complete(prefix string) []string {
	prefix = strings.ToLower(prefix)
	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, prefix) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}
