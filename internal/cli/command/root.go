package command

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/redislite/internal/cli/connection"
	"github.com/yndnr/redislite/internal/cli/output"
	"github.com/yndnr/redislite/internal/cli/repl"
	"github.com/yndnr/redislite/internal/infra/buildinfo"
)

// ErrReply is returned when the server answered with an error reply.
// The reply itself has already been printed.
var ErrReply = errors.New("server returned an error")

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "redislite-cli",
		Usage:   "redislite command-line client",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			PingCommand(),
			EchoCommand(),
			GetCommand(),
			SetCommand(),
			ConfigCommand(),
			RawCommand(),
		},
		Action: interactive,
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "redislite server address",
			EnvVars: []string{"REDISLITE_CLI_SERVER"},
			Value:   "127.0.0.1:6379",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: raw, json, yaml",
			EnvVars: []string{"REDISLITE_CLI_OUTPUT"},
			Value:   string(output.FormatRaw),
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Dial and request timeout",
			Value: connection.DefaultTimeout,
		},
		&cli.StringFlag{
			Name:  "history-file",
			Usage: "Interactive history file (empty keeps history in memory)",
			Value: repl.DefaultHistoryFile(),
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	Server      string
	Output      string
	Timeout     time.Duration
	HistoryFile string
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	return &GlobalFlags{
		Server:      c.String("server"),
		Output:      c.String("output"),
		Timeout:     c.Duration("timeout"),
		HistoryFile: c.String("history-file"),
	}
}

// interactive runs the REPL when no command was given.
func interactive(c *cli.Context) error {
	if c.Args().Present() {
		return fmt.Errorf("unknown command %q", c.Args().First())
	}

	flags := ParseGlobalFlags(c)
	formatter, err := output.NewFormatter(output.Format(flags.Output))
	if err != nil {
		return err
	}

	client := connection.NewClient(flags.Server, flags.Timeout)
	defer client.Close()

	r := repl.New(client, formatter,
		repl.WithIO(os.Stdin, c.App.Writer),
		repl.WithHistory(repl.NewHistory(flags.HistoryFile)),
	)
	return r.Run(c.Context)
}

// execute sends one command and prints the reply.
func execute(c *cli.Context, args ...string) error {
	flags := ParseGlobalFlags(c)
	formatter, err := output.NewFormatter(output.Format(flags.Output))
	if err != nil {
		return err
	}

	client := connection.NewClient(flags.Server, flags.Timeout)
	defer client.Close()

	reply, err := client.Do(c.Context, args...)
	if err != nil {
		return err
	}
	if err := formatter.Format(c.App.Writer, reply); err != nil {
		return err
	}
	if reply.IsError() {
		return ErrReply
	}
	return nil
}
