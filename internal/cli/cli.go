package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	ucli "github.com/urfave/cli/v3"

	"github.com/leeovery/todo/internal/storage"
)

func init() {
	// -v belongs to --verbose.
	ucli.VersionFlag = &ucli.BoolFlag{
		Name:  "version",
		Usage: "print the version",
	}
}

// Config holds the parsed global flags.
type Config struct {
	File        string
	LockTimeout time.Duration
	LogLevel    string
	Quiet       bool
	Verbose     bool
	Toon        bool
	Pretty      bool
	JSON        bool

	// Format is resolved from the three format flags and TTY detection.
	Format Format
}

// rootCommand builds the command tree. Running it with no subcommand starts
// the interactive loop.
func (a *App) rootCommand() *ucli.Command {
	return &ucli.Command{
		Name:      "todo",
		Usage:     "Track todo items in a plain text file",
		UsageText: "todo [global options] [command [arguments]]",
		Description: `Tasks live in todo.txt in the working directory, one per line.
A task's ID is its position in the file: removing a task renumbers
every task after it.

Run 'todo' with no command to start the interactive prompt.`,
		Version:   a.version,
		Writer:    a.stdout,
		ErrWriter: a.stderr,
		Flags: []ucli.Flag{
			&ucli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "path to the todo file",
				Sources:     ucli.EnvVars("TODO_FILE"),
				Value:       storage.DefaultFileName,
				Destination: &a.config.File,
			},
			&ucli.DurationFlag{
				Name:        "lock-timeout",
				Usage:       "how long to wait for the todo file lock",
				Sources:     ucli.EnvVars("TODO_LOCK_TIMEOUT"),
				Value:       5 * time.Second,
				Destination: &a.config.LockTimeout,
			},
			&ucli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error); overrides --verbose",
				Sources:     ucli.EnvVars("TODO_LOG_LEVEL"),
				Destination: &a.config.LogLevel,
			},
			&ucli.BoolFlag{
				Name:        "verbose",
				Aliases:     []string{"v"},
				Usage:       "log debug detail to stderr",
				Destination: &a.config.Verbose,
			},
			&ucli.BoolFlag{
				Name:        "quiet",
				Aliases:     []string{"q"},
				Usage:       "suppress non-essential output",
				Destination: &a.config.Quiet,
			},
			&ucli.BoolFlag{
				Name:        "pretty",
				Usage:       "force table output",
				Destination: &a.config.Pretty,
			},
			&ucli.BoolFlag{
				Name:        "toon",
				Usage:       "force TOON output",
				Destination: &a.config.Toon,
			},
			&ucli.BoolFlag{
				Name:        "json",
				Usage:       "force JSON output",
				Destination: &a.config.JSON,
			},
		},
		Before: func(ctx context.Context, _ *ucli.Command) (context.Context, error) {
			return ctx, a.setup()
		},
		Action: func(ctx context.Context, c *ucli.Command) error {
			if c.Args().Present() {
				return fmt.Errorf("Unknown command '%s'. Run 'todo help' for usage.", c.Args().First())
			}
			return a.runREPL(ctx)
		},
		Commands: []*ucli.Command{
			{
				Name:            "add",
				Usage:           "Add a new todo item",
				ArgsUsage:       "<text>",
				SkipFlagParsing: true,
				Action: func(ctx context.Context, c *ucli.Command) error {
					return a.runAdd(ctx, strings.Join(c.Args().Slice(), " "))
				},
			},
			{
				Name:      "list",
				Aliases:   []string{"ls"},
				Usage:     "List todo items",
				ArgsUsage: "[--asctime | --desctime | --done | --todo]",
				Flags: []ucli.Flag{
					&ucli.BoolFlag{Name: "asctime", Usage: "oldest first"},
					&ucli.BoolFlag{Name: "desctime", Usage: "newest first"},
					&ucli.BoolFlag{Name: "done", Usage: "only DONE items"},
					&ucli.BoolFlag{Name: "todo", Usage: "only TODO items"},
				},
				Action: func(ctx context.Context, c *ucli.Command) error {
					var mods []string
					for _, name := range []string{"asctime", "desctime", "done", "todo"} {
						if c.Bool(name) {
							mods = append(mods, "--"+name)
						}
					}
					return a.runList(ctx, append(mods, c.Args().Slice()...))
				},
			},
			{
				Name:      "done",
				Usage:     "Mark a todo item as done",
				ArgsUsage: "<id>",
				Action: func(ctx context.Context, c *ucli.Command) error {
					return a.runDone(ctx, c.Args().Slice())
				},
			},
			{
				Name:      "remove",
				Aliases:   []string{"rm"},
				Usage:     "Remove a todo item",
				ArgsUsage: "<id>",
				Action: func(ctx context.Context, c *ucli.Command) error {
					return a.runRemove(ctx, c.Args().Slice())
				},
			},
			{
				Name:  "repl",
				Usage: "Start the interactive prompt",
				Action: func(ctx context.Context, _ *ucli.Command) error {
					return a.runREPL(ctx)
				},
			},
		},
	}
}
