package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

const replPrompt = "> "

// repl reads one command per input line and dispatches it. Errors are
// printed and the loop continues; quit, exit and end of input stop it.
type repl struct {
	app     *App
	scanner *bufio.Scanner
}

// runREPL implements the interactive prompt.
func (a *App) runREPL(ctx context.Context) error {
	r := &repl{
		app:     a,
		scanner: bufio.NewScanner(a.stdin),
	}
	if !a.config.Quiet {
		printHelp(a.stdout)
	}
	return r.loop(ctx)
}

func (r *repl) loop(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, ok := r.prompt(replPrompt)
		if !ok {
			fmt.Fprintln(r.app.stdout)
			return r.scanner.Err()
		}

		quit, err := r.exec(ctx, line)
		if err != nil {
			fmt.Fprintf(r.app.stderr, "Error: %s\n", err)
		}
		if quit {
			return nil
		}
	}
}

// prompt writes label and reads the next trimmed line. ok is false at end of
// input.
func (r *repl) prompt(label string) (line string, ok bool) {
	fmt.Fprint(r.app.stdout, label)
	if !r.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(r.scanner.Text()), true
}

// exec runs one command line and reports whether the loop should stop.
func (r *repl) exec(ctx context.Context, line string) (quit bool, err error) {
	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	r.app.logger.Debug().Str("command", name).Msg("repl: dispatch")

	switch name {
	case "":
		return false, nil
	case "add":
		if rest == "" {
			text, ok := r.prompt("Please enter your todo item: ")
			if !ok {
				return true, nil
			}
			rest = text
		}
		return false, r.app.runAdd(ctx, rest)
	case "list", "ls":
		return false, r.app.runList(ctx, strings.Fields(rest))
	case "done":
		args, ok := r.idArgs(rest, "Enter the ID of the todo you've done: ")
		if !ok {
			return true, nil
		}
		return false, r.app.runDone(ctx, args)
	case "remove", "rm":
		args, ok := r.idArgs(rest, "Enter the ID of the todo to remove: ")
		if !ok {
			return true, nil
		}
		return false, r.app.runRemove(ctx, args)
	case "help":
		printHelp(r.app.stdout)
		return false, nil
	case "quit", "exit":
		return true, nil
	default:
		fmt.Fprintln(r.app.stdout, "Unknown command.")
		return false, nil
	}
}

// idArgs splits rest into arguments, prompting with label when it is empty.
func (r *repl) idArgs(rest, label string) ([]string, bool) {
	if rest != "" {
		return strings.Fields(rest), true
	}
	id, ok := r.prompt(label)
	if !ok {
		return nil, false
	}
	return strings.Fields(id), true
}
