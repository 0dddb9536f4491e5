package cli

import (
	"fmt"
	"io"
)

// commandInfo describes an interactive command for help output.
type commandInfo struct {
	Name    string
	Usage   string
	Summary string
}

// commands is the ordered registry of interactive commands.
var commands = []commandInfo{
	{Name: "list", Usage: "list [--asctime|--desctime|--done|--todo]", Summary: "List todo items, optionally filtered or sorted"},
	{Name: "add", Usage: "add [text]", Summary: "Add a new todo item (prompts when text is omitted)"},
	{Name: "done", Usage: "done [id]", Summary: "Mark a todo item as done (prompts when id is omitted)"},
	{Name: "remove", Usage: "remove [id]", Summary: "Remove a todo item; later IDs shift down by one"},
	{Name: "help", Usage: "help", Summary: "Show this help"},
	{Name: "quit", Usage: "quit | exit", Summary: "Leave the program"},
}

// printHelp writes the interactive command summary.
func printHelp(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "USAGE")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-44s %s\n", c.Usage, c.Summary)
	}
	fmt.Fprintln(w)
}
