package cli

import (
	"errors"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/leeovery/todo/internal/query"
	"github.com/leeovery/todo/internal/task"
)

// Format represents the output format type.
type Format string

// Format constants for output selection.
const (
	FormatToon   Format = "toon"
	FormatPretty Format = "pretty"
	FormatJSON   Format = "json"
)

// Formatter renders command results. Every command writes through one.
type Formatter interface {
	// FormatTaskList renders a view. Callers print a notice instead of
	// calling it with an empty view.
	FormatTaskList(w io.Writer, rows []query.Row) error

	// FormatTransition renders the result of marking a task done.
	FormatTransition(w io.Writer, id int, result task.TransitionResult) error

	// FormatRemoval renders a removed task with the ID it had.
	FormatRemoval(w io.Writer, id int, removed task.Task) error

	// FormatMessage renders a simple notice.
	FormatMessage(w io.Writer, msg string) error
}

// DetectTTY reports whether w is a terminal. Anything that is not an
// *os.File is treated as non-TTY.
func DetectTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// ResolveFormat determines the output format from flags and TTY status.
// At most one flag may be set. With none, a TTY gets Pretty and anything
// else gets TOON.
func ResolveFormat(toonFlag, prettyFlag, jsonFlag, isTTY bool) (Format, error) {
	count := 0
	for _, set := range []bool{toonFlag, prettyFlag, jsonFlag} {
		if set {
			count++
		}
	}
	if count > 1 {
		return "", errors.New("cannot specify multiple format flags (--toon, --pretty, --json)")
	}

	switch {
	case toonFlag:
		return FormatToon, nil
	case prettyFlag:
		return FormatPretty, nil
	case jsonFlag:
		return FormatJSON, nil
	case isTTY:
		return FormatPretty, nil
	default:
		return FormatToon, nil
	}
}

// newFormatter returns the Formatter for format. now feeds relative ages in
// the pretty table.
func newFormatter(format Format, now func() time.Time) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{}
	case FormatPretty:
		return &PrettyFormatter{Now: now}
	default:
		return &ToonFormatter{}
	}
}
