package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/leeovery/todo/internal/query"
	"github.com/leeovery/todo/internal/task"
)

const statusColumn = 2

// PrettyFormatter renders human-readable output: a bordered table for
// listings and short sentences for everything else. Colours are only used
// when the writer is a colour-capable terminal.
type PrettyFormatter struct {
	// Now is the reference time for the AGE column. Defaults to time.Now.
	Now func() time.Time
}

// FormatTaskList renders rows as a table with ID, ITEM, STATUS, CREATED and
// AGE columns.
func (f *PrettyFormatter) FormatTaskList(w io.Writer, rows []query.Row) error {
	if len(rows) == 0 {
		return f.FormatMessage(w, noItemsMsg)
	}

	r := lipgloss.NewRenderer(w)
	var (
		header = r.NewStyle().Bold(true).Padding(0, 1)
		cell   = r.NewStyle().Padding(0, 1)
		done   = cell.Foreground(lipgloss.Color("2"))
		todo   = cell.Foreground(lipgloss.Color("3"))
	)

	now := f.now()
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle().Faint(true)).
		Headers("ID", "ITEM", "STATUS", "CREATED", "AGE").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case col != statusColumn || row < 0 || row >= len(rows):
				return cell
			case rows[row].Task.Status == task.StatusDone:
				return done
			default:
				return todo
			}
		})

	for _, row := range rows {
		tbl.Row(
			strconv.Itoa(row.ID),
			row.Task.Text,
			string(row.Task.Status),
			row.Task.CreatedAt,
			age(row.Task.CreatedAt, now),
		)
	}

	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}

// FormatTransition renders a completion as a sentence.
func (f *PrettyFormatter) FormatTransition(w io.Writer, id int, result task.TransitionResult) error {
	if result.OldStatus == result.NewStatus {
		_, err := fmt.Fprintf(w, "Todo item %d is already done.\n", id)
		return err
	}
	_, err := fmt.Fprintf(w, "Todo item %d set as done.\n", id)
	return err
}

// FormatRemoval renders a removal as a sentence.
func (f *PrettyFormatter) FormatRemoval(w io.Writer, id int, removed task.Task) error {
	_, err := fmt.Fprintf(w, "Todo item %d removed: %s\n", id, removed.Text)
	return err
}

// FormatMessage writes msg on its own line.
func (f *PrettyFormatter) FormatMessage(w io.Writer, msg string) error {
	_, err := fmt.Fprintln(w, msg)
	return err
}

func (f *PrettyFormatter) now() time.Time {
	if f.Now == nil {
		return time.Now()
	}
	return f.Now()
}

// age renders created relative to now, or "-" when created does not parse.
func age(created string, now time.Time) string {
	t, err := task.ParseTimestamp(created)
	if err != nil {
		return "-"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
