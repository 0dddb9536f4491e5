package cli

import (
	"fmt"
	"io"

	toon "github.com/toon-format/toon-go"

	"github.com/leeovery/todo/internal/query"
	"github.com/leeovery/todo/internal/task"
)

// ToonFormatter renders output in TOON (Token-Oriented Object Notation), a
// compact tabular format meant for scripts and agents.
type ToonFormatter struct{}

// FormatTaskList renders rows as todos[N]{id,text,status,created_at}:
// followed by one indented line per row.
func (f *ToonFormatter) FormatTaskList(w io.Writer, rows []query.Row) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "todos[0]{id,text,status,created_at}:")
		return err
	}

	objects := make([]toon.Object, len(rows))
	for i, r := range rows {
		objects[i] = toon.NewObject(
			toon.Field{Key: "id", Value: r.ID},
			toon.Field{Key: "text", Value: r.Task.Text},
			toon.Field{Key: "status", Value: string(r.Task.Status)},
			toon.Field{Key: "created_at", Value: r.Task.CreatedAt},
		)
	}

	doc := toon.NewObject(
		toon.Field{Key: "todos", Value: objects},
	)
	result, err := toon.MarshalString(doc)
	if err != nil {
		return fmt.Errorf("toon marshal error: %w", err)
	}
	_, err = fmt.Fprintln(w, result)
	return err
}

// FormatTransition renders a completion as "id: OLD → NEW".
func (f *ToonFormatter) FormatTransition(w io.Writer, id int, result task.TransitionResult) error {
	_, err := fmt.Fprintf(w, "%d: %s → %s\n", id, result.OldStatus, result.NewStatus)
	return err
}

// FormatRemoval renders a removal as a single-row TOON table.
func (f *ToonFormatter) FormatRemoval(w io.Writer, id int, removed task.Task) error {
	doc := toon.NewObject(
		toon.Field{Key: "removed", Value: []toon.Object{
			toon.NewObject(
				toon.Field{Key: "id", Value: id},
				toon.Field{Key: "text", Value: removed.Text},
			),
		}},
	)
	result, err := toon.MarshalString(doc)
	if err != nil {
		return fmt.Errorf("toon marshal error: %w", err)
	}
	_, err = fmt.Fprintln(w, result)
	return err
}

// FormatMessage renders a simple message as plain text.
func (f *ToonFormatter) FormatMessage(w io.Writer, msg string) error {
	_, err := fmt.Fprintln(w, msg)
	return err
}
