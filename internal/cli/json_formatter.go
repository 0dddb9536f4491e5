package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/leeovery/todo/internal/query"
	"github.com/leeovery/todo/internal/task"
)

// JSONFormatter renders output as 2-space indented JSON with snake_case keys.
type JSONFormatter struct{}

// jsonRow is the JSON representation of a task in a view.
type jsonRow struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// jsonTransition is the JSON representation of a completion.
type jsonTransition struct {
	ID   int    `json:"id"`
	From string `json:"from"`
	To   string `json:"to"`
}

// jsonRemoval is the JSON representation of a removal.
type jsonRemoval struct {
	Removed jsonRow `json:"removed"`
}

// jsonMessage is the JSON representation of a simple message.
type jsonMessage struct {
	Message string `json:"message"`
}

// FormatTaskList renders rows as a JSON array. An empty view is [] rather
// than null.
func (f *JSONFormatter) FormatTaskList(w io.Writer, rows []query.Row) error {
	out := make([]jsonRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, toJSONRow(r.ID, r.Task))
	}
	return writeJSON(w, out)
}

// FormatTransition renders a completion as {"id", "from", "to"}.
func (f *JSONFormatter) FormatTransition(w io.Writer, id int, result task.TransitionResult) error {
	return writeJSON(w, jsonTransition{
		ID:   id,
		From: string(result.OldStatus),
		To:   string(result.NewStatus),
	})
}

// FormatRemoval renders the removed task under a "removed" key.
func (f *JSONFormatter) FormatRemoval(w io.Writer, id int, removed task.Task) error {
	return writeJSON(w, jsonRemoval{Removed: toJSONRow(id, removed)})
}

// FormatMessage renders {"message": msg}.
func (f *JSONFormatter) FormatMessage(w io.Writer, msg string) error {
	return writeJSON(w, jsonMessage{Message: msg})
}

func toJSONRow(id int, t task.Task) jsonRow {
	return jsonRow{
		ID:        id,
		Text:      t.Text,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt,
	}
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal error: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
