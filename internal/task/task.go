// Package task defines the core task record, its status tokens and text
// validation for the todo tracker.
package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status represents a task's lifecycle state. The values are the literal
// tokens written to the todo file.
type Status string

const (
	StatusTodo Status = "TODO"
	StatusDone Status = "DONE"
)

// TimestampLayout is the layout of CreatedAt, in local time.
const TimestampLayout = "2006-01-02 15:04:05"

// Reserved sequences of the on-disk line format. They are plain two- and
// three-character text, not control characters.
const (
	FieldDelimiter = `\t `
	LineMarker     = `\r`
)

// ErrInvalidText is returned when a task text cannot be stored safely.
var ErrInvalidText = errors.New("invalid task text")

// Task is a single todo record.
type Task struct {
	Text      string `json:"text"`
	Status    Status `json:"status"`
	CreatedAt string `json:"created_at"`
}

// ParseStatus converts a status token into a Status. Only the exact tokens
// TODO and DONE are accepted.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusTodo, StatusDone:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// TrimText removes leading and trailing whitespace from a task text.
func TrimText(text string) string {
	return strings.TrimSpace(text)
}

// ValidateText checks that a text is non-empty and free of any sequence the
// line format reserves. Texts are never escaped, so these are rejected.
func ValidateText(text string) error {
	trimmed := TrimText(text)
	if trimmed == "" {
		return fmt.Errorf("%w: text is required", ErrInvalidText)
	}
	if strings.ContainsAny(trimmed, "\n\r") {
		return fmt.Errorf("%w: text must not contain newlines", ErrInvalidText)
	}
	if strings.Contains(trimmed, FieldDelimiter) {
		return fmt.Errorf("%w: text must not contain %q", ErrInvalidText, FieldDelimiter)
	}
	if strings.Contains(trimmed, LineMarker) {
		return fmt.Errorf("%w: text must not contain %q", ErrInvalidText, LineMarker)
	}
	return nil
}

// NewTask creates a TODO task stamped with now. The text is trimmed but not
// validated; callers validate first.
func NewTask(text string, now time.Time) Task {
	return Task{
		Text:      TrimText(text),
		Status:    StatusTodo,
		CreatedAt: FormatTimestamp(now),
	}
}

// FormatTimestamp formats t in local time as YYYY-MM-DD HH:MM:SS.
func FormatTimestamp(t time.Time) string {
	return t.Local().Format(TimestampLayout)
}

// ParseTimestamp parses a CreatedAt value in the local time zone.
func ParseTimestamp(s string) (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, s, time.Local)
}
