// Package textline reads and writes the todo file: one task per line, fields
// joined by the literal delimiter `\t ` and terminated by the literal marker
// `\r`. Rewrites use the temp file + fsync + rename pattern.
package textline

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/leeovery/todo/internal/task"
)

const fieldCount = 3

// maxLineSize bounds a single line when scanning the file.
const maxLineSize = 1024 * 1024

// ErrMalformedRecord is matched by every MalformedRecordError.
var ErrMalformedRecord = errors.New("malformed record")

// MalformedRecordError reports a line that does not decode into a task.
// Line is the 1-based line number in the file, or 0 when a single line was
// decoded on its own.
type MalformedRecordError struct {
	Line   int
	Reason string
}

func (e *MalformedRecordError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", e.Line, ErrMalformedRecord, e.Reason)
	}
	return fmt.Sprintf("%s: %s", ErrMalformedRecord, e.Reason)
}

// Is lets errors.Is match ErrMalformedRecord.
func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

// Encode renders t as one line without the trailing newline.
func Encode(t task.Task) string {
	return t.Text + task.FieldDelimiter + string(t.Status) + task.FieldDelimiter + t.CreatedAt + task.LineMarker
}

// Decode parses one line. A real trailing carriage return (CRLF files) and
// the literal marker are both stripped; a missing marker is tolerated.
func Decode(line string) (task.Task, error) {
	line = strings.TrimSuffix(line, "\r")
	line = strings.TrimSuffix(line, task.LineMarker)

	parts := strings.Split(line, task.FieldDelimiter)
	if len(parts) != fieldCount {
		return task.Task{}, &MalformedRecordError{
			Reason: fmt.Sprintf("expected %d fields, got %d", fieldCount, len(parts)),
		}
	}

	status, err := task.ParseStatus(parts[1])
	if err != nil {
		return task.Task{}, &MalformedRecordError{Reason: err.Error()}
	}

	return task.Task{
		Text:      parts[0],
		Status:    status,
		CreatedAt: parts[2],
	}, nil
}

// Parse decodes every non-blank line of data in file order. The first line
// that fails to decode aborts parsing.
func Parse(data []byte) ([]task.Task, error) {
	var tasks []task.Task
	err := scanLines(data, func(lineNum int, line string) error {
		t, err := Decode(line)
		if err != nil {
			return withLine(err, lineNum)
		}
		tasks = append(tasks, t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// ParseLenient decodes every non-blank line of data, skipping lines that fail
// to decode and returning them alongside the tasks that did.
func ParseLenient(data []byte) ([]task.Task, []*MalformedRecordError, error) {
	var (
		tasks []task.Task
		bad   []*MalformedRecordError
	)
	err := scanLines(data, func(lineNum int, line string) error {
		t, err := Decode(line)
		if err != nil {
			var mre *MalformedRecordError
			if errors.As(withLine(err, lineNum), &mre) {
				bad = append(bad, mre)
				return nil
			}
			return err
		}
		tasks = append(tasks, t)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return tasks, bad, nil
}

func withLine(err error, lineNum int) error {
	var mre *MalformedRecordError
	if errors.As(err, &mre) {
		return &MalformedRecordError{Line: lineNum, Reason: mre.Reason}
	}
	return err
}

// scanLines calls fn for each non-blank line with its 1-based line number.
func scanLines(data []byte, fn func(lineNum int, line string) error) error {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := fn(lineNum, line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanning line %d: %w", lineNum+1, err)
	}
	return nil
}

// WriteTasks replaces the file at path with tasks, one encoded line each.
// The content goes to a temp file in the same directory which is synced and
// renamed over path, so a failure leaves the previous file untouched. An
// existing file's permissions are kept.
func WriteTasks(path string, tasks []task.Task) error {
	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	w := bufio.NewWriter(tmp)
	for i, t := range tasks {
		if _, err := w.WriteString(Encode(t) + "\n"); err != nil {
			return fmt.Errorf("writing task %d: %w", i+1, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		return fmt.Errorf("setting temp file mode: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}

	success = true
	return nil
}

// AppendTask appends one encoded line to the file at path, creating it when
// missing. Existing lines are not rewritten. If the file does not end in a
// newline one is inserted first so the new record starts its own line.
func AppendTask(path string, t task.Task) (err error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s for append: %w", filepath.Base(path), err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", filepath.Base(path), cerr)
		}
	}()

	line := Encode(t) + "\n"

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", filepath.Base(path), err)
	}
	if size := info.Size(); size > 0 {
		last := make([]byte, 1)
		if _, err := f.ReadAt(last, size-1); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("reading %s: %w", filepath.Base(path), err)
		}
		if last[0] != '\n' {
			line = "\n" + line
		}
	}

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("appending to %s: %w", filepath.Base(path), err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", filepath.Base(path), err)
	}
	return nil
}
