package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// testClock starts at 2024-05-01 09:00:00 local time and advances one
// minute per call so every added task gets a distinct timestamp.
func testClock() func() time.Time {
	next := time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local)
	return func() time.Time {
		now := next
		next = next.Add(time.Minute)
		return now
	}
}

type result struct {
	stdout string
	stderr string
	code   int
}

// runApp runs the CLI in dir with the given stdin and arguments (without the
// program name). Output is non-TTY, so the default format is TOON.
func runApp(t *testing.T, dir, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := NewApp(strings.NewReader(stdin), &stdout, &stderr, dir,
		WithClock(testClock()),
		WithTTYDetector(func(io.Writer) bool { return false }),
	)
	code := app.Run(context.Background(), append([]string{"todo"}, args...))
	return result{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

// mustRun is runApp that fails the test on a non-zero exit code.
func mustRun(t *testing.T, dir string, args ...string) result {
	t.Helper()
	res := runApp(t, dir, "", args...)
	require.Equal(t, 0, res.code, "stderr: %s", res.stderr)
	return res
}

// writeTodoFile writes content to dir/todo.txt.
func writeTodoFile(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "todo.txt"), []byte(content), 0o644))
}

// readTodoFile returns the content of dir/todo.txt.
func readTodoFile(t *testing.T, dir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "todo.txt"))
	require.NoError(t, err)
	return string(data)
}

// listJSON runs `list --json` with extra args and decodes the rows.
func listJSON(t *testing.T, dir string, args ...string) []jsonRow {
	t.Helper()
	res := mustRun(t, dir, append([]string{"--json", "list"}, args...)...)
	var rows []jsonRow
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &rows), "stdout: %s", res.stdout)
	return rows
}
