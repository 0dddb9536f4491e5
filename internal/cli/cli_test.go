package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflow(t *testing.T) {
	t.Run("it shows a notice instead of a table when the file is missing", func(t *testing.T) {
		dir := t.TempDir()

		res := mustRun(t, dir, "list")

		assert.Equal(t, "No todo.txt found. You might want to add some todo items first.\n", res.stdout)
	})

	t.Run("it shows a no items notice for an empty store", func(t *testing.T) {
		dir := t.TempDir()
		writeTodoFile(t, dir, "")

		res := mustRun(t, dir, "--pretty", "list")

		assert.Equal(t, "No todo items found, please add some items first.\n", res.stdout)
	})

	t.Run("it adds a task with id 1 and status TODO", func(t *testing.T) {
		dir := t.TempDir()

		mustRun(t, dir, "add", "buy", "milk")

		assert.Equal(t, "buy milk\\t TODO\\t 2024-05-01 09:00:00\\r\n", readTodoFile(t, dir))

		rows := listJSON(t, dir)
		require.Len(t, rows, 1)
		assert.Equal(t, jsonRow{ID: 1, Text: "buy milk", Status: "TODO", CreatedAt: "2024-05-01 09:00:00"}, rows[0])
	})

	t.Run("it shows the list after adding", func(t *testing.T) {
		dir := t.TempDir()

		res := mustRun(t, dir, "add", "buy milk")

		assert.True(t, strings.HasPrefix(res.stdout, "todos[1]{id,text,status,created_at}:"), res.stdout)
		assert.Contains(t, res.stdout, "buy milk")
	})

	t.Run("it renumbers later tasks after a removal", func(t *testing.T) {
		dir := t.TempDir()
		mustRun(t, dir, "add", "a")
		mustRun(t, dir, "add", "b")

		mustRun(t, dir, "remove", "1")

		rows := listJSON(t, dir)
		require.Len(t, rows, 1)
		assert.Equal(t, 1, rows[0].ID)
		assert.Equal(t, "b", rows[0].Text)
	})

	t.Run("it keeps the original position when filtering by done", func(t *testing.T) {
		dir := t.TempDir()
		mustRun(t, dir, "add", "a")
		mustRun(t, dir, "add", "b")
		mustRun(t, dir, "done", "2")

		rows := listJSON(t, dir, "--done")

		require.Len(t, rows, 1)
		assert.Equal(t, 2, rows[0].ID)
		assert.Equal(t, "b", rows[0].Text)
		assert.Equal(t, "DONE", rows[0].Status)
	})

	t.Run("it filters by todo", func(t *testing.T) {
		dir := t.TempDir()
		mustRun(t, dir, "add", "a")
		mustRun(t, dir, "add", "b")
		mustRun(t, dir, "add", "c")
		mustRun(t, dir, "done", "2")

		rows := listJSON(t, dir, "--todo")

		require.Len(t, rows, 2)
		assert.Equal(t, 1, rows[0].ID)
		assert.Equal(t, 3, rows[1].ID)
	})

	t.Run("it sorts by creation time in both directions", func(t *testing.T) {
		dir := t.TempDir()
		writeTodoFile(t, dir,
			"late\\t TODO\\t 2024-03-01 00:00:00\\r\n"+
				"early\\t TODO\\t 2024-01-01 00:00:00\\r\n"+
				"middle\\t DONE\\t 2024-02-01 00:00:00\\r\n")

		asc := listJSON(t, dir, "--asctime")
		require.Len(t, asc, 3)
		assert.Equal(t, []int{2, 3, 1}, []int{asc[0].ID, asc[1].ID, asc[2].ID})

		desc := listJSON(t, dir, "--desctime")
		require.Len(t, desc, 3)
		assert.Equal(t, []int{1, 3, 2}, []int{desc[0].ID, desc[1].ID, desc[2].ID})
	})

	t.Run("it rejects an out-of-range id and leaves the file unchanged", func(t *testing.T) {
		dir := t.TempDir()
		mustRun(t, dir, "add", "a")
		mustRun(t, dir, "add", "b")
		before := readTodoFile(t, dir)

		res := runApp(t, dir, "", "done", "5")

		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, "Error: invalid task id 5: must be between 1 and 2")
		assert.Equal(t, before, readTodoFile(t, dir))
	})

	t.Run("it rejects a non-numeric id", func(t *testing.T) {
		dir := t.TempDir()
		mustRun(t, dir, "add", "a")

		res := runApp(t, dir, "", "remove", "abc")

		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, `invalid task id "abc"`)
	})

	t.Run("it requires an id", func(t *testing.T) {
		res := runApp(t, t.TempDir(), "", "done")

		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, "task ID is required")
	})

	t.Run("it reports a missing file on done", func(t *testing.T) {
		res := runApp(t, t.TempDir(), "", "done", "1")

		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, "todo file not found")
	})

	t.Run("it rejects text containing the field delimiter", func(t *testing.T) {
		dir := t.TempDir()
		writeTodoFile(t, dir, "")

		res := runApp(t, dir, "", "add", `milk\t eggs`)

		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, "invalid task text")
		assert.Empty(t, readTodoFile(t, dir))
	})

	t.Run("it keeps dash-prefixed words in the text", func(t *testing.T) {
		dir := t.TempDir()

		mustRun(t, dir, "add", "-5", "degrees", "--outside")

		rows := listJSON(t, dir)
		require.Len(t, rows, 1)
		assert.Equal(t, "-5 degrees --outside", rows[0].Text)
	})

	t.Run("it rejects more than one list modifier", func(t *testing.T) {
		dir := t.TempDir()
		mustRun(t, dir, "add", "a")

		res := runApp(t, dir, "", "list", "--done", "--asctime")

		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, "only one list modifier may be given")
	})

	t.Run("it skips malformed lines when listing", func(t *testing.T) {
		dir := t.TempDir()
		writeTodoFile(t, dir,
			"a\\t TODO\\t 2024-01-01 00:00:00\\r\n"+
				"broken line\n"+
				"c\\t TODO\\t 2024-01-03 00:00:00\\r\n")

		res := mustRun(t, dir, "--json", "list")

		assert.Contains(t, res.stdout, `"text": "c"`)
		assert.Contains(t, res.stderr, "skipping malformed record")
	})

	t.Run("it refuses to mutate a file with malformed lines", func(t *testing.T) {
		dir := t.TempDir()
		content := "a\\t TODO\\t 2024-01-01 00:00:00\\r\nbroken line\n"
		writeTodoFile(t, dir, content)

		res := runApp(t, dir, "", "remove", "1")

		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, "line 2")
		assert.Equal(t, content, readTodoFile(t, dir))
	})
}

func TestUnknownCommand(t *testing.T) {
	t.Run("it fails with an unknown command message", func(t *testing.T) {
		res := runApp(t, t.TempDir(), "", "frobnicate")

		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, "Unknown command 'frobnicate'")
	})
}

func TestQuiet(t *testing.T) {
	t.Run("it prints only ids when listing", func(t *testing.T) {
		dir := t.TempDir()
		mustRun(t, dir, "add", "a")
		mustRun(t, dir, "add", "b")
		mustRun(t, dir, "done", "1")

		res := mustRun(t, dir, "--quiet", "list", "--done")

		assert.Equal(t, "1\n", res.stdout)
	})

	t.Run("it prints nothing for mutations", func(t *testing.T) {
		dir := t.TempDir()

		res := mustRun(t, dir, "-q", "add", "a")
		assert.Empty(t, res.stdout)

		res = mustRun(t, dir, "-q", "done", "1")
		assert.Empty(t, res.stdout)

		res = mustRun(t, dir, "-q", "remove", "1")
		assert.Empty(t, res.stdout)
	})
}

func TestConfig(t *testing.T) {
	t.Run("it uses the --file flag relative to the working directory", func(t *testing.T) {
		dir := t.TempDir()

		mustRun(t, dir, "--file", "work.txt", "add", "a")

		assert.FileExists(t, filepath.Join(dir, "work.txt"))
		assert.NoFileExists(t, filepath.Join(dir, "todo.txt"))
	})

	t.Run("it reads the file path from TODO_FILE", func(t *testing.T) {
		dir := t.TempDir()
		other := filepath.Join(t.TempDir(), "elsewhere.txt")
		t.Setenv("TODO_FILE", other)

		mustRun(t, dir, "add", "a")

		assert.FileExists(t, other)
		assert.NoFileExists(t, filepath.Join(dir, "todo.txt"))
	})

	t.Run("it names the configured file in the missing file notice", func(t *testing.T) {
		res := mustRun(t, t.TempDir(), "--file", "work.txt", "list")

		assert.Contains(t, res.stdout, "No work.txt found.")
	})

	t.Run("it rejects multiple format flags", func(t *testing.T) {
		res := runApp(t, t.TempDir(), "", "--json", "--pretty", "list")

		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, "cannot specify multiple format flags")
	})

	t.Run("it logs debug detail to stderr with --verbose", func(t *testing.T) {
		dir := t.TempDir()

		res := mustRun(t, dir, "--verbose", "add", "a")

		assert.Contains(t, res.stderr, "lock: acquiring")
		assert.Contains(t, res.stderr, "write: appended task")
	})

	t.Run("it rejects an invalid log level", func(t *testing.T) {
		res := runApp(t, t.TempDir(), "", "--log-level", "chatty", "list")

		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, "invalid log level")
	})
}
