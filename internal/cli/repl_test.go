package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestREPL(t *testing.T) {
	t.Run("it starts when no command is given and prints help", func(t *testing.T) {
		res := runApp(t, t.TempDir(), "quit\n")

		require.Equal(t, 0, res.code, res.stderr)
		assert.Contains(t, res.stdout, "USAGE")
		assert.Contains(t, res.stdout, replPrompt)
	})

	t.Run("it runs commands until quit", func(t *testing.T) {
		dir := t.TempDir()

		res := runApp(t, dir, "add buy milk\nadd call mum\ndone 1\nquit\nadd never\n")

		require.Equal(t, 0, res.code, res.stderr)
		rows := listJSON(t, dir)
		require.Len(t, rows, 2)
		assert.Equal(t, "DONE", rows[0].Status)
		assert.Equal(t, "call mum", rows[1].Text)
	})

	t.Run("it reports unknown commands and keeps going", func(t *testing.T) {
		dir := t.TempDir()

		res := runApp(t, dir, "frobnicate\nadd a\nexit\n")

		require.Equal(t, 0, res.code, res.stderr)
		assert.Contains(t, res.stdout, "Unknown command.\n")
		assert.Len(t, listJSON(t, dir), 1)
	})

	t.Run("it prints errors and keeps going", func(t *testing.T) {
		dir := t.TempDir()

		res := runApp(t, dir, "add a\nremove 9\nremove 1\nquit\n")

		require.Equal(t, 0, res.code)
		assert.Contains(t, res.stderr, "Error: invalid task id 9: must be between 1 and 1")
		assert.Empty(t, readTodoFile(t, dir))
	})

	t.Run("it stops cleanly at end of input", func(t *testing.T) {
		res := runApp(t, t.TempDir(), "help\n")

		require.Equal(t, 0, res.code, res.stderr)
		assert.True(t, strings.HasSuffix(res.stdout, replPrompt+"\n"), res.stdout)
	})

	t.Run("it prompts for text when add has none", func(t *testing.T) {
		dir := t.TempDir()

		res := runApp(t, dir, "add\nwater plants\nquit\n")

		require.Equal(t, 0, res.code, res.stderr)
		assert.Contains(t, res.stdout, "Please enter your todo item: ")
		rows := listJSON(t, dir)
		require.Len(t, rows, 1)
		assert.Equal(t, "water plants", rows[0].Text)
	})

	t.Run("it prompts for an id when done has none", func(t *testing.T) {
		dir := t.TempDir()

		res := runApp(t, dir, "add a\ndone\n1\nquit\n")

		require.Equal(t, 0, res.code, res.stderr)
		assert.Contains(t, res.stdout, "Enter the ID of the todo you've done: ")
		assert.Equal(t, "DONE", listJSON(t, dir)[0].Status)
	})

	t.Run("it lists with a modifier", func(t *testing.T) {
		dir := t.TempDir()
		mustRun(t, dir, "add", "a")
		mustRun(t, dir, "add", "b")
		mustRun(t, dir, "done", "1")

		res := runApp(t, dir, "list --todo\nquit\n")

		require.Equal(t, 0, res.code, res.stderr)
		assert.Contains(t, res.stdout, "todos[1]{id,text,status,created_at}:")
		assert.Contains(t, res.stdout, "2,b,TODO")
	})

	t.Run("it skips help in quiet mode", func(t *testing.T) {
		res := runApp(t, t.TempDir(), "quit\n", "--quiet")

		require.Equal(t, 0, res.code, res.stderr)
		assert.NotContains(t, res.stdout, "USAGE")
	})

	t.Run("it starts from the repl subcommand", func(t *testing.T) {
		dir := t.TempDir()

		res := runApp(t, dir, "add a\nquit\n", "repl")

		require.Equal(t, 0, res.code, res.stderr)
		assert.Len(t, listJSON(t, dir), 1)
	})
}

func TestPrintHelp(t *testing.T) {
	t.Run("it lists every interactive command", func(t *testing.T) {
		var sb strings.Builder
		printHelp(&sb)

		for _, c := range commands {
			assert.Contains(t, sb.String(), c.Usage)
		}
	})
}
