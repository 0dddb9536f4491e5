// Package cli implements the todo command-line interface: one-shot
// subcommands, the interactive loop, and output formatting.
package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/leeovery/todo/internal/storage"
)

// App is the todo CLI application.
type App struct {
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	workDir string
	version string
	now     func() time.Time
	isTTY   func(io.Writer) bool

	config Config
	store  *storage.Store
	fmtr   Formatter
	logger zerolog.Logger
}

// Option configures an App.
type Option func(*App)

// WithClock replaces time.Now for new task timestamps and relative ages.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}

// WithVersion sets the version string reported by --version.
func WithVersion(v string) Option {
	return func(a *App) {
		a.version = v
	}
}

// WithTTYDetector replaces the check used to pick the default output format.
func WithTTYDetector(fn func(io.Writer) bool) Option {
	return func(a *App) {
		a.isTTY = fn
	}
}

// NewApp creates an App reading commands from stdin and writing to stdout
// and stderr. Relative todo file paths resolve against workDir.
func NewApp(stdin io.Reader, stdout, stderr io.Writer, workDir string, opts ...Option) *App {
	a := &App{
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
		workDir: workDir,
		version: "dev",
		now:     time.Now,
		isTTY:   DetectTTY,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run parses args (args[0] is the program name), runs the selected command
// and returns the process exit code: 0 on success, 1 on error.
func (a *App) Run(ctx context.Context, args []string) int {
	if err := a.rootCommand().Run(ctx, args); err != nil {
		fmt.Fprintf(a.stderr, "Error: %s\n", err)
		return 1
	}
	return 0
}

// setup turns the parsed configuration into a logger, formatter and store.
func (a *App) setup() error {
	logger, err := newLogger(a.stderr, a.config.LogLevel, a.config.Verbose)
	if err != nil {
		return err
	}
	a.logger = logger

	format, err := ResolveFormat(a.config.Toon, a.config.Pretty, a.config.JSON, a.isTTY(a.stdout))
	if err != nil {
		return err
	}
	a.config.Format = format
	a.fmtr = newFormatter(format, a.now)
	a.logger.Debug().Str("format", string(format)).Msg("format resolved")

	path := a.config.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(a.workDir, path)
	}
	store, err := storage.NewStore(path,
		storage.WithLockTimeout(a.config.LockTimeout),
		storage.WithLogger(a.logger.With().Str("component", "store").Logger()),
		storage.WithClock(a.now),
	)
	if err != nil {
		return err
	}
	a.store = store
	a.logger.Debug().Str("file", store.Path()).Msg("store opened")

	return nil
}
