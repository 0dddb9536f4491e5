// Package storage provides the Store that owns the todo file: it loads the
// full record set on every call, assigns positional IDs by file order, and
// applies add/complete/remove under an advisory file lock.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog"

	"github.com/leeovery/todo/internal/storage/textline"
	"github.com/leeovery/todo/internal/task"
)

// DefaultFileName is the todo file used when no path is configured.
const DefaultFileName = "todo.txt"

const (
	defaultLockTimeout = 5 * time.Second
	lockRetryDelay     = 10 * time.Millisecond
)

// Store reads and rewrites a single todo file. It holds no task state
// between calls.
type Store struct {
	path        string
	lockPath    string
	lockTimeout time.Duration
	logger      zerolog.Logger
	now         func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLockTimeout sets how long to wait for the file lock. The default is 5 seconds.
func WithLockTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.lockTimeout = d
	}
}

// WithLogger sets the logger for debug and warning output.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// WithClock replaces time.Now as the source of creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a Store for the todo file at path. The file itself may be
// missing (Add creates it), but its directory must exist.
func NewStore(path string, opts ...Option) (*Store, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	dir := filepath.Dir(abs)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("todo directory does not exist: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("todo path parent is not a directory: %s", dir)
	}

	s := &Store{
		path:        abs,
		lockPath:    abs + ".lock",
		lockTimeout: defaultLockTimeout,
		logger:      zerolog.Nop(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path returns the absolute path of the todo file.
func (s *Store) Path() string {
	return s.path
}

// Load returns every task in file order; a task's positional ID is its index
// plus one. A missing file yields ErrStoreUnavailable, an empty one yields no
// tasks. Malformed lines are skipped and logged as warnings.
func (s *Store) Load(ctx context.Context) ([]task.Task, error) {
	if err := s.checkExists(); err != nil {
		return nil, err
	}

	unlock, err := s.acquireShared(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	data, err := s.read()
	if err != nil {
		return nil, err
	}

	tasks, bad, err := textline.ParseLenient(data)
	if err != nil {
		return nil, ioFailure("reading "+filepath.Base(s.path), err)
	}
	for _, b := range bad {
		s.logger.Warn().
			Str("file", s.path).
			Int("line", b.Line).
			Str("reason", b.Reason).
			Msg("skipping malformed record")
	}
	s.logger.Debug().Int("tasks", len(tasks)).Int("skipped", len(bad)).Msg("load: read tasks")

	return tasks, nil
}

// LoadStrict is Load without the leniency: the first malformed line fails
// the whole load.
func (s *Store) LoadStrict(ctx context.Context) ([]task.Task, error) {
	if err := s.checkExists(); err != nil {
		return nil, err
	}

	unlock, err := s.acquireShared(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	return s.readTasks()
}

// Add appends a new TODO task stamped with the current local time. Existing
// lines are not rewritten, so no existing ID changes.
func (s *Store) Add(ctx context.Context, text string) (task.Task, error) {
	if err := task.ValidateText(text); err != nil {
		return task.Task{}, err
	}

	unlock, err := s.acquireExclusive(ctx)
	if err != nil {
		return task.Task{}, err
	}
	defer unlock()

	t := task.NewTask(text, s.now())
	if err := textline.AppendTask(s.path, t); err != nil {
		return task.Task{}, ioFailure("appending task", err)
	}
	s.logger.Debug().Str("text", t.Text).Msg("write: appended task")

	return t, nil
}

// Complete marks the task at positional id as done and rewrites the file.
func (s *Store) Complete(ctx context.Context, id int) (task.TransitionResult, error) {
	var result task.TransitionResult

	err := s.Mutate(ctx, func(tasks []task.Task) ([]task.Task, error) {
		if err := checkID(id, len(tasks)); err != nil {
			return nil, err
		}
		result = task.Complete(&tasks[id-1])
		return tasks, nil
	})
	if err != nil {
		return task.TransitionResult{}, err
	}

	return result, nil
}

// Remove deletes the task at positional id and rewrites the file. Every
// later task's ID drops by one.
func (s *Store) Remove(ctx context.Context, id int) (task.Task, error) {
	var removed task.Task

	err := s.Mutate(ctx, func(tasks []task.Task) ([]task.Task, error) {
		if err := checkID(id, len(tasks)); err != nil {
			return nil, err
		}
		removed = tasks[id-1]

		remaining := make([]task.Task, 0, len(tasks)-1)
		remaining = append(remaining, tasks[:id-1]...)
		remaining = append(remaining, tasks[id:]...)
		return remaining, nil
	})
	if err != nil {
		return task.Task{}, err
	}

	return removed, nil
}

// Mutate runs the read-modify-rewrite flow under an exclusive lock:
// read the file, parse it strictly, pass the tasks to fn, and atomically
// rewrite the file with what fn returns. If fn fails nothing is written.
// Strict parsing keeps a rewrite from dropping lines that failed to decode.
func (s *Store) Mutate(ctx context.Context, fn func(tasks []task.Task) ([]task.Task, error)) error {
	if err := s.checkExists(); err != nil {
		return err
	}

	unlock, err := s.acquireExclusive(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	tasks, err := s.readTasks()
	if err != nil {
		return err
	}

	modified, err := fn(tasks)
	if err != nil {
		return err
	}

	s.logger.Debug().Msg("write: atomic rewrite")
	if err := textline.WriteTasks(s.path, modified); err != nil {
		return ioFailure("rewriting "+filepath.Base(s.path), err)
	}
	s.logger.Debug().Int("tasks", len(modified)).Msg("write: rewrite complete")

	return nil
}

func (s *Store) readTasks() ([]task.Task, error) {
	data, err := s.read()
	if err != nil {
		return nil, err
	}

	tasks, err := textline.Parse(data)
	if err != nil {
		if errors.Is(err, textline.ErrMalformedRecord) {
			return nil, fmt.Errorf("%s: %w", filepath.Base(s.path), err)
		}
		return nil, ioFailure("reading "+filepath.Base(s.path), err)
	}
	s.logger.Debug().Int("tasks", len(tasks)).Msg("load: read tasks")

	return tasks, nil
}

func (s *Store) read() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrStoreUnavailable, s.path)
		}
		return nil, ioFailure("reading "+filepath.Base(s.path), err)
	}
	return data, nil
}

// checkExists fails fast on a missing file so that read-only commands do not
// leave a lock file behind.
func (s *Store) checkExists() error {
	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrStoreUnavailable, s.path)
		}
		return ioFailure("stat "+filepath.Base(s.path), err)
	}
	return nil
}

func (s *Store) acquireExclusive(ctx context.Context) (unlock func(), err error) {
	return s.acquire(ctx, true)
}

func (s *Store) acquireShared(ctx context.Context) (unlock func(), err error) {
	return s.acquire(ctx, false)
}

// acquire takes the advisory lock with the configured timeout and returns
// a function that releases it.
func (s *Store) acquire(ctx context.Context, exclusive bool) (func(), error) {
	kind := "shared"
	if exclusive {
		kind = "exclusive"
	}

	fl := flock.New(s.lockPath)
	lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	s.logger.Debug().Str("kind", kind).Msg("lock: acquiring")

	var (
		locked bool
		err    error
	)
	if exclusive {
		locked, err = fl.TryLockContext(lockCtx, lockRetryDelay)
	} else {
		locked, err = fl.TryRLockContext(lockCtx, lockRetryDelay)
	}
	switch {
	case ctx.Err() != nil:
		return nil, ctx.Err()
	case err != nil && !errors.Is(err, context.DeadlineExceeded):
		return nil, ioFailure("locking "+filepath.Base(s.lockPath), err)
	case err != nil || !locked:
		return nil, ErrLockTimeout
	}

	s.logger.Debug().Str("kind", kind).Msg("lock: acquired")
	return func() {
		_ = fl.Unlock()
		s.logger.Debug().Str("kind", kind).Msg("lock: released")
	}, nil
}
