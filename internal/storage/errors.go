package storage

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/leeovery/todo/internal/storage/textline"
)

var (
	// ErrStoreUnavailable is returned when the todo file does not exist.
	ErrStoreUnavailable = errors.New("todo file not found")
	// ErrMalformedRecord is returned when a line cannot be decoded.
	ErrMalformedRecord = textline.ErrMalformedRecord
	// ErrInvalidID is returned for non-numeric or out-of-range task IDs.
	ErrInvalidID = errors.New("invalid task id")
	// ErrIOFailure wraps read and write failures on the todo file.
	ErrIOFailure = errors.New("todo file i/o failure")
	// ErrLockTimeout is returned when the file lock cannot be acquired in time.
	ErrLockTimeout = errors.New("could not acquire lock on todo file - another process may be using it")
)

// InvalidIDError reports an ID outside [1, Count].
type InvalidIDError struct {
	ID    int
	Count int
}

func (e *InvalidIDError) Error() string {
	if e.Count == 0 {
		return fmt.Sprintf("%s %d: there are no tasks", ErrInvalidID, e.ID)
	}
	return fmt.Sprintf("%s %d: must be between 1 and %d", ErrInvalidID, e.ID, e.Count)
}

// Is lets errors.Is match ErrInvalidID.
func (e *InvalidIDError) Is(target error) bool {
	return target == ErrInvalidID
}

// ParseID parses a user supplied positional ID. Only positive integers are
// accepted; range checking happens against the loaded tasks.
func ParseID(s string) (int, error) {
	s = strings.TrimSpace(s)
	id, err := strconv.Atoi(s)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w %q: must be a positive integer", ErrInvalidID, s)
	}
	return id, nil
}

func checkID(id, count int) error {
	if id < 1 || id > count {
		return &InvalidIDError{ID: id, Count: count}
	}
	return nil
}

func ioFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrIOFailure, op, err)
}
