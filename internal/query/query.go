// Package query builds the filtered and ordered view of a loaded task list
// without touching the store.
package query

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/leeovery/todo/internal/task"
)

// Order selects how a view is sorted.
type Order string

const (
	// OrderFile keeps file order.
	OrderFile Order = ""
	// OrderAscTime sorts by creation time, oldest first.
	OrderAscTime Order = "asctime"
	// OrderDescTime sorts by creation time, newest first.
	OrderDescTime Order = "desctime"
)

var (
	// ErrUnknownModifier is returned for a listing modifier that is not recognised.
	ErrUnknownModifier = errors.New("unknown list modifier")
	// ErrConflictingModifiers is returned when more than one listing modifier is given.
	ErrConflictingModifiers = errors.New("only one list modifier may be given")
)

// Filter restricts and orders a view. The zero value selects every task in
// file order. Status and Order compose, although the command surface only
// ever sets one of them.
type Filter struct {
	Status task.Status
	Order  Order
}

// IsZero reports whether f selects every task in file order.
func (f Filter) IsZero() bool {
	return f.Status == "" && f.Order == OrderFile
}

// Row is one task in a view together with its positional ID.
type Row struct {
	ID   int
	Task task.Task
}

// View numbers tasks by file position (1-based) and then applies f. IDs are
// fixed before filtering and sorting, so they always refer back to the file.
// Sorting compares CreatedAt as a string and is stable: tasks with equal
// timestamps keep their file order in both directions.
func View(tasks []task.Task, f Filter) []Row {
	rows := make([]Row, 0, len(tasks))
	for i, t := range tasks {
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		rows = append(rows, Row{ID: i + 1, Task: t})
	}

	switch f.Order {
	case OrderAscTime:
		slices.SortStableFunc(rows, func(a, b Row) int {
			return strings.Compare(a.Task.CreatedAt, b.Task.CreatedAt)
		})
	case OrderDescTime:
		slices.SortStableFunc(rows, func(a, b Row) int {
			return strings.Compare(b.Task.CreatedAt, a.Task.CreatedAt)
		})
	}

	return rows
}

// modifiers maps each listing modifier to the filter it selects.
var modifiers = map[string]Filter{
	"--asctime":  {Order: OrderAscTime},
	"--desctime": {Order: OrderDescTime},
	"--done":     {Status: task.StatusDone},
	"--todo":     {Status: task.StatusTodo},
}

// ModifierNames returns the accepted listing modifiers in display order.
func ModifierNames() []string {
	return []string{"--asctime", "--desctime", "--done", "--todo"}
}

// ParseModifiers turns listing arguments into a Filter. No arguments select
// everything; a single known modifier selects its filter; anything else is
// an error.
func ParseModifiers(args []string) (Filter, error) {
	var (
		f    Filter
		seen string
	)
	for _, arg := range args {
		m, ok := modifiers[arg]
		if !ok {
			return Filter{}, fmt.Errorf("%w %q (expected one of %s)", ErrUnknownModifier, arg, strings.Join(ModifierNames(), ", "))
		}
		if seen != "" {
			return Filter{}, fmt.Errorf("%w: got %s and %s", ErrConflictingModifiers, seen, arg)
		}
		seen = arg
		f = m
	}
	return f, nil
}
