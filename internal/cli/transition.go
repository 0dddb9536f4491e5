package cli

import (
	"context"
	"fmt"

	"github.com/leeovery/todo/internal/query"
	"github.com/leeovery/todo/internal/storage"
)

// runDone implements `todo done <id>`.
func (a *App) runDone(ctx context.Context, args []string) error {
	id, err := parseIDArg("done", args)
	if err != nil {
		return err
	}

	result, err := a.store.Complete(ctx, id)
	if err != nil {
		return err
	}

	if a.config.Quiet {
		return nil
	}
	if err := a.fmtr.FormatTransition(a.stdout, id, result); err != nil {
		return err
	}
	return a.showList(ctx, query.Filter{})
}

// parseIDArg expects exactly one positional ID argument for command.
func parseIDArg(command string, args []string) (int, error) {
	switch len(args) {
	case 0:
		return 0, fmt.Errorf("task ID is required. Usage: todo %s <id>", command)
	case 1:
		return storage.ParseID(args[0])
	default:
		return 0, fmt.Errorf("expected one task ID, got %d. Usage: todo %s <id>", len(args), command)
	}
}
