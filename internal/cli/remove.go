package cli

import (
	"context"

	"github.com/leeovery/todo/internal/query"
)

// runRemove implements `todo remove <id>`. Every task after the removed one
// moves up one ID, which the list printed afterwards shows.
func (a *App) runRemove(ctx context.Context, args []string) error {
	id, err := parseIDArg("remove", args)
	if err != nil {
		return err
	}

	removed, err := a.store.Remove(ctx, id)
	if err != nil {
		return err
	}

	if a.config.Quiet {
		return nil
	}
	if err := a.fmtr.FormatRemoval(a.stdout, id, removed); err != nil {
		return err
	}
	return a.showList(ctx, query.Filter{})
}
