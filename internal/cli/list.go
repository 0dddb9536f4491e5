package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/leeovery/todo/internal/query"
	"github.com/leeovery/todo/internal/storage"
)

const (
	noStoreMsg = "No %s found. You might want to add some todo items first."
	noItemsMsg = "No todo items found, please add some items first."
)

// runList implements `todo list [modifier]`.
func (a *App) runList(ctx context.Context, args []string) error {
	f, err := query.ParseModifiers(args)
	if err != nil {
		return err
	}
	return a.showList(ctx, f)
}

// showList loads the store and renders the view selected by f. A missing
// file and an empty view both produce a notice rather than a table.
func (a *App) showList(ctx context.Context, f query.Filter) error {
	tasks, err := a.store.Load(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrStoreUnavailable) {
			return a.fmtr.FormatMessage(a.stdout, fmt.Sprintf(noStoreMsg, filepath.Base(a.store.Path())))
		}
		return err
	}

	rows := query.View(tasks, f)
	a.logger.Debug().
		Int("tasks", len(tasks)).
		Int("rows", len(rows)).
		Str("status", string(f.Status)).
		Str("order", string(f.Order)).
		Msg("view built")

	if len(rows) == 0 {
		return a.fmtr.FormatMessage(a.stdout, noItemsMsg)
	}

	if a.config.Quiet {
		for _, r := range rows {
			fmt.Fprintln(a.stdout, r.ID)
		}
		return nil
	}

	return a.fmtr.FormatTaskList(a.stdout, rows)
}
