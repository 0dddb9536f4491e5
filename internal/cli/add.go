package cli

import (
	"context"
	"fmt"

	"github.com/leeovery/todo/internal/query"
)

// runAdd implements `todo add <text>`: it appends a TODO item and shows the
// full list.
func (a *App) runAdd(ctx context.Context, text string) error {
	if text == "" {
		return fmt.Errorf("task text is required. Usage: todo add <text>")
	}

	added, err := a.store.Add(ctx, text)
	if err != nil {
		return err
	}
	a.logger.Debug().Str("text", added.Text).Str("created_at", added.CreatedAt).Msg("task added")

	if a.config.Quiet {
		return nil
	}
	return a.showList(ctx, query.Filter{})
}
