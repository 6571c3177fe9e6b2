package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/nftmarket/internal/client/view"
)

// Pending lists journal records whose listing has not completed.
func (a *App) Pending(ctx context.Context) error {
	ls, err := a.create.Pending(ctx)
	if err != nil {
		return err
	}
	if len(ls) == 0 {
		fmt.Fprintln(a.out, view.FormatMuted("Nothing pending"))
		return nil
	}

	for _, l := range ls {
		line := fmt.Sprintf("%s  %-8s  %s  %s ETH", l.ID, l.Status, l.Name, l.Price)
		if l.Relistable() {
			line += fmt.Sprintf("  token #%d", l.TokenID)
		}
		if l.Error != "" {
			line += "  " + view.FormatMuted(l.Error)
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}

// Relist retries the listing step of an orphaned or unconfirmed record.
func (a *App) Relist(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: relist <record id>")
	}

	l, err := a.create.Relist(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, view.FormatSuccess(fmt.Sprintf("Listed token #%d for %s ETH", l.TokenID, l.Price)))
	return nil
}
