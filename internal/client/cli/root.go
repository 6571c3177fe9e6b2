package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/nftmarket/internal/client/view"
)

func (a *App) getStatus() string {
	s := a.config.Network
	if m := a.Mode(); m != "" {
		s += " remote " + string(m)
	}
	if a.draft.FileURL != "" {
		s += " *"
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root prints the banner, starts the gateway watcher and blocks in the REPL.
func (a *App) Root(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	printlnFn(view.FormatTitle("NFT Marketplace") + " (type 'help' for commands)")

	if a.gateway != nil && a.config.GatewayCheckInterval > 0 {
		go a.StartOnlineStatusWatcher(ctx, a.config.GatewayCheckInterval)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}
