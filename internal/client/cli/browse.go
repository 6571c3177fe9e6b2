package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/nftmarket/internal/client/view"
	"github.com/dmitrijs2005/nftmarket/internal/models"
)

// Gallery shows the items created by the wallet account, then the sold ones.
func (a *App) Gallery(ctx context.Context) error {
	g, err := a.gallery.Load(ctx)
	if err != nil {
		return err
	}
	a.printGallery(g)
	return nil
}

func (a *App) printGallery(g *models.Gallery) {
	if g.Empty() {
		fmt.Fprintln(a.out, view.FormatMuted("No assets created"))
		return
	}

	fmt.Fprintln(a.out, view.FormatTitle("Items Created"))
	fmt.Fprintln(a.out, view.RenderGrid(view.Cards(g.Items, nil), view.DefaultPerRow))

	if len(g.Sold) > 0 {
		fmt.Fprintln(a.out, view.FormatTitle("Items sold"))
		fmt.Fprintln(a.out, view.RenderGrid(view.Cards(g.Sold, nil), view.DefaultPerRow))
	}
}

// Market shows the unsold listings with a buy action on every card.
func (a *App) Market(ctx context.Context) error {
	items, err := a.gallery.Market(ctx)
	if err != nil {
		return err
	}

	cards := view.Cards(items, a.purchase)
	a.cards = make(map[uint64]view.Card, len(cards))
	for _, c := range cards {
		a.cards[c.Item().ItemID] = c
	}

	a.printCards(cards, "No items in marketplace")
	return nil
}

// Owned shows the items bought by the wallet account.
func (a *App) Owned(ctx context.Context) error {
	items, err := a.gallery.Owned(ctx)
	if err != nil {
		return err
	}
	a.printCards(view.Cards(items, nil), "No assets owned")
	return nil
}

// Buy purchases a market item by id through its card.
func (a *App) Buy(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: buy <item id>")
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid item id %q", args[0])
	}

	card, ok := a.cards[id]
	if !ok {
		card = view.NewCard(models.MarketItem{ItemID: id}, a.purchase)
	}

	if err := card.Purchase(ctx); err != nil {
		return err
	}

	delete(a.cards, id)
	fmt.Fprintln(a.out, view.FormatSuccess(fmt.Sprintf("Bought item #%d", id)))
	return nil
}

func (a *App) purchase(ctx context.Context, item models.MarketItem) error {
	return a.market.Buy(ctx, item.ItemID)
}

// Remote shows the gateway's view of the gallery, or of the market when
// the first argument is "market".
func (a *App) Remote(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "market" {
		items, err := a.remote.Market(ctx)
		if err != nil {
			return err
		}
		a.printCards(view.Cards(items, nil), "No items in marketplace")
		return nil
	}

	g, err := a.remote.Gallery(ctx)
	if err != nil {
		return err
	}
	a.printGallery(g)
	return nil
}

func (a *App) printCards(cards []view.Card, empty string) {
	if len(cards) == 0 {
		fmt.Fprintln(a.out, view.FormatMuted(empty))
		return
	}
	fmt.Fprintln(a.out, view.RenderGrid(cards, view.DefaultPerRow))
}
