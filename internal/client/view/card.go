// Package view renders marketplace items for the terminal.
package view

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/nftmarket/internal/models"
)

const (
	CardWidth     = 34
	DefaultPerRow = 4
	BuyLabel      = "[ Buy ]"
)

var ErrNotActionable = errors.New("card has no purchase action")

// PurchaseFunc is invoked when the user buys the item shown on a card.
type PurchaseFunc func(ctx context.Context, item models.MarketItem) error

// Card shows one item. It holds no state besides its inputs; the purchase
// action exists only when a handler was supplied.
type Card struct {
	item       models.MarketItem
	onPurchase PurchaseFunc
}

func NewCard(item models.MarketItem, onPurchase PurchaseFunc) Card {
	return Card{item: item, onPurchase: onPurchase}
}

// Cards wraps every item with the same purchase handler.
func Cards(items []models.MarketItem, onPurchase PurchaseFunc) []Card {
	cards := make([]Card, 0, len(items))
	for _, it := range items {
		cards = append(cards, NewCard(it, onPurchase))
	}
	return cards
}

func (c Card) Item() models.MarketItem { return c.item }

func (c Card) Actionable() bool { return c.onPurchase != nil }

func (c Card) Purchase(ctx context.Context) error {
	if c.onPurchase == nil {
		return ErrNotActionable
	}
	return c.onPurchase(ctx, c.item)
}

func (c Card) Render() string {
	inner := CardWidth - 2

	var lines []string
	if c.item.Image != "" {
		lines = append(lines, StyleMuted.Render(truncate(c.item.Image, inner)))
	}
	lines = append(lines,
		StyleName.Render(truncate(c.item.Name, inner)),
		c.item.Description,
		"",
		StylePrice.Render(c.item.Price+" ETH"),
	)
	if c.Actionable() {
		lines = append(lines, StyleButton.Render(BuyLabel))
	}
	lines = append(lines, StyleMuted.Render(fmt.Sprintf("#%d", c.item.ItemID)))

	return StyleCard.Width(CardWidth).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// RenderGrid lays cards out in rows of perRow (DefaultPerRow when perRow is
// not positive).
func RenderGrid(cards []Card, perRow int) string {
	if perRow <= 0 {
		perRow = DefaultPerRow
	}

	var rows []string
	for start := 0; start < len(cards); start += perRow {
		end := min(start+perRow, len(cards))

		rendered := make([]string, 0, end-start)
		for _, c := range cards[start:end] {
			rendered = append(rendered, c.Render())
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}

	return strings.Join(rows, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
