package client

import (
	"context"

	"github.com/dmitrijs2005/nftmarket/internal/models"
)

// Client is the transport-agnostic contract of the gallery gateway.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	Challenge(ctx context.Context, address string) (string, error)
	Login(ctx context.Context, address string, signature []byte) error
	Gallery(ctx context.Context) (*models.Gallery, error)
	Market(ctx context.Context) ([]models.MarketItem, error)
}
