package services

import (
	"context"
	"math/big"

	"github.com/dmitrijs2005/nftmarket/internal/chain"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Marketplace is the per-action view of the two contracts. *chain.Session
// implements it.
type Marketplace interface {
	Account() ethcommon.Address
	TokenAddress() ethcommon.Address

	CreateToken(ctx context.Context, uri string) (*types.Receipt, error)
	Receipt(ctx context.Context, txHash string) (*types.Receipt, error)
	TokenURI(ctx context.Context, tokenID uint64) (string, error)

	ListingPrice(ctx context.Context) (*big.Int, error)
	CreateMarketItem(ctx context.Context, tokenID uint64, price, fee *big.Int) (*types.Receipt, error)
	CreateMarketSale(ctx context.Context, itemID uint64, price *big.Int) (*types.Receipt, error)

	FetchItemsCreated(ctx context.Context) ([]chain.ItemRecord, error)
	FetchMarketItems(ctx context.Context) ([]chain.ItemRecord, error)
	FetchMyNFTs(ctx context.Context) ([]chain.ItemRecord, error)

	Close()
}

// TextSigner is implemented by sessions holding an unlocked key.
type TextSigner interface {
	SignText(msg []byte) ([]byte, error)
}

// Sessions is the explicit "acquire session" step every workflow starts
// with.
type Sessions interface {
	Acquire(ctx context.Context) (Marketplace, error)
}

type SessionFunc func(ctx context.Context) (Marketplace, error)

func (f SessionFunc) Acquire(ctx context.Context) (Marketplace, error) { return f(ctx) }

// ChainSessions adapts a chain.Connector.
func ChainSessions(c *chain.Connector) Sessions {
	return SessionFunc(func(ctx context.Context) (Marketplace, error) {
		s, err := c.Acquire(ctx)
		if err != nil {
			return nil, err
		}
		return s, nil
	})
}

var _ Marketplace = (*chain.Session)(nil)
var _ TextSigner = (*chain.Session)(nil)
