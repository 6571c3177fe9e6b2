// Package gallery joins on-chain marketplace records with their metadata
// documents into display records.
package gallery

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/nftmarket/internal/chain"
	"github.com/dmitrijs2005/nftmarket/internal/logging"
	"github.com/dmitrijs2005/nftmarket/internal/models"
	"github.com/dmitrijs2005/nftmarket/internal/price"
	"golang.org/x/sync/errgroup"
)

// TokenReader resolves token ids to metadata URIs.
type TokenReader interface {
	TokenURI(ctx context.Context, tokenID uint64) (string, error)
}

// Source is a chain client able to list marketplace items.
type Source interface {
	TokenReader
	FetchItemsCreated(ctx context.Context) ([]chain.ItemRecord, error)
	FetchMarketItems(ctx context.Context) ([]chain.ItemRecord, error)
	FetchMyNFTs(ctx context.Context) ([]chain.ItemRecord, error)
}

type MetadataFetcher interface {
	FetchMetadata(ctx context.Context, uri string) (models.Metadata, error)
}

type Loader struct {
	fetcher MetadataFetcher
	logger  logging.Logger
}

func NewLoader(fetcher MetadataFetcher, logger logging.Logger) *Loader {
	return &Loader{fetcher: fetcher, logger: logger.With("module", "gallery")}
}

// Created loads the items created by the source's account and partitions
// the sold ones.
func (l *Loader) Created(ctx context.Context, src Source) (*models.Gallery, error) {
	records, err := src.FetchItemsCreated(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch created items: %w", err)
	}

	items, err := l.Join(ctx, src, records)
	if err != nil {
		return nil, err
	}

	return models.NewGallery(items), nil
}

// Market loads the unsold listings.
func (l *Loader) Market(ctx context.Context, src Source) ([]models.MarketItem, error) {
	records, err := src.FetchMarketItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch market items: %w", err)
	}
	return l.Join(ctx, src, records)
}

// Owned loads the items bought by the source's account.
func (l *Loader) Owned(ctx context.Context, src Source) ([]models.MarketItem, error) {
	records, err := src.FetchMyNFTs(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch owned items: %w", err)
	}
	return l.Join(ctx, src, records)
}

// Join resolves every record's metadata concurrently. The result keeps the
// order of records. The first failure cancels the remaining fetches and
// fails the whole join.
func (l *Loader) Join(ctx context.Context, tokens TokenReader, records []chain.ItemRecord) ([]models.MarketItem, error) {
	items := make([]models.MarketItem, len(records))

	g, gctx := errgroup.WithContext(ctx)
	for i := range records {
		g.Go(func() error {
			item, err := l.resolve(gctx, tokens, records[i])
			if err != nil {
				return err
			}
			items[i] = item
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		l.logger.Error(ctx, "gallery join failed", "items", len(records), "error", err)
		return nil, err
	}

	return items, nil
}

func (l *Loader) resolve(ctx context.Context, tokens TokenReader, r chain.ItemRecord) (models.MarketItem, error) {
	itemID, tokenID, err := recordIDs(r)
	if err != nil {
		return models.MarketItem{}, err
	}

	uri, err := tokens.TokenURI(ctx, tokenID)
	if err != nil {
		return models.MarketItem{}, fmt.Errorf("token %d uri: %w", tokenID, err)
	}

	md, err := l.fetcher.FetchMetadata(ctx, uri)
	if err != nil {
		return models.MarketItem{}, fmt.Errorf("token %d metadata: %w", tokenID, err)
	}

	return models.MarketItem{
		ItemID:      itemID,
		TokenID:     tokenID,
		Seller:      r.Seller.Hex(),
		Owner:       r.Owner.Hex(),
		Price:       price.FromWei(r.Price),
		Sold:        r.Sold,
		Image:       md.Image,
		Name:        md.Name,
		Description: md.Description,
	}, nil
}

func recordIDs(r chain.ItemRecord) (uint64, uint64, error) {
	if r.ItemId == nil || !r.ItemId.IsUint64() {
		return 0, 0, fmt.Errorf("%w: item id %v", chain.ErrBadResult, r.ItemId)
	}
	if r.TokenId == nil || !r.TokenId.IsUint64() {
		return 0, 0, fmt.Errorf("%w: token id %v", chain.ErrBadResult, r.TokenId)
	}
	return r.ItemId.Uint64(), r.TokenId.Uint64(), nil
}
