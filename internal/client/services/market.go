package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/nftmarket/internal/chain"
	"github.com/dmitrijs2005/nftmarket/internal/logging"
)

type MarketService interface {
	// Buy purchases an unsold item, paying its listed price.
	Buy(ctx context.Context, itemID uint64) error
}

type marketService struct {
	sessions Sessions
	logger   logging.Logger
}

func NewMarketService(sessions Sessions, logger logging.Logger) MarketService {
	return &marketService{sessions: sessions, logger: logger.With("module", "market")}
}

func (s *marketService) Buy(ctx context.Context, itemID uint64) error {
	sess, err := s.sessions.Acquire(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	items, err := sess.FetchMarketItems(ctx)
	if err != nil {
		return fmt.Errorf("fetch market items: %w", err)
	}

	for _, it := range items {
		if it.ItemId == nil || !it.ItemId.IsUint64() || it.ItemId.Uint64() != itemID || it.Sold {
			continue
		}

		receipt, err := sess.CreateMarketSale(ctx, itemID, it.Price)
		if err != nil {
			s.logger.Error(ctx, "purchase failed", "item_id", itemID, "tx", chain.TxHash(receipt, err), "error", err)
			return fmt.Errorf("buy item %d: %w", itemID, err)
		}

		s.logger.Info(ctx, "item purchased", "item_id", itemID, "price_wei", it.Price.String(), "tx", chain.TxHash(receipt, nil))
		return nil
	}

	return fmt.Errorf("%w: %d", ErrItemNotFound, itemID)
}
