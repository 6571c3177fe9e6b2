package services

import (
	"context"

	"github.com/dmitrijs2005/nftmarket/internal/gallery"
	"github.com/dmitrijs2005/nftmarket/internal/logging"
	"github.com/dmitrijs2005/nftmarket/internal/models"
)

type GalleryService interface {
	// Load returns the items created by the session account with the sold
	// subset. A failed load returns no gallery.
	Load(ctx context.Context) (*models.Gallery, error)
	// Market returns the unsold listings.
	Market(ctx context.Context) ([]models.MarketItem, error)
	// Owned returns the items bought by the session account.
	Owned(ctx context.Context) ([]models.MarketItem, error)
}

type galleryService struct {
	sessions Sessions
	loader   *gallery.Loader
	logger   logging.Logger
}

func NewGalleryService(sessions Sessions, fetcher gallery.MetadataFetcher, logger logging.Logger) GalleryService {
	return &galleryService{
		sessions: sessions,
		loader:   gallery.NewLoader(fetcher, logger),
		logger:   logger.With("module", "gallery-service"),
	}
}

func (s *galleryService) Load(ctx context.Context) (*models.Gallery, error) {
	sess, err := s.sessions.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	g, err := s.loader.Created(ctx, sess)
	if err != nil {
		return nil, err
	}

	s.logger.Debug(ctx, "gallery loaded", "items", len(g.Items), "sold", len(g.Sold))
	return g, nil
}

func (s *galleryService) Market(ctx context.Context) ([]models.MarketItem, error) {
	sess, err := s.sessions.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	return s.loader.Market(ctx, sess)
}

func (s *galleryService) Owned(ctx context.Context) ([]models.MarketItem, error) {
	sess, err := s.sessions.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	return s.loader.Owned(ctx, sess)
}
