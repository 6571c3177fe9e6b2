package listings

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/nftmarket/internal/models"
)

var ErrNotRelistable = errors.New("listing is not awaiting a relist")

type Repository interface {
	// Create inserts a new record. ID, CreatedAt and UpdatedAt must be set.
	Create(ctx context.Context, l *models.Listing) error

	// Update overwrites the mutable columns of an existing record.
	Update(ctx context.Context, l *models.Listing) error

	// GetByID returns common.ErrorNotFound for unknown ids.
	GetByID(ctx context.Context, id string) (*models.Listing, error)

	// GetUnlisted returns records not yet listed, oldest first.
	GetUnlisted(ctx context.Context) ([]models.Listing, error)

	// Claim atomically moves an orphaned or unconfirmed record to
	// listing and returns it. A record already in listing (or any other
	// status) yields ErrNotRelistable, so only one caller can run the
	// listing step of a token.
	Claim(ctx context.Context, id string) (*models.Listing, error)
}
