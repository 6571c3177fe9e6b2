package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/dmitrijs2005/nftmarket/internal/chain"
	"github.com/dmitrijs2005/nftmarket/internal/client/repositories/listings"
	"github.com/dmitrijs2005/nftmarket/internal/contentstore"
	"github.com/dmitrijs2005/nftmarket/internal/logging"
	"github.com/dmitrijs2005/nftmarket/internal/models"
	"github.com/dmitrijs2005/nftmarket/internal/price"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

type CreateService interface {
	// UploadAsset pins the asset and stores its URL in the draft. On failure
	// the draft keeps its previous FileURL.
	UploadAsset(ctx context.Context, draft *models.ListingDraft, r io.Reader) error

	// CreateMarket uploads the metadata, mints the token and lists it. When
	// the mint was sent but the token was not listed, the journal record is
	// returned together with the error.
	CreateMarket(ctx context.Context, draft models.ListingDraft) (*models.Listing, error)

	// Relist retries the listing step of an orphaned or unconfirmed record.
	// An unconfirmed mint first has its token id read from the mint receipt.
	Relist(ctx context.Context, id string) (*models.Listing, error)

	// Pending returns journal records that are not listed.
	Pending(ctx context.Context) ([]models.Listing, error)
}

type createService struct {
	store    contentstore.Store
	sessions Sessions
	journal  listings.Repository
	logger   logging.Logger
	now      func() time.Time
}

func NewCreateService(store contentstore.Store, sessions Sessions, journal listings.Repository, logger logging.Logger) CreateService {
	return &createService{
		store:    store,
		sessions: sessions,
		journal:  journal,
		logger:   logger.With("module", "create"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *createService) UploadAsset(ctx context.Context, draft *models.ListingDraft, r io.Reader) error {
	draft.Uploading = true
	defer func() { draft.Uploading = false }()

	uri, err := s.store.Upload(ctx, r)
	if err != nil {
		s.logger.Error(ctx, "error uploading file", "error", err)
		return err
	}

	draft.FileURL = uri
	return nil
}

func (s *createService) CreateMarket(ctx context.Context, draft models.ListingDraft) (*models.Listing, error) {
	if !draft.Complete() {
		return nil, ErrIncompleteDraft
	}

	wei, err := price.ToWei(draft.Price)
	if err != nil {
		return nil, err
	}

	metadataURI, err := s.store.UploadJSON(ctx, models.Metadata{
		Name:        draft.Name,
		Description: draft.Description,
		Image:       draft.FileURL,
	})
	if err != nil {
		s.logger.Error(ctx, "error uploading metadata", "error", err)
		return nil, fmt.Errorf("upload metadata: %w", err)
	}

	now := s.now()
	l := &models.Listing{
		ID:          uuid.NewString(),
		Name:        draft.Name,
		Description: draft.Description,
		Price:       price.FromWei(wei),
		FileURL:     draft.FileURL,
		MetadataURI: metadataURI,
		Status:      models.ListingPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.journal.Create(context.WithoutCancel(ctx), l); err != nil {
		s.logger.Warn(ctx, "journal write failed", "listing", l.ID, "error", err)
	}

	sess, err := s.sessions.Acquire(ctx)
	if err != nil {
		return nil, s.fail(ctx, l, err)
	}
	defer sess.Close()

	// recorded is set once the journal holds the mint hash as unconfirmed
	var recorded bool
	mintCtx := chain.WithSentHook(ctx, func(hash ethcommon.Hash) {
		l.MintTx = hash.Hex()
		l.Status = models.ListingUnconfirmed
		recorded = s.save(ctx, l) == nil
	})

	receipt, err := sess.CreateToken(mintCtx, metadataURI)
	if hash := chain.TxHash(receipt, err); hash != "" {
		l.MintTx = hash
	}
	if err != nil {
		if !l.MintSent() || errors.Is(err, chain.ErrReverted) {
			// no token exists, so the draft may be submitted again
			l.Status = models.ListingPending
			return nil, s.fail(ctx, l, fmt.Errorf("mint: %w", err))
		}
		l.Status = models.ListingUnconfirmed
		return l, s.fail(ctx, l, fmt.Errorf("mint: %w", err))
	}

	tokenID, err := chain.ExtractMintedTokenID(receipt)
	if err != nil {
		l.Status = models.ListingUnconfirmed
		return l, s.fail(ctx, l, err)
	}
	s.logger.Info(ctx, "token minted", "listing", l.ID, "token_id", tokenID, "tx", l.MintTx)

	if recorded {
		// a relist may have taken the unconfirmed record while the mint was waiting
		if _, err := s.journal.Claim(ctx, l.ID); err != nil {
			if errors.Is(err, listings.ErrNotRelistable) {
				l.TokenID = tokenID
				l.Status = models.ListingListing
				s.logger.Warn(ctx, "listing step owned elsewhere", "listing", l.ID, "token_id", tokenID)
				return l, err
			}
			s.logger.Warn(ctx, "journal claim failed", "listing", l.ID, "error", err)
		}
	}

	l.TokenID = tokenID
	l.Status = models.ListingListing
	s.save(ctx, l)

	return s.list(ctx, sess, l, wei)
}

func (s *createService) Relist(ctx context.Context, id string) (*models.Listing, error) {
	l, err := s.journal.Claim(ctx, id)
	if err != nil {
		return nil, err
	}

	wei, err := price.ToWei(l.Price)
	if err != nil {
		return l, s.release(ctx, l, err)
	}

	sess, err := s.sessions.Acquire(ctx)
	if err != nil {
		return l, s.release(ctx, l, err)
	}
	defer sess.Close()

	// token ids start at 1, so zero means the mint receipt was never seen
	if l.TokenID == 0 {
		if err := s.recoverTokenID(ctx, sess, l); err != nil {
			return l, s.release(ctx, l, err)
		}
	}

	return s.list(ctx, sess, l, wei)
}

// recoverTokenID looks up the receipt of an unconfirmed mint.
func (s *createService) recoverTokenID(ctx context.Context, sess Marketplace, l *models.Listing) error {
	receipt, err := sess.Receipt(ctx, l.MintTx)
	if err != nil {
		return fmt.Errorf("mint: %w", err)
	}

	tokenID, err := chain.ExtractMintedTokenID(receipt)
	if err != nil {
		return err
	}

	l.TokenID = tokenID
	s.save(ctx, l)
	s.logger.Info(ctx, "token minted", "listing", l.ID, "token_id", tokenID, "tx", l.MintTx)
	return nil
}

func (s *createService) Pending(ctx context.Context) ([]models.Listing, error) {
	return s.journal.GetUnlisted(ctx)
}

// list reads the listing fee fresh and creates the market item.
func (s *createService) list(ctx context.Context, sess Marketplace, l *models.Listing, wei *big.Int) (*models.Listing, error) {
	fee, err := sess.ListingPrice(ctx)
	if err != nil {
		return l, s.orphan(ctx, l, fmt.Errorf("read listing fee: %w", err))
	}

	receipt, err := sess.CreateMarketItem(ctx, l.TokenID, wei, fee)
	l.ListTx = chain.TxHash(receipt, err)
	if err != nil {
		return l, s.orphan(ctx, l, fmt.Errorf("list token %d: %w", l.TokenID, err))
	}

	l.Status = models.ListingListed
	l.Error = ""
	s.save(ctx, l)
	s.logger.Info(ctx, "token listed", "listing", l.ID, "token_id", l.TokenID, "fee", fee.String(), "tx", l.ListTx)

	return l, nil
}

// release hands a claimed record back after a failed relist.
func (s *createService) release(ctx context.Context, l *models.Listing, err error) error {
	if l.TokenID != 0 {
		return s.orphan(ctx, l, err)
	}
	l.Status = models.ListingUnconfirmed
	if errors.Is(err, chain.ErrReverted) {
		l.Status = models.ListingPending
	}
	return s.fail(ctx, l, err)
}

// fail records an error that happened before the token id was known.
func (s *createService) fail(ctx context.Context, l *models.Listing, err error) error {
	l.Error = err.Error()
	s.save(ctx, l)
	s.logger.Error(ctx, "create market failed", "listing", l.ID, "status", l.Status, "error", err)
	return err
}

func (s *createService) orphan(ctx context.Context, l *models.Listing, err error) error {
	l.Status = models.ListingOrphaned
	l.Error = err.Error()
	s.save(ctx, l)
	s.logger.Error(ctx, "token minted but not listed", "listing", l.ID, "token_id", l.TokenID, "error", err)
	return err
}

// save writes l even when ctx was cancelled mid-call.
func (s *createService) save(ctx context.Context, l *models.Listing) error {
	l.UpdatedAt = s.now()
	err := s.journal.Update(context.WithoutCancel(ctx), l)
	if err != nil {
		s.logger.Warn(ctx, "journal write failed", "listing", l.ID, "status", l.Status, "error", err)
	}
	return err
}
