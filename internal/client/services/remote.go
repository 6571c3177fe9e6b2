package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/nftmarket/internal/common"
	"github.com/dmitrijs2005/nftmarket/internal/models"
)

// Gateway is the remote gallery service.
type Gateway interface {
	Challenge(ctx context.Context, address string) (string, error)
	Login(ctx context.Context, address string, signature []byte) error
	Gallery(ctx context.Context) (*models.Gallery, error)
	Market(ctx context.Context) ([]models.MarketItem, error)
}

type RemoteService interface {
	// Gallery signs in with the session key and loads the account's
	// gallery from the gateway.
	Gallery(ctx context.Context) (*models.Gallery, error)
	Market(ctx context.Context) ([]models.MarketItem, error)
}

type remoteService struct {
	gateway  Gateway
	sessions Sessions
}

func NewRemoteService(gateway Gateway, sessions Sessions) RemoteService {
	return &remoteService{gateway: gateway, sessions: sessions}
}

func (s *remoteService) Gallery(ctx context.Context) (*models.Gallery, error) {
	if err := s.signIn(ctx); err != nil {
		return nil, err
	}
	return s.gateway.Gallery(ctx)
}

func (s *remoteService) Market(ctx context.Context) ([]models.MarketItem, error) {
	return s.gateway.Market(ctx)
}

func (s *remoteService) signIn(ctx context.Context) error {
	sess, err := s.sessions.Acquire(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	signer, ok := sess.(TextSigner)
	if !ok {
		return ErrCannotSign
	}

	address := sess.Account().Hex()

	challenge, err := s.gateway.Challenge(ctx, address)
	if err != nil {
		return fmt.Errorf("challenge: %w", err)
	}

	sig, err := signer.SignText([]byte(common.LoginMessagePrefix + challenge))
	if err != nil {
		return fmt.Errorf("sign challenge: %w", err)
	}

	return s.gateway.Login(ctx, address, sig)
}
