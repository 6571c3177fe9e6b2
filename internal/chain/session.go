package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"

	"github.com/dmitrijs2005/nftmarket/internal/logging"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/ethclient"
)

// DialFunc opens a backend for an RPC URL.
type DialFunc func(ctx context.Context, url string) (Backend, error)

// Dial connects to a JSON-RPC endpoint. HTTP endpoints are not contacted
// until the first call.
func Dial(ctx context.Context, url string) (Backend, error) {
	c, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Connector hands out sessions for one network and wallet.
type Connector struct {
	rpcURL string
	addrs  Addresses
	wallet Wallet
	dial   DialFunc
	logger logging.Logger
}

func NewConnector(rpcURL string, addrs Addresses, wallet Wallet, logger logging.Logger) *Connector {
	return &Connector{
		rpcURL: rpcURL,
		addrs:  addrs,
		wallet: wallet,
		dial:   Dial,
		logger: logger.With("module", "chain"),
	}
}

// WithDialer replaces the function used to reach the node.
func (c *Connector) WithDialer(dial DialFunc) *Connector {
	c.dial = dial
	return c
}

// Acquire unlocks the wallet, dials the node and binds a signer to its
// chain id. The caller must Close the session.
func (c *Connector) Acquire(ctx context.Context) (*Session, error) {
	if c.wallet == nil {
		return nil, ErrNoWallet
	}

	key, err := c.wallet.Unlock(ctx)
	if err != nil {
		return nil, err
	}

	backend, err := c.dial(ctx, c.rpcURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNodeUnavailable, err)
	}

	chainID, err := backend.ChainID(ctx)
	if err != nil {
		closeBackend(backend)
		return nil, fmt.Errorf("%w: chain id: %w", ErrNodeUnavailable, err)
	}

	signer, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		closeBackend(backend)
		return nil, fmt.Errorf("signer: %w", err)
	}

	c.logger.Debug(ctx, "session acquired", "account", signer.From.Hex(), "chain_id", chainID.String())

	return &Session{
		Client: newClient(backend, c.addrs, signer.From, signer),
		key:    key,
	}, nil
}

// Session is a Client with an unlocked key. It lives for one user action.
type Session struct {
	*Client
	key *ecdsa.PrivateKey
}

// SignText signs msg with the session key (EIP-191).
func (s *Session) SignText(msg []byte) ([]byte, error) {
	return SignText(s.key, msg)
}

// Close releases the RPC connection.
func (s *Session) Close() {
	if s == nil || s.Client == nil {
		return
	}
	closeBackend(s.backend)
}

func closeBackend(b Backend) {
	if c, ok := b.(interface{ Close() }); ok {
		c.Close()
	}
}
