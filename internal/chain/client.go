package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Backend is what a client needs from a JSON-RPC node. *ethclient.Client
// satisfies it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
}

var _ Backend = (*ethclient.Client)(nil)

// Client is bound to both contracts and, unless read-only, to a signer.
type Client struct {
	backend Backend
	addrs   Addresses
	from    common.Address
	signer  *bind.TransactOpts

	token  *bind.BoundContract
	market *bind.BoundContract
}

func newClient(backend Backend, addrs Addresses, from common.Address, signer *bind.TransactOpts) *Client {
	return &Client{
		backend: backend,
		addrs:   addrs,
		from:    from,
		signer:  signer,
		token:   bind.NewBoundContract(addrs.Token, tokenABI, backend, backend, backend),
		market:  bind.NewBoundContract(addrs.Market, marketABI, backend, backend, backend),
	}
}

// NewReader builds a client without a signer. Calls are made with from as
// the sender, so per-account views such as fetchMyNFTs answer for from.
func NewReader(backend Backend, addrs Addresses, from common.Address) *Client {
	return newClient(backend, addrs, from, nil)
}

func (c *Client) bound(contract Contract) (*bind.BoundContract, error) {
	switch contract {
	case Token:
		return c.token, nil
	case Market:
		return c.market, nil
	default:
		return nil, fmt.Errorf("unknown %s", contract)
	}
}

// CallRead executes a view method without a transaction.
func (c *Client) CallRead(ctx context.Context, contract Contract, method string, args ...any) ([]any, error) {
	bc, err := c.bound(contract)
	if err != nil {
		return nil, err
	}

	var out []any
	opts := &bind.CallOpts{Context: ctx, From: c.from}
	if err := bc.Call(opts, &out, method, args...); err != nil {
		return nil, fmt.Errorf("call %s.%s: %w", contract, method, err)
	}
	return out, nil
}

// CallWrite signs and submits a transaction, attaching value wei when it is
// non-nil, and blocks until the transaction is included. Cancelling ctx
// stops the wait; the transaction may still be mined afterwards, and the
// returned error is a *TxError carrying its hash.
//
// A mined transaction with failed status yields its receipt together with
// ErrReverted.
func (c *Client) CallWrite(ctx context.Context, contract Contract, method string, value *big.Int, args ...any) (*types.Receipt, error) {
	if c.signer == nil {
		return nil, fmt.Errorf("%s.%s: %w", contract, method, ErrReadOnly)
	}

	bc, err := c.bound(contract)
	if err != nil {
		return nil, err
	}

	opts := *c.signer
	opts.Context = ctx
	opts.Value = value

	tx, err := bc.Transact(&opts, method, args...)
	if err != nil {
		return nil, fmt.Errorf("send %s.%s: %w", contract, method, err)
	}

	NotifySent(ctx, tx.Hash())

	receipt, err := bind.WaitMined(ctx, c.backend, tx)
	if err != nil {
		return nil, fmt.Errorf("wait %s.%s: %w", contract, method, &TxError{Hash: tx.Hash(), Err: err})
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("%s.%s tx %s: %w", contract, method, tx.Hash().Hex(), ErrReverted)
	}

	return receipt, nil
}

func (c *Client) Account() common.Address      { return c.from }
func (c *Client) TokenAddress() common.Address { return c.addrs.Token }

func (c *Client) CreateToken(ctx context.Context, uri string) (*types.Receipt, error) {
	return c.CallWrite(ctx, Token, "createToken", nil, uri)
}

func (c *Client) TokenURI(ctx context.Context, tokenID uint64) (string, error) {
	out, err := c.CallRead(ctx, Token, "tokenURI", new(big.Int).SetUint64(tokenID))
	if err != nil {
		return "", err
	}
	if len(out) != 1 {
		return "", fmt.Errorf("tokenURI: %w", ErrBadResult)
	}
	uri, ok := out[0].(string)
	if !ok {
		return "", fmt.Errorf("tokenURI returned %T: %w", out[0], ErrBadResult)
	}
	return uri, nil
}

// ListingPrice reads the current listing fee. It is never cached.
func (c *Client) ListingPrice(ctx context.Context) (*big.Int, error) {
	out, err := c.CallRead(ctx, Market, "getListingPrice")
	if err != nil {
		return nil, err
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("getListingPrice: %w", ErrBadResult)
	}
	fee := *abi.ConvertType(out[0], new(*big.Int)).(**big.Int)
	if fee == nil {
		return nil, fmt.Errorf("getListingPrice: %w", ErrBadResult)
	}
	return fee, nil
}

// CreateMarketItem lists tokenID of the bound token contract at price,
// paying fee as the listing fee.
func (c *Client) CreateMarketItem(ctx context.Context, tokenID uint64, price, fee *big.Int) (*types.Receipt, error) {
	return c.CallWrite(ctx, Market, "createMarketItem", fee,
		c.addrs.Token, new(big.Int).SetUint64(tokenID), price)
}

// CreateMarketSale buys itemID, paying price.
func (c *Client) CreateMarketSale(ctx context.Context, itemID uint64, price *big.Int) (*types.Receipt, error) {
	return c.CallWrite(ctx, Market, "createMarketSale", price,
		c.addrs.Token, new(big.Int).SetUint64(itemID))
}

func (c *Client) FetchItemsCreated(ctx context.Context) ([]ItemRecord, error) {
	return c.fetchItems(ctx, "fetchItemsCreated")
}

func (c *Client) FetchMarketItems(ctx context.Context) ([]ItemRecord, error) {
	return c.fetchItems(ctx, "fetchMarketItems")
}

func (c *Client) FetchMyNFTs(ctx context.Context) ([]ItemRecord, error) {
	return c.fetchItems(ctx, "fetchMyNFTs")
}

func (c *Client) fetchItems(ctx context.Context, method string) ([]ItemRecord, error) {
	out, err := c.CallRead(ctx, Market, method)
	if err != nil {
		return nil, err
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("%s: %w", method, ErrBadResult)
	}
	return *abi.ConvertType(out[0], new([]ItemRecord)).(*[]ItemRecord), nil
}
