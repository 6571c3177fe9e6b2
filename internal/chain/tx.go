package chain

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
)

// TxError reports a transaction that reached the node but whose receipt was
// not obtained. The transaction may still be mined.
type TxError struct {
	Hash common.Hash
	Err  error
}

func (e *TxError) Error() string {
	return fmt.Sprintf("tx %s: %v", e.Hash.Hex(), e.Err)
}

func (e *TxError) Unwrap() error { return e.Err }

// TxHash returns the hash of the transaction behind a CallWrite result, or
// "" when nothing was sent.
func TxHash(receipt *types.Receipt, err error) string {
	if receipt != nil {
		return receipt.TxHash.Hex()
	}
	var txErr *TxError
	if errors.As(err, &txErr) {
		return txErr.Hash.Hex()
	}
	return ""
}

type sentHookKey struct{}

// WithSentHook returns a context under which CallWrite calls fn with the
// transaction hash as soon as the node accepted it, before waiting for
// inclusion.
func WithSentHook(ctx context.Context, fn func(hash common.Hash)) context.Context {
	return context.WithValue(ctx, sentHookKey{}, fn)
}

// NotifySent runs the hook installed by WithSentHook, if any.
func NotifySent(ctx context.Context, hash common.Hash) {
	if fn, ok := ctx.Value(sentHookKey{}).(func(common.Hash)); ok && fn != nil {
		fn(hash)
	}
}

// Receipt looks up the receipt of a previously sent transaction. A missing
// receipt yields ErrNotMined; a failed one is returned with ErrReverted.
func (c *Client) Receipt(ctx context.Context, txHash string) (*types.Receipt, error) {
	if !isHash(txHash) {
		return nil, fmt.Errorf("%w: tx hash %q", ErrBadResult, txHash)
	}
	h := common.HexToHash(txHash)

	receipt, err := c.backend.TransactionReceipt(ctx, h)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return nil, &TxError{Hash: h, Err: ErrNotMined}
		}
		return nil, fmt.Errorf("receipt %s: %w", txHash, err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("tx %s: %w", txHash, ErrReverted)
	}
	return receipt, nil
}

func isHash(s string) bool {
	b, err := hexutil.Decode(s)
	return err == nil && len(b) == common.HashLength
}
