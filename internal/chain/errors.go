package chain

import "errors"

var (
	ErrNoWallet        = errors.New("no wallet configured")
	ErrUserRejected    = errors.New("wallet unlock rejected by user")
	ErrWalletLocked    = errors.New("wallet could not be unlocked")
	ErrNodeUnavailable = errors.New("chain node unavailable")
	ErrReverted        = errors.New("transaction reverted")
	ErrNotMined        = errors.New("transaction not mined yet")
	ErrReadOnly        = errors.New("client is read-only")
	ErrNoMintEvent     = errors.New("mint receipt carries no token id")
	ErrBadResult       = errors.New("unexpected contract result")
)
