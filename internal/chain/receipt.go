package chain

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/core/types"
)

// The token id of a fresh mint is the third argument of the first event in
// the createToken receipt (Transfer(from, to, tokenId)).
const (
	mintEventIndex = 0
	mintArgIndex   = 2
)

// ExtractMintedTokenID reads the minted token id from a createToken receipt.
func ExtractMintedTokenID(receipt *types.Receipt) (uint64, error) {
	if receipt == nil || len(receipt.Logs) <= mintEventIndex {
		return 0, fmt.Errorf("%w: receipt has no events", ErrNoMintEvent)
	}

	log := receipt.Logs[mintEventIndex]
	if log == nil || len(log.Topics) == 0 {
		return 0, fmt.Errorf("%w: event %d has no topics", ErrNoMintEvent, mintEventIndex)
	}

	event, err := tokenABI.EventByID(log.Topics[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrNoMintEvent, err)
	}
	if len(event.Inputs) <= mintArgIndex {
		return 0, fmt.Errorf("%w: %s has %d arguments", ErrNoMintEvent, event.Name, len(event.Inputs))
	}

	values := make(map[string]any, len(event.Inputs))

	var indexed abi.Arguments
	for _, in := range event.Inputs {
		if in.Indexed {
			indexed = append(indexed, in)
		}
	}
	if err := abi.ParseTopicsIntoMap(values, indexed, log.Topics[1:]); err != nil {
		return 0, fmt.Errorf("%w: %s topics: %w", ErrNoMintEvent, event.Name, err)
	}
	if nonIndexed := event.Inputs.NonIndexed(); len(nonIndexed) > 0 {
		if err := nonIndexed.UnpackIntoMap(values, log.Data); err != nil {
			return 0, fmt.Errorf("%w: %s data: %w", ErrNoMintEvent, event.Name, err)
		}
	}

	arg := event.Inputs[mintArgIndex]
	v, ok := values[arg.Name].(*big.Int)
	if !ok {
		return 0, fmt.Errorf("%w: %s.%s is %T", ErrNoMintEvent, event.Name, arg.Name, values[arg.Name])
	}
	if v.Sign() < 0 || !v.IsUint64() {
		return 0, fmt.Errorf("%w: token id %s out of range", ErrNoMintEvent, v)
	}

	return v.Uint64(), nil
}
