package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

type sentTx struct {
	method string
	to     common.Address
	value  *big.Int
	args   []any
}

// fakeBackend answers the subset of JSON-RPC the bound contracts use.
type fakeBackend struct {
	bind.ContractBackend

	mu         sync.Mutex
	chainID    *big.Int
	chainErr   error
	sendErr    error
	neverMined bool

	reads    map[string][]any
	status   map[string]uint64
	logs     map[string][]*types.Log
	receipts map[common.Hash]*types.Receipt

	sent   []sentTx
	calls  []string
	from   []common.Address
	closed bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		chainID:  big.NewInt(1337),
		reads:    map[string][]any{},
		status:   map[string]uint64{},
		logs:     map[string][]*types.Log{},
		receipts: map[common.Hash]*types.Receipt{},
	}
}

func lookupMethod(id []byte) (*abi.Method, error) {
	if m, err := tokenABI.MethodById(id); err == nil {
		return m, nil
	}
	return marketABI.MethodById(id)
}

func (f *fakeBackend) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	return &types.Header{Number: big.NewInt(1)}, nil
}

func (f *fakeBackend) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (f *fakeBackend) PendingCodeAt(ctx context.Context, account common.Address) ([]byte, error) {
	return []byte{0x60}, nil
}

func (f *fakeBackend) CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error) {
	return []byte{0x60}, nil
}

func (f *fakeBackend) EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error) {
	return 100_000, nil
}

func (f *fakeBackend) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint64(len(f.sent)), nil
}

func (f *fakeBackend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	if f.sendErr != nil {
		return f.sendErr
	}

	m, err := lookupMethod(tx.Data()[:4])
	if err != nil {
		return err
	}
	args, err := m.Inputs.Unpack(tx.Data()[4:])
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.sent = append(f.sent, sentTx{method: m.Name, to: *tx.To(), value: tx.Value(), args: args})

	if f.neverMined {
		return nil
	}

	status, ok := f.status[m.Name]
	if !ok {
		status = types.ReceiptStatusSuccessful
	}
	f.receipts[tx.Hash()] = &types.Receipt{
		Status: status,
		TxHash: tx.Hash(),
		Logs:   f.logs[m.Name],
	}
	return nil
}

func (f *fakeBackend) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.receipts[hash]
	if !ok {
		return nil, ethereum.NotFound
	}
	return r, nil
}

func (f *fakeBackend) CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	m, err := lookupMethod(call.Data[:4])
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.calls = append(f.calls, m.Name)
	f.from = append(f.from, call.From)
	out, ok := f.reads[m.Name]
	f.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("execution reverted: no answer for %s", m.Name)
	}
	return m.Outputs.Pack(out...)
}

func (f *fakeBackend) ChainID(ctx context.Context) (*big.Int, error) {
	if f.chainErr != nil {
		return nil, f.chainErr
	}
	return f.chainID, nil
}

func (f *fakeBackend) Close() {
	f.closed = true
}

var errDial = errors.New("connection refused")

func transferLog(tokenID *big.Int) *types.Log {
	ev := tokenABI.Events["Transfer"]
	return &types.Log{
		Topics: []common.Hash{
			ev.ID,
			{},
			common.BytesToHash(common.HexToAddress("0x00000000000000000000000000000000000000aa").Bytes()),
			common.BigToHash(tokenID),
		},
	}
}
