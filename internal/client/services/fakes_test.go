package services

import (
	"context"
	"io"
	"math/big"
	"sort"
	"sync"

	"github.com/dmitrijs2005/nftmarket/internal/chain"
	"github.com/dmitrijs2005/nftmarket/internal/client/repositories/listings"
	"github.com/dmitrijs2005/nftmarket/internal/common"
	"github.com/dmitrijs2005/nftmarket/internal/models"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// fakeStore returns the queued URIs in order.
type fakeStore struct {
	uploads     [][]byte
	docs        []any
	uris        []string
	uploadErr   error
	uploadJSErr error
}

func (f *fakeStore) next() string {
	u := f.uris[0]
	f.uris = f.uris[1:]
	return u
}

func (f *fakeStore) Upload(ctx context.Context, r io.Reader) (string, error) {
	b, _ := io.ReadAll(r)
	f.uploads = append(f.uploads, b)
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	return f.next(), nil
}

func (f *fakeStore) UploadJSON(ctx context.Context, doc any) (string, error) {
	f.docs = append(f.docs, doc)
	if f.uploadJSErr != nil {
		return "", f.uploadJSErr
	}
	return f.next(), nil
}

func (f *fakeStore) calls() int { return len(f.uploads) + len(f.docs) }

type marketItemCall struct {
	tokenID    uint64
	price, fee *big.Int
}

type saleCall struct {
	itemID uint64
	price  *big.Int
}

// fakeMarket records every chain call in order.
type fakeMarket struct {
	account ethcommon.Address
	token   ethcommon.Address

	mintedID  *big.Int
	mintErr   error
	mintSent  bool
	minedLate bool
	onSent    func()
	fees      []*big.Int
	feeErr    error
	listErr   error
	saleErr   error
	items     []chain.ItemRecord
	signErr   error
	noReceipt bool

	log         []string
	mintURIs    []string
	lookups     []string
	marketItems []marketItemCall
	sales       []saleCall
	closed      int
}

func (f *fakeMarket) Account() ethcommon.Address      { return f.account }
func (f *fakeMarket) TokenAddress() ethcommon.Address { return f.token }

func (f *fakeMarket) receipt(status uint64, logs ...*types.Log) *types.Receipt {
	return &types.Receipt{Status: status, TxHash: ethcommon.HexToHash("0x01"), Logs: logs}
}

var mintHash = ethcommon.HexToHash("0xd0")

// CreateToken reports the mint as sent unless mintErr is set without
// mintSent. A sent mint that fails carries its hash like chain.Client.
func (f *fakeMarket) CreateToken(ctx context.Context, uri string) (*types.Receipt, error) {
	f.log = append(f.log, "createToken")
	f.mintURIs = append(f.mintURIs, uri)
	if f.mintErr == nil || f.mintSent {
		chain.NotifySent(ctx, mintHash)
		if f.onSent != nil {
			f.onSent()
		}
	}
	if f.mintErr != nil {
		if f.mintSent {
			return nil, &chain.TxError{Hash: mintHash, Err: f.mintErr}
		}
		return nil, f.mintErr
	}
	return f.mintReceipt(), nil
}

func (f *fakeMarket) mintReceipt() *types.Receipt {
	r := f.receipt(types.ReceiptStatusSuccessful)
	if f.mintedID != nil {
		r.Logs = []*types.Log{transferLog(f.mintedID)}
	}
	r.TxHash = mintHash
	return r
}

// Receipt finds the mint only once minedLate is set.
func (f *fakeMarket) Receipt(ctx context.Context, txHash string) (*types.Receipt, error) {
	f.log = append(f.log, "receipt")
	f.lookups = append(f.lookups, txHash)
	if txHash != mintHash.Hex() || !f.minedLate {
		return nil, &chain.TxError{Hash: ethcommon.HexToHash(txHash), Err: chain.ErrNotMined}
	}
	return f.mintReceipt(), nil
}

func (f *fakeMarket) TokenURI(ctx context.Context, tokenID uint64) (string, error) {
	f.log = append(f.log, "tokenURI")
	return "https://ipfs.io/ipfs/meta", nil
}

func (f *fakeMarket) ListingPrice(ctx context.Context) (*big.Int, error) {
	f.log = append(f.log, "getListingPrice")
	if f.feeErr != nil {
		return nil, f.feeErr
	}
	fee := f.fees[0]
	if len(f.fees) > 1 {
		f.fees = f.fees[1:]
	}
	return fee, nil
}

func (f *fakeMarket) CreateMarketItem(ctx context.Context, tokenID uint64, price, fee *big.Int) (*types.Receipt, error) {
	f.log = append(f.log, "createMarketItem")
	f.marketItems = append(f.marketItems, marketItemCall{tokenID: tokenID, price: price, fee: fee})
	if f.listErr != nil {
		if f.noReceipt {
			return nil, f.listErr
		}
		return f.receipt(types.ReceiptStatusFailed), f.listErr
	}
	return f.receipt(types.ReceiptStatusSuccessful), nil
}

func (f *fakeMarket) CreateMarketSale(ctx context.Context, itemID uint64, price *big.Int) (*types.Receipt, error) {
	f.log = append(f.log, "createMarketSale")
	f.sales = append(f.sales, saleCall{itemID: itemID, price: price})
	if f.saleErr != nil {
		return nil, f.saleErr
	}
	return f.receipt(types.ReceiptStatusSuccessful), nil
}

func (f *fakeMarket) FetchItemsCreated(ctx context.Context) ([]chain.ItemRecord, error) {
	f.log = append(f.log, "fetchItemsCreated")
	return f.items, nil
}

func (f *fakeMarket) FetchMarketItems(ctx context.Context) ([]chain.ItemRecord, error) {
	f.log = append(f.log, "fetchMarketItems")
	return f.items, nil
}

func (f *fakeMarket) FetchMyNFTs(ctx context.Context) ([]chain.ItemRecord, error) {
	f.log = append(f.log, "fetchMyNFTs")
	return f.items, nil
}

func (f *fakeMarket) Close() { f.closed++ }

func (f *fakeMarket) SignText(msg []byte) ([]byte, error) {
	if f.signErr != nil {
		return nil, f.signErr
	}
	return append([]byte("sig:"), msg...), nil
}

// fakeSessions hands out the same fake market and counts acquisitions.
type fakeSessions struct {
	market   *fakeMarket
	err      error
	acquired int
}

func (f *fakeSessions) Acquire(ctx context.Context) (Marketplace, error) {
	f.acquired++
	if f.err != nil {
		return nil, f.err
	}
	return f.market, nil
}

func transferLog(tokenID *big.Int) *types.Log {
	return &types.Log{Topics: []ethcommon.Hash{
		chain.TokenABI().Events["Transfer"].ID,
		{},
		ethcommon.BytesToHash(ethcommon.HexToAddress("0xaa").Bytes()),
		ethcommon.BigToHash(tokenID),
	}}
}

// memJournal is an in-memory listings.Repository.
type memJournal struct {
	mu        sync.Mutex
	rows      map[string]models.Listing
	history   map[string][]models.ListingStatus
	failWrite error
}

func newMemJournal() *memJournal {
	return &memJournal{rows: map[string]models.Listing{}, history: map[string][]models.ListingStatus{}}
}

var _ listings.Repository = (*memJournal)(nil)

func (j *memJournal) Create(ctx context.Context, l *models.Listing) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.failWrite != nil {
		return j.failWrite
	}
	j.rows[l.ID] = *l
	j.history[l.ID] = append(j.history[l.ID], l.Status)
	return nil
}

func (j *memJournal) Update(ctx context.Context, l *models.Listing) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.failWrite != nil {
		return j.failWrite
	}
	if _, ok := j.rows[l.ID]; !ok {
		return common.ErrorNotFound
	}
	j.rows[l.ID] = *l
	h := j.history[l.ID]
	if len(h) == 0 || h[len(h)-1] != l.Status {
		j.history[l.ID] = append(h, l.Status)
	}
	return nil
}

func (j *memJournal) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	l, ok := j.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &l, nil
}

func (j *memJournal) GetUnlisted(ctx context.Context) ([]models.Listing, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	var out []models.Listing
	for _, l := range j.rows {
		if l.Status != models.ListingListed {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, nil
}

func (j *memJournal) Claim(ctx context.Context, id string) (*models.Listing, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	l, ok := j.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if !l.Relistable() {
		return nil, listings.ErrNotRelistable
	}
	l.Status = models.ListingListing
	j.rows[id] = l
	j.history[id] = append(j.history[id], l.Status)
	return &l, nil
}

func (j *memJournal) only() models.Listing {
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, l := range j.rows {
		return l
	}
	return models.Listing{}
}

