package grpc

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/nftmarket/internal/chain"
	"github.com/dmitrijs2005/nftmarket/internal/gallery"
	"github.com/dmitrijs2005/nftmarket/internal/logging"
	"github.com/dmitrijs2005/nftmarket/internal/models"
	"github.com/dmitrijs2005/nftmarket/internal/server/auth"
	ethcommon "github.com/ethereum/go-ethereum/common"
)

const testSecret = "secret"

type fakeSource struct {
	created, market []chain.ItemRecord
	err             error
}

func (f *fakeSource) TokenURI(ctx context.Context, tokenID uint64) (string, error) {
	return fmt.Sprintf("meta-%d", tokenID), nil
}
func (f *fakeSource) FetchItemsCreated(ctx context.Context) ([]chain.ItemRecord, error) {
	return f.created, f.err
}
func (f *fakeSource) FetchMarketItems(ctx context.Context) ([]chain.ItemRecord, error) {
	return f.market, f.err
}
func (f *fakeSource) FetchMyNFTs(ctx context.Context) ([]chain.ItemRecord, error) {
	return nil, f.err
}

type fakeFetcher struct{}

func (fakeFetcher) FetchMetadata(ctx context.Context, uri string) (models.Metadata, error) {
	return models.Metadata{Name: "name " + uri, Description: "desc", Image: uri + ".png"}, nil
}

// sourceRecorder hands out src and remembers the accounts it was built for.
type sourceRecorder struct {
	src *fakeSource

	mu       sync.Mutex
	accounts []ethcommon.Address
}

func (r *sourceRecorder) build(account ethcommon.Address) gallery.Source {
	r.mu.Lock()
	r.accounts = append(r.accounts, account)
	r.mu.Unlock()
	return r.src
}

func record(itemID, tokenID int64, wei int64, sold bool) chain.ItemRecord {
	return chain.ItemRecord{
		ItemId:  big.NewInt(itemID),
		TokenId: big.NewInt(tokenID),
		Seller:  ethcommon.HexToAddress("0x01"),
		Owner:   ethcommon.HexToAddress("0x02"),
		Price:   big.NewInt(wei),
		Sold:    sold,
	}
}

func newTestServer(t *testing.T, src *fakeSource) (*GRPCServer, *sourceRecorder) {
	t.Helper()
	rec := &sourceRecorder{src: src}
	s := NewGRPCServer("127.0.0.1:0", logging.Nop{}, rec.build,
		gallery.NewLoader(fakeFetcher{}, logging.Nop{}),
		auth.NewChallengeStore(time.Minute), testSecret, time.Hour)
	return s, rec
}
