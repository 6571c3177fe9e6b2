package listings

import (
	"context"
	"database/sql"
	"io/fs"
	"testing"
	"time"

	"github.com/dmitrijs2005/nftmarket/internal/client/migrations"
	"github.com/dmitrijs2005/nftmarket/internal/common"
	"github.com/dmitrijs2005/nftmarket/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// every pooled connection would get its own empty :memory: database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	fsys, err := fs.Sub(migrations.FS, migrations.SQLiteDir)
	require.NoError(t, err)
	p, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	require.NoError(t, err)
	_, err = p.Up(context.Background())
	require.NoError(t, err)

	return db
}

func newListing(id string, status models.ListingStatus, created time.Time) *models.Listing {
	return &models.Listing{
		ID:          id,
		Name:        "name " + id,
		Description: "desc",
		Price:       "1.5",
		FileURL:     "https://ipfs.io/ipfs/cid1",
		Status:      status,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

func TestSQLite_CreateAndGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	now := time.Date(2024, 5, 1, 12, 0, 0, 123, time.UTC)
	l := newListing("a", models.ListingPending, now)
	l.MetadataURI = "https://ipfs.io/ipfs/cid2"
	require.NoError(t, r.Create(ctx, l))

	got, err := r.GetByID(ctx, "a")
	require.NoError(t, err)
	if diff := cmp.Diff(l, got); diff != "" {
		t.Fatalf("listing mismatch (-want +got):\n%s", diff)
	}

	_, err = r.GetByID(ctx, "missing")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLite_Update(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	l := newListing("a", models.ListingPending, time.Now().UTC())
	require.NoError(t, r.Create(ctx, l))

	l.Status = models.ListingOrphaned
	l.TokenID = 7
	l.MintTx = "0xmint"
	l.Error = "transaction reverted"
	l.UpdatedAt = l.UpdatedAt.Add(time.Second)
	require.NoError(t, r.Update(ctx, l))

	got, err := r.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, models.ListingOrphaned, got.Status)
	assert.Equal(t, uint64(7), got.TokenID)
	assert.Equal(t, "0xmint", got.MintTx)
	assert.Equal(t, "transaction reverted", got.Error)
	assert.True(t, got.UpdatedAt.Equal(l.UpdatedAt))

	err = r.Update(ctx, newListing("ghost", models.ListingListed, time.Now()))
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLite_GetUnlisted_OrderedAndFiltered(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, r.Create(ctx, newListing("c", models.ListingOrphaned, base.Add(2*time.Minute))))
	require.NoError(t, r.Create(ctx, newListing("a", models.ListingPending, base)))
	require.NoError(t, r.Create(ctx, newListing("b", models.ListingListed, base.Add(time.Minute))))

	got, err := r.GetUnlisted(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
}

func TestSQLite_Claim(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	orphan := newListing("o", models.ListingOrphaned, time.Now().UTC())
	orphan.TokenID = 7
	require.NoError(t, r.Create(ctx, orphan))
	require.NoError(t, r.Create(ctx, newListing("l", models.ListingListed, time.Now().UTC())))

	got, err := r.Claim(ctx, "o")
	require.NoError(t, err)
	assert.Equal(t, models.ListingListing, got.Status)
	assert.Equal(t, uint64(7), got.TokenID)

	stored, err := r.GetByID(ctx, "o")
	require.NoError(t, err)
	assert.Equal(t, models.ListingListing, stored.Status)

	// a record in flight cannot be claimed a second time
	_, err = r.Claim(ctx, "o")
	require.ErrorIs(t, err, ErrNotRelistable)

	_, err = r.Claim(ctx, "l")
	require.ErrorIs(t, err, ErrNotRelistable)

	_, err = r.Claim(ctx, "missing")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLite_Claim_Unconfirmed(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	u := newListing("u", models.ListingUnconfirmed, time.Now().UTC())
	u.MintTx = "0xmint"
	require.NoError(t, r.Create(ctx, u))
	require.NoError(t, r.Create(ctx, newListing("p", models.ListingPending, time.Now().UTC())))

	got, err := r.Claim(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, models.ListingListing, got.Status)
	assert.Equal(t, "0xmint", got.MintTx)

	_, err = r.Claim(ctx, "u")
	require.ErrorIs(t, err, ErrNotRelistable)

	_, err = r.Claim(ctx, "p")
	require.ErrorIs(t, err, ErrNotRelistable)
}
