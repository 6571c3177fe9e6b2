package client

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/nftmarket/internal/models"
	"github.com/stretchr/testify/require"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	if err != nil {
		t.Fatalf("tableExists query failed: %v", err)
	}
	return n > 0
}

func TestInitDatabase_CreatesListingsTable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "market.db")

	repos, err := InitDatabase(ctx, "", dsn)
	if err != nil {
		t.Fatalf("InitDatabase error: %v", err)
	}
	defer repos.Close()

	if err := repos.DB.PingContext(ctx); err != nil {
		t.Fatalf("db.PingContext failed: %v", err)
	}

	if !tableExists(t, repos.DB, "listings") {
		t.Fatalf("expected listings table to exist after migrations")
	}
}

func TestInitDatabase_CreatesParentDirectory(t *testing.T) {
	t.Parallel()

	dsn := filepath.Join(t.TempDir(), "nested", "dir", "market.db")
	repos, err := InitDatabase(context.Background(), DriverSQLite, dsn)
	require.NoError(t, err)
	defer repos.Close()

	require.True(t, tableExists(t, repos.DB, "listings"))
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "market.db")

	db, err := sql.Open(DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("sql.Open error: %v", err)
	}
	defer db.Close()

	if err := RunMigrations(ctx, DriverSQLite, db); err != nil {
		t.Fatalf("RunMigrations (first) error: %v", err)
	}

	if err := RunMigrations(ctx, DriverSQLite, db); err != nil {
		t.Fatalf("RunMigrations (second) should be idempotent, got error: %v", err)
	}
}

func TestRunMigrations_UnknownDriver(t *testing.T) {
	t.Parallel()

	err := RunMigrations(context.Background(), "mysql", nil)
	require.Error(t, err)
}

func TestInitDatabase_RepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repos, err := InitDatabase(ctx, DriverSQLite, filepath.Join(t.TempDir(), "market.db"))
	require.NoError(t, err)
	defer repos.Close()

	now := time.Now().UTC()
	l := &models.Listing{
		ID: "id-1", Name: "n", Description: "d", Price: "1", FileURL: "f",
		Status: models.ListingPending, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repos.Listings.Create(ctx, l))

	pending, err := repos.Listings.GetUnlisted(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, "id-1", pending[0].ID)
}
