package listings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/nftmarket/internal/common"
	"github.com/dmitrijs2005/nftmarket/internal/dbx"
	"github.com/dmitrijs2005/nftmarket/internal/models"
)

// SQLiteRepository stores timestamps as unix nanoseconds.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, l *models.Listing) error {
	query := `INSERT INTO listings (` + listingColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		l.ID, l.Name, l.Description, l.Price, l.FileURL, l.MetadataURI, string(l.Status),
		int64(l.TokenID), l.MintTx, l.ListTx, l.Error, l.CreatedAt.UnixNano(), l.UpdatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to insert listing: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Update(ctx context.Context, l *models.Listing) error {
	query := `UPDATE listings SET metadata_uri = ?, status = ?, token_id = ?, mint_tx = ?,
		list_tx = ?, error = ?, updated_at = ?
		WHERE id = ?`

	res, err := r.db.ExecContext(ctx, query,
		l.MetadataURI, string(l.Status), int64(l.TokenID), l.MintTx, l.ListTx, l.Error,
		l.UpdatedAt.UnixNano(), l.ID)
	if err != nil {
		return fmt.Errorf("failed to update listing: %w", err)
	}
	return expectOneRow(res)
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	return sqliteGetByID(ctx, r.db, id)
}

func (r *SQLiteRepository) GetUnlisted(ctx context.Context) ([]models.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE status <> ? ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, string(models.ListingListed))
	if err != nil {
		return nil, fmt.Errorf("failed to select listings: %w", err)
	}
	defer rows.Close()

	var result []models.Listing
	for rows.Next() {
		l, err := scanSQLite(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Claim(ctx context.Context, id string) (*models.Listing, error) {
	var claimed *models.Listing

	err := dbx.InTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		l, err := sqliteGetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if !l.Relistable() {
			return fmt.Errorf("%w: %s is %s", ErrNotRelistable, id, l.Status)
		}

		l.Status = models.ListingListing
		l.UpdatedAt = time.Now().UTC()

		res, err := tx.ExecContext(ctx,
			`UPDATE listings SET status = ?, updated_at = ? WHERE id = ? AND status IN (?, ?)`,
			string(l.Status), l.UpdatedAt.UnixNano(), id,
			string(models.ListingOrphaned), string(models.ListingUnconfirmed))
		if err != nil {
			return fmt.Errorf("failed to claim listing: %w", err)
		}
		if err := expectOneRow(res); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return fmt.Errorf("%w: %s was claimed concurrently", ErrNotRelistable, id)
			}
			return err
		}

		claimed = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

func sqliteGetByID(ctx context.Context, db dbx.DBTX, id string) (*models.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = ?`

	l, err := scanSQLite(db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}
	return l, nil
}

func scanSQLite(row scanner) (*models.Listing, error) {
	var (
		l                models.Listing
		status           string
		tokenID          int64
		created, updated int64
	)
	err := row.Scan(&l.ID, &l.Name, &l.Description, &l.Price, &l.FileURL, &l.MetadataURI, &status,
		&tokenID, &l.MintTx, &l.ListTx, &l.Error, &created, &updated)
	if err != nil {
		return nil, fmt.Errorf("scan listing: %w", err)
	}
	l.Status = models.ListingStatus(status)
	l.TokenID = uint64(tokenID)
	l.CreatedAt = time.Unix(0, created).UTC()
	l.UpdatedAt = time.Unix(0, updated).UTC()
	return &l, nil
}

func expectOneRow(res sql.Result) error {
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrorNotFound
	}
	if ra != 1 {
		return fmt.Errorf("wrong rows affected count: %d", ra)
	}
	return nil
}
