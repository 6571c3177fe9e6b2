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

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, l *models.Listing) error {
	query :=
		`INSERT INTO listings (` + listingColumns + `)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.ExecContext(ctx, query,
		l.ID, l.Name, l.Description, l.Price, l.FileURL, l.MetadataURI, string(l.Status),
		int64(l.TokenID), l.MintTx, l.ListTx, l.Error, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, l *models.Listing) error {
	query :=
		`UPDATE listings SET metadata_uri = $1, status = $2, token_id = $3, mint_tx = $4,
		 list_tx = $5, error = $6, updated_at = $7
		 WHERE id = $8`

	res, err := r.db.ExecContext(ctx, query,
		l.MetadataURI, string(l.Status), int64(l.TokenID), l.MintTx, l.ListTx, l.Error,
		l.UpdatedAt, l.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	return postgresGetByID(ctx, r.db, id, false)
}

func (r *PostgresRepository) GetUnlisted(ctx context.Context) ([]models.Listing, error) {
	query :=
		`SELECT ` + listingColumns + ` FROM listings
		 WHERE status <> $1
		 ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, string(models.ListingListed))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Listing
	for rows.Next() {
		l, err := scanPostgres(rows)
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

func (r *PostgresRepository) Claim(ctx context.Context, id string) (*models.Listing, error) {
	var claimed *models.Listing

	err := dbx.InTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		l, err := postgresGetByID(ctx, tx, id, true)
		if err != nil {
			return err
		}
		if !l.Relistable() {
			return fmt.Errorf("%w: %s is %s", ErrNotRelistable, id, l.Status)
		}

		l.Status = models.ListingListing
		l.UpdatedAt = time.Now().UTC()

		res, err := tx.ExecContext(ctx,
			`UPDATE listings SET status = $1, updated_at = $2 WHERE id = $3`,
			string(l.Status), l.UpdatedAt, id)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if err := expectOneRow(res); err != nil {
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

func postgresGetByID(ctx context.Context, db dbx.DBTX, id string, forUpdate bool) (*models.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	l, err := scanPostgres(db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}
	return l, nil
}

func scanPostgres(row scanner) (*models.Listing, error) {
	var (
		l       models.Listing
		status  string
		tokenID int64
	)
	err := row.Scan(&l.ID, &l.Name, &l.Description, &l.Price, &l.FileURL, &l.MetadataURI, &status,
		&tokenID, &l.MintTx, &l.ListTx, &l.Error, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("scan listing: %w", err)
	}
	l.Status = models.ListingStatus(status)
	l.TokenID = uint64(tokenID)
	return &l, nil
}
