package client

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/dmitrijs2005/nftmarket/internal/client/migrations"
	"github.com/dmitrijs2005/nftmarket/internal/client/repositories/listings"
	"github.com/dmitrijs2005/nftmarket/internal/filex"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

type Repositories struct {
	DB       *sql.DB
	Listings listings.Repository
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}

// RunMigrations applies the embedded schema for driver.
func RunMigrations(ctx context.Context, driver string, db *sql.DB) error {
	dialect, dir, err := dialectFor(driver)
	if err != nil {
		return err
	}

	fsys, err := fs.Sub(migrations.FS, dir)
	if err != nil {
		return err
	}

	p, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}

	if _, err := p.Up(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// InitDatabase opens the listing journal and brings its schema up to date.
func InitDatabase(ctx context.Context, driver, dsn string) (*Repositories, error) {
	if driver == "" {
		driver = DriverSQLite
	}

	if driver == DriverSQLite && filex.IsLocalPath(dsn) {
		if _, err := filex.EnsureParentDir(dsn); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, driver, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	var repo listings.Repository
	switch driver {
	case DriverPostgres:
		repo = listings.NewPostgresRepository(db)
	default:
		repo = listings.NewSQLiteRepository(db)
	}

	return &Repositories{DB: db, Listings: repo}, nil
}

func dialectFor(driver string) (goose.Dialect, string, error) {
	switch driver {
	case DriverSQLite:
		return goose.DialectSQLite3, migrations.SQLiteDir, nil
	case DriverPostgres:
		return goose.DialectPostgres, migrations.PostgresDir, nil
	default:
		return "", "", fmt.Errorf("unsupported database driver %q", driver)
	}
}
