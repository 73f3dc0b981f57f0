// Package repomanager vends the repositories of one storage engine and runs
// that engine's migrations. The server picks a manager once at startup;
// everything downstream only sees the RepositoryManager interface.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/dogcatalog/internal/dbx"
	"github.com/dmitrijs2005/dogcatalog/internal/server/config"
	"github.com/dmitrijs2005/dogcatalog/internal/server/migrations"
	"github.com/dmitrijs2005/dogcatalog/internal/server/repositories/dogs"
	"github.com/dmitrijs2005/dogcatalog/internal/server/repositories/users"
)

type RepositoryManager interface {
	// Backend names the catalog backend (config.BackendMapped or config.BackendDocument).
	Backend() string
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Dogs(db dbx.DBTX) dogs.Repository
}

// migrateUp is a seam for tests.
var migrateUp = migrations.Up

// Open connects to the store selected by cfg.CatalogBackend, waits at most
// cfg.ConnectTimeout for it to answer and returns the matching manager.
// The caller owns the returned *sql.DB.
func Open(ctx context.Context, cfg *config.Config) (RepositoryManager, *sql.DB, error) {
	var (
		m   RepositoryManager
		db  *sql.DB
		err error
	)

	switch cfg.CatalogBackend {
	case config.BackendMapped:
		m = NewPostgresRepositoryManager()
		db, err = sql.Open("pgx", cfg.DatabaseDSN)
	case config.BackendDocument:
		m = NewSQLiteRepositoryManager()
		db, err = openSQLite(cfg.SQLitePath)
	default:
		return nil, nil, fmt.Errorf("unknown catalog backend %q", cfg.CatalogBackend)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("db open error: %w", err)
	}

	if err := ping(ctx, db, cfg.ConnectTimeout); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("db connect error: %w", err)
	}
	return m, db, nil
}

func ping(ctx context.Context, db *sql.DB, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return db.PingContext(ctx)
}
