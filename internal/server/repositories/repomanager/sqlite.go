package repomanager

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/dogcatalog/internal/dbx"
	"github.com/dmitrijs2005/dogcatalog/internal/filex"
	"github.com/dmitrijs2005/dogcatalog/internal/server/config"
	"github.com/dmitrijs2005/dogcatalog/internal/server/migrations"
	"github.com/dmitrijs2005/dogcatalog/internal/server/repositories/dogs"
	"github.com/dmitrijs2005/dogcatalog/internal/server/repositories/users"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager serves the document catalog and the credential
// store from a single SQLite file.
type SQLiteRepositoryManager struct{}

func NewSQLiteRepositoryManager() *SQLiteRepositoryManager {
	return &SQLiteRepositoryManager{}
}

func (m *SQLiteRepositoryManager) Backend() string { return config.BackendDocument }

func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Dogs(db dbx.DBTX) dogs.Repository {
	return dogs.NewDocumentRepository(db)
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	_, err := migrateUp(ctx, db, migrations.SQLite)
	return err
}

const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"

// openSQLite opens path with the pragmas the document store relies on. The
// pool is capped at one connection: SQLite has a single writer, and an
// in-memory database only exists on the connection that created it.
func openSQLite(path string) (*sql.DB, error) {
	memory := path == ":memory:" || strings.Contains(path, "mode=memory")

	dsn := path
	if !memory {
		if _, err := filex.EnsureParentDir(strings.TrimPrefix(stripQuery(path), "file:")); err != nil {
			return nil, err
		}
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		dsn = path + sep + sqlitePragmas
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

func stripQuery(path string) string {
	p, _, _ := strings.Cut(path, "?")
	return p
}
