// Package migrations embeds the goose SQL migrations for both storage
// engines and applies them.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// Engine selects a migration set.
type Engine string

const (
	Postgres Engine = "postgres"
	SQLite   Engine = "sqlite"
)

func (e Engine) dialect() (goose.Dialect, error) {
	switch e {
	case Postgres:
		return goose.DialectPostgres, nil
	case SQLite:
		return goose.DialectSQLite3, nil
	default:
		return "", fmt.Errorf("unknown migration engine %q", string(e))
	}
}

// FS returns the migration files of one engine.
func FS(e Engine) (fs.FS, error) {
	return fs.Sub(files, string(e))
}

// Up applies all pending migrations for engine e and returns how many ran.
func Up(ctx context.Context, db *sql.DB, e Engine) (int, error) {
	dialect, err := e.dialect()
	if err != nil {
		return 0, err
	}
	fsys, err := FS(e)
	if err != nil {
		return 0, err
	}

	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return 0, fmt.Errorf("goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("goose up: %w", err)
	}
	return len(results), nil
}
