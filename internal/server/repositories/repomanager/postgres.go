package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/dogcatalog/internal/dbx"
	"github.com/dmitrijs2005/dogcatalog/internal/server/config"
	"github.com/dmitrijs2005/dogcatalog/internal/server/migrations"
	"github.com/dmitrijs2005/dogcatalog/internal/server/repositories/dogs"
	"github.com/dmitrijs2005/dogcatalog/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresRepositoryManager serves the mapped catalog and the credential
// store from PostgreSQL.
type PostgresRepositoryManager struct{}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Backend() string { return config.BackendMapped }

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Dogs(db dbx.DBTX) dogs.Repository {
	return dogs.NewMappedRepository(db)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	_, err := migrateUp(ctx, db, migrations.Postgres)
	return err
}
