package dogs

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/dogcatalog/internal/common"
	"github.com/dmitrijs2005/dogcatalog/internal/server/migrations"
	"github.com/dmitrijs2005/dogcatalog/internal/server/models"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = migrations.Up(context.Background(), db, migrations.SQLite)
	require.NoError(t, err)
	return db
}

func TestDocumentRepository_Contract(t *testing.T) {
	runRepositoryContract(t, func(t *testing.T) Repository {
		return NewDocumentRepository(newSQLiteDB(t))
	})
}

func TestDocumentRepository_StoresRawJSON(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewDocumentRepository(db)

	created, err := repo.Create(context.Background(), bulldog())
	require.NoError(t, err)

	var name, firstBreed string
	err = db.QueryRow(`SELECT json_extract(body, '$.name'), json_extract(body, '$.breeds[0].name')
		FROM dog_documents WHERE id = ?`, created.ID).Scan(&name, &firstBreed)
	require.NoError(t, err)
	assert.Equal(t, "Bulldog", name)
	assert.Equal(t, "Bulldog inglés", firstBreed)
}

func TestDocumentRepository_IDsAreULIDs(t *testing.T) {
	repo := NewDocumentRepository(newSQLiteDB(t))
	fixed := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	created, err := repo.Create(context.Background(), bulldog())
	require.NoError(t, err)

	id, err := ulid.ParseStrict(created.ID)
	require.NoError(t, err)
	assert.Equal(t, ulid.Timestamp(fixed), id.Time())
	assert.True(t, created.CreatedAt.Equal(fixed))
}

func TestDocumentRepository_SameInstantTieBreaksOnID(t *testing.T) {
	repo := NewDocumentRepository(newSQLiteDB(t))
	fixed := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }
	ctx := context.Background()

	_, err := repo.Create(ctx, bulldog())
	require.NoError(t, err)
	second, err := repo.Create(ctx, bulldog())
	require.NoError(t, err)

	got, err := repo.GetByName(ctx, "Bulldog")
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
}

func TestDocumentRepository_UpdateSetsTimestamp(t *testing.T) {
	repo := NewDocumentRepository(newSQLiteDB(t))
	created := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return created }
	ctx := context.Background()

	dog, err := repo.Create(ctx, bulldog())
	require.NoError(t, err)

	later := created.Add(time.Hour)
	repo.now = func() time.Time { return later }

	_, err = repo.Update(ctx, dog.ID, models.DogFields{Name: "Bulldog", Breeds: []models.Breed{{Name: "Olde"}}, Image: "z.jpg"})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, dog.ID)
	require.NoError(t, err)
	require.NotNil(t, got.UpdatedAt)
	assert.True(t, got.UpdatedAt.Equal(later))
	assert.True(t, got.CreatedAt.Equal(created))
}

func TestDocumentRepository_DBErrors(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewDocumentRepository(db)
	require.NoError(t, db.Close())
	ctx := context.Background()

	_, err := repo.List(ctx)
	require.ErrorContains(t, err, "db error")

	_, err = repo.GetByID(ctx, "x")
	require.ErrorContains(t, err, "db error")
	assert.NotErrorIs(t, err, common.ErrorNotFound)
}
