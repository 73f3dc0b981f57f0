package users

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/dogcatalog/internal/common"
	"github.com/dmitrijs2005/dogcatalog/internal/server/migrations"
	"github.com/dmitrijs2005/dogcatalog/internal/server/models"
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

func TestSQLiteCreateAndGet(t *testing.T) {
	repo := NewSQLiteRepository(newSQLiteDB(t))
	fixed := time.Date(2024, 2, 3, 4, 5, 6, 7, time.UTC)
	repo.now = func() time.Time { return fixed }

	u, err := repo.Create(context.Background(), &models.User{Username: "alice", PasswordHash: "h1"})
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)

	got, err := repo.GetUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "h1", got.PasswordHash)
	assert.True(t, got.CreatedAt.Equal(fixed))
}

func TestSQLiteCreate_DuplicateKeepsFirst(t *testing.T) {
	repo := NewSQLiteRepository(newSQLiteDB(t))
	ctx := context.Background()

	first, err := repo.Create(ctx, &models.User{Username: "alice", PasswordHash: "first"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.User{Username: "alice", PasswordHash: "second"})
	require.ErrorIs(t, err, common.ErrorConflict)

	got, err := repo.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "first", got.PasswordHash)
}

func TestSQLiteUsernamesAreCaseSensitive(t *testing.T) {
	repo := NewSQLiteRepository(newSQLiteDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.User{Username: "alice", PasswordHash: "a"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &models.User{Username: "Alice", PasswordHash: "b"})
	require.NoError(t, err)
}

func TestSQLiteGetUserByUsername_NotFound(t *testing.T) {
	repo := NewSQLiteRepository(newSQLiteDB(t))

	_, err := repo.GetUserByUsername(context.Background(), "ghost")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLite_DBErrorIsWrapped(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewSQLiteRepository(db)
	require.NoError(t, db.Close())

	_, err := repo.GetUserByUsername(context.Background(), "alice")
	require.ErrorContains(t, err, "db error")
	assert.NotErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLiteCreate_ConcurrentDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.db")
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=busy_timeout(5000)")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	_, err = migrations.Up(context.Background(), db, migrations.SQLite)
	require.NoError(t, err)

	repo := NewSQLiteRepository(db)

	const n = 10
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = repo.Create(context.Background(), &models.User{
				Username:     "bob",
				PasswordHash: fmt.Sprintf("h%d", i),
			})
		}()
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
		} else {
			assert.ErrorIs(t, err, common.ErrorConflict)
		}
	}
	assert.Equal(t, 1, created)
}
