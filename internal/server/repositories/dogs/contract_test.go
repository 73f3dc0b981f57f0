package dogs

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/dogcatalog/internal/common"
	"github.com/dmitrijs2005/dogcatalog/internal/server/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bulldog() models.DogFields {
	return models.DogFields{
		Name:   "Bulldog",
		Breeds: []models.Breed{{Name: "Bulldog inglés"}, {Name: "Bulldog francés"}},
		Image:  "x.jpg",
	}
}

// runRepositoryContract checks the behavior every Repository must share.
// newRepo must return an empty repository.
func runRepositoryContract(t *testing.T, newRepo func(t *testing.T) Repository) {
	t.Run("round trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Create(ctx, bulldog())
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)
		assert.False(t, created.CreatedAt.IsZero())
		assert.Nil(t, created.UpdatedAt)

		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Bulldog", got.Name)
		assert.Equal(t, bulldog().Breeds, got.Breeds)
		assert.Equal(t, "x.jpg", got.Image)
		assert.True(t, got.CreatedAt.Equal(created.CreatedAt))
		assert.Nil(t, got.UpdatedAt)

		updated, err := repo.Update(ctx, created.ID, models.DogFields{
			Name:   "Bullenbeisser",
			Breeds: []models.Breed{{Name: "Bóxer"}},
			Image:  "y.jpg",
		})
		require.NoError(t, err)
		require.NotNil(t, updated.UpdatedAt)

		got, err = repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Bullenbeisser", got.Name)
		assert.Equal(t, []models.Breed{{Name: "Bóxer"}}, got.Breeds)
		assert.Equal(t, "y.jpg", got.Image)
		require.NotNil(t, got.UpdatedAt)
		assert.True(t, got.CreatedAt.Equal(created.CreatedAt), "createdAt is immutable")
	})

	t.Run("get by name returns newest", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		older, err := repo.Create(ctx, models.DogFields{Name: "Dálmata", Breeds: []models.Breed{{Name: "old"}}, Image: "1.jpg"})
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
		newer, err := repo.Create(ctx, models.DogFields{Name: "Dálmata", Breeds: []models.Breed{{Name: "new"}}, Image: "2.jpg"})
		require.NoError(t, err)
		require.NotEqual(t, older.ID, newer.ID)

		got, err := repo.GetByName(ctx, "Dálmata")
		require.NoError(t, err)
		assert.Equal(t, newer.ID, got.ID)
		assert.Equal(t, "2.jpg", got.Image)

		_, err = repo.GetByName(ctx, "Chihuahua")
		require.ErrorIs(t, err, common.ErrorNotFound)
	})

	t.Run("list keeps creation and breed order", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		empty, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, empty)

		first, err := repo.Create(ctx, bulldog())
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
		second, err := repo.Create(ctx, models.DogFields{Name: "Dálmata", Breeds: []models.Breed{{Name: "Dálmata"}}, Image: "d.jpg"})
		require.NoError(t, err)

		all, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, first.ID, all[0].ID)
		assert.Equal(t, second.ID, all[1].ID)
		assert.Equal(t, bulldog().Breeds, all[0].Breeds)
	})

	t.Run("missing ids are not found", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for _, id := range []string{"does-not-exist", uuid.NewString()} {
			_, err := repo.GetByID(ctx, id)
			require.ErrorIs(t, err, common.ErrorNotFound, "get %s", id)

			_, err = repo.Update(ctx, id, bulldog())
			require.ErrorIs(t, err, common.ErrorNotFound, "update %s", id)

			err = repo.Delete(ctx, id)
			require.ErrorIs(t, err, common.ErrorNotFound, "delete %s", id)
		}
	})

	t.Run("delete", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Create(ctx, bulldog())
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, created.ID))

		_, err = repo.GetByID(ctx, created.ID)
		require.ErrorIs(t, err, common.ErrorNotFound)
		require.ErrorIs(t, repo.Delete(ctx, created.ID), common.ErrorNotFound)
	})
}
