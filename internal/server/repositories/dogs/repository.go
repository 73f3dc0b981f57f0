// Package dogs is the catalog persistence layer. Repository is implemented by
// two backends with the same observable behavior:
//
//   - MappedRepository maps entries onto relational PostgreSQL tables and
//     validates every write against a JSON Schema derived from
//     models.DogFields before touching storage.
//   - DocumentRepository keeps each entry as one JSON document in SQLite and
//     stores what it is given.
//
// Both report missing or unparsable ids as common.ErrorNotFound.
package dogs

import (
	"context"

	"github.com/dmitrijs2005/dogcatalog/internal/server/models"
)

type Repository interface {
	// List returns all entries, oldest first.
	List(ctx context.Context) ([]models.Dog, error)
	GetByID(ctx context.Context, id string) (*models.Dog, error)
	// GetByName returns the most recently created entry with that name.
	GetByName(ctx context.Context, name string) (*models.Dog, error)
	// Create assigns ID and CreatedAt.
	Create(ctx context.Context, fields models.DogFields) (*models.Dog, error)
	// Update replaces name, breeds and image and sets UpdatedAt.
	Update(ctx context.Context, id string, fields models.DogFields) (*models.Dog, error)
	Delete(ctx context.Context, id string) error
}
