package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/dogcatalog/internal/dbx"
	"github.com/dmitrijs2005/dogcatalog/internal/server/models"
	"github.com/dmitrijs2005/dogcatalog/internal/server/repositories/repomanager"
)

// DogService is the catalog use-case layer. It validates caller input before
// any storage call and runs writes in a transaction, whichever backend the
// repository manager serves.
type DogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewDogService(db *sql.DB, m repomanager.RepositoryManager) *DogService {
	return &DogService{db: db, repomanager: m}
}

func (s *DogService) List(ctx context.Context) ([]models.Dog, error) {
	return s.repomanager.Dogs(s.db).List(ctx)
}

func (s *DogService) GetByID(ctx context.Context, id string) (*models.Dog, error) {
	return s.repomanager.Dogs(s.db).GetByID(ctx, id)
}

func (s *DogService) GetByName(ctx context.Context, name string) (*models.Dog, error) {
	return s.repomanager.Dogs(s.db).GetByName(ctx, name)
}

func (s *DogService) Create(ctx context.Context, fields models.DogFields) (*models.Dog, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	var dog *models.Dog
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		dog, err = s.repomanager.Dogs(tx).Create(ctx, fields)
		return err
	})
	if err != nil {
		return nil, err
	}
	return dog, nil
}

// Update fully replaces name, breeds and image; omitted fields are rejected
// by validation rather than cleared.
func (s *DogService) Update(ctx context.Context, id string, fields models.DogFields) (*models.Dog, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	var dog *models.Dog
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		dog, err = s.repomanager.Dogs(tx).Update(ctx, id, fields)
		return err
	})
	if err != nil {
		return nil, err
	}
	return dog, nil
}

func (s *DogService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Dogs(s.db).Delete(ctx, id)
}

// Seed inserts entries when the catalog is empty and reports how many were
// added. A non-empty catalog is left alone.
func (s *DogService) Seed(ctx context.Context, entries []models.DogFields) (int, error) {
	added := 0
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Dogs(tx)

		existing, err := repo.List(ctx)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return nil
		}

		for _, e := range entries {
			if err := e.Validate(); err != nil {
				return err
			}
			if _, err := repo.Create(ctx, e); err != nil {
				return err
			}
			added++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}
