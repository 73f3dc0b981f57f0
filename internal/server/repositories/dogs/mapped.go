package dogs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/dogcatalog/internal/common"
	"github.com/dmitrijs2005/dogcatalog/internal/dbx"
	"github.com/dmitrijs2005/dogcatalog/internal/server/models"
	"github.com/google/uuid"
)

// MappedRepository stores entries in the dogs and dog_breeds tables. Create
// and Update touch both tables and must run on a transaction handle to be
// atomic; the catalog service takes care of that.
type MappedRepository struct {
	db dbx.DBTX
}

func NewMappedRepository(db dbx.DBTX) *MappedRepository {
	return &MappedRepository{db: db}
}

const selectDogs = `SELECT d.id, d.name, d.image, d.created_at, d.updated_at, b.name
	FROM dogs d
	LEFT JOIN dog_breeds b ON b.dog_id = d.id`

func (r *MappedRepository) List(ctx context.Context) ([]models.Dog, error) {
	return r.query(ctx, selectDogs+` ORDER BY d.created_at, d.id, b.position`)
}

func (r *MappedRepository) GetByID(ctx context.Context, id string) (*models.Dog, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, common.ErrorNotFound
	}
	return r.queryOne(ctx, selectDogs+` WHERE d.id = $1 ORDER BY b.position`, uid.String())
}

func (r *MappedRepository) GetByName(ctx context.Context, name string) (*models.Dog, error) {
	return r.queryOne(ctx, selectDogs+` WHERE d.id = (
		SELECT id FROM dogs WHERE name = $1 ORDER BY created_at DESC, id DESC LIMIT 1
	) ORDER BY b.position`, name)
}

func (r *MappedRepository) Create(ctx context.Context, fields models.DogFields) (*models.Dog, error) {
	if err := ValidateFields(fields); err != nil {
		return nil, err
	}

	dog := models.NewDog(fields)
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO dogs (name, image) VALUES ($1, $2) RETURNING id, created_at`,
		dog.Name, dog.Image).Scan(&dog.ID, &dog.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := r.insertBreeds(ctx, dog.ID, dog.Breeds); err != nil {
		return nil, err
	}
	return dog, nil
}

func (r *MappedRepository) Update(ctx context.Context, id string, fields models.DogFields) (*models.Dog, error) {
	if err := ValidateFields(fields); err != nil {
		return nil, err
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, common.ErrorNotFound
	}
	id = uid.String()

	dog := models.NewDog(fields)
	dog.ID = id

	var updatedAt time.Time
	err = r.db.QueryRowContext(ctx,
		`UPDATE dogs SET name = $2, image = $3, updated_at = now()
		 WHERE id = $1
		 RETURNING created_at, updated_at`,
		id, dog.Name, dog.Image).Scan(&dog.CreatedAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	dog.UpdatedAt = &updatedAt

	if _, err := r.db.ExecContext(ctx, `DELETE FROM dog_breeds WHERE dog_id = $1`, id); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if err := r.insertBreeds(ctx, id, dog.Breeds); err != nil {
		return nil, err
	}
	return dog, nil
}

func (r *MappedRepository) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return common.ErrorNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM dogs WHERE id = $1`, uid.String())
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *MappedRepository) insertBreeds(ctx context.Context, dogID string, breeds []models.Breed) error {
	for i, b := range breeds {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO dog_breeds (dog_id, position, name) VALUES ($1, $2, $3)`,
			dogID, i, b.Name)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}
	return nil
}

func (r *MappedRepository) queryOne(ctx context.Context, query string, args ...any) (*models.Dog, error) {
	dogs, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if len(dogs) == 0 {
		return nil, common.ErrorNotFound
	}
	return &dogs[0], nil
}

// query folds the dog/breed join back into entries, relying on rows of one
// dog being adjacent.
func (r *MappedRepository) query(ctx context.Context, query string, args ...any) ([]models.Dog, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Dog, 0)
	for rows.Next() {
		var (
			d         models.Dog
			updatedAt sql.NullTime
			breed     sql.NullString
		)
		if err := rows.Scan(&d.ID, &d.Name, &d.Image, &d.CreatedAt, &updatedAt, &breed); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}

		if n := len(result); n == 0 || result[n-1].ID != d.ID {
			if updatedAt.Valid {
				t := updatedAt.Time
				d.UpdatedAt = &t
			}
			d.Breeds = []models.Breed{}
			result = append(result, d)
		}
		if breed.Valid {
			last := &result[len(result)-1]
			last.Breeds = append(last.Breeds, models.Breed{Name: breed.String})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
