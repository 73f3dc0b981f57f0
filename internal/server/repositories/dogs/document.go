package dogs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/dogcatalog/internal/common"
	"github.com/dmitrijs2005/dogcatalog/internal/dbx"
	"github.com/dmitrijs2005/dogcatalog/internal/server/models"
	"github.com/oklog/ulid/v2"
)

// DocumentRepository keeps each entry as a JSON document in the
// dog_documents table. Ids are ULIDs; timestamps are unix nanoseconds.
type DocumentRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

func NewDocumentRepository(db dbx.DBTX) *DocumentRepository {
	return &DocumentRepository{db: db, now: time.Now}
}

const selectDocuments = `SELECT id, body, created_at, updated_at FROM dog_documents`

func (r *DocumentRepository) List(ctx context.Context) ([]models.Dog, error) {
	rows, err := r.db.QueryContext(ctx, selectDocuments+` ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Dog, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*models.Dog, error) {
	return scanDocument(r.db.QueryRowContext(ctx, selectDocuments+` WHERE id = ?`, id))
}

func (r *DocumentRepository) GetByName(ctx context.Context, name string) (*models.Dog, error) {
	return scanDocument(r.db.QueryRowContext(ctx,
		selectDocuments+` WHERE json_extract(body, '$.name') = ?
		ORDER BY created_at DESC, id DESC LIMIT 1`, name))
}

func (r *DocumentRepository) Create(ctx context.Context, fields models.DogFields) (*models.Dog, error) {
	body, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode dog: %w", err)
	}

	dog := models.NewDog(fields)
	dog.CreatedAt = r.now().UTC()
	dog.ID = ulid.MustNew(ulid.Timestamp(dog.CreatedAt), ulid.DefaultEntropy()).String()

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO dog_documents (id, body, created_at) VALUES (?, ?, ?)`,
		dog.ID, string(body), dog.CreatedAt.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return dog, nil
}

func (r *DocumentRepository) Update(ctx context.Context, id string, fields models.DogFields) (*models.Dog, error) {
	body, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode dog: %w", err)
	}

	dog := models.NewDog(fields)
	dog.ID = id
	updatedAt := r.now().UTC()

	var createdAt int64
	err = r.db.QueryRowContext(ctx,
		`UPDATE dog_documents SET body = ?, updated_at = ? WHERE id = ? RETURNING created_at`,
		string(body), updatedAt.UnixNano(), id).Scan(&createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	dog.CreatedAt = time.Unix(0, createdAt).UTC()
	dog.UpdatedAt = &updatedAt
	return dog, nil
}

func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dog_documents WHERE id = ?`, id)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*models.Dog, error) {
	var (
		id        string
		body      string
		createdAt int64
		updatedAt sql.NullInt64
	)
	if err := row.Scan(&id, &body, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	var fields models.DogFields
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		return nil, fmt.Errorf("decode dog %s: %w", id, err)
	}

	dog := models.NewDog(fields)
	dog.ID = id
	dog.CreatedAt = time.Unix(0, createdAt).UTC()
	if updatedAt.Valid {
		t := time.Unix(0, updatedAt.Int64).UTC()
		dog.UpdatedAt = &t
	}
	return dog, nil
}
