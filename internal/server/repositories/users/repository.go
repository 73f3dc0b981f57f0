// Package users is the credential store: one record per registered principal
// with a unique username and a password hash. Records are created once and
// never updated or deleted.
//
// Uniqueness is enforced by the database (UNIQUE constraint), so two
// concurrent registrations of the same username cannot both succeed; the
// loser gets common.ErrorConflict.
package users

import (
	"context"

	"github.com/dmitrijs2005/dogcatalog/internal/server/models"
)

type Repository interface {
	// Create inserts user and fills in ID and CreatedAt. A taken username
	// yields common.ErrorConflict.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetUserByUsername yields common.ErrorNotFound when no such user exists.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}
