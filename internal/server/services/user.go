// Package services contains server-side business logic. UserService handles
// registration and login; DogService the catalog; ImageService presigned
// image links.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/dogcatalog/internal/common"
	"github.com/dmitrijs2005/dogcatalog/internal/server/auth"
	"github.com/dmitrijs2005/dogcatalog/internal/server/models"
	"github.com/dmitrijs2005/dogcatalog/internal/server/repositories/repomanager"
	"github.com/samber/oops"
)

// TokenIssuer mints session tokens for authenticated principals.
type TokenIssuer interface {
	Issue(principalID string) (string, error)
}

// UserService provides registration and login.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      auth.PasswordHasher
	tokens      TokenIssuer
	dummyHash   func() (string, error)
}

// NewUserService constructs a UserService.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher auth.PasswordHasher, tokens TokenIssuer) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		dummyHash: sync.OnceValues(func() (string, error) {
			return hasher.Hash("dogcatalog-timing-equalizer")
		}),
	}
}

// Register creates a principal. A taken username yields an error matching
// common.ErrorConflict and leaves the existing principal untouched.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, &models.User{Username: username, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, oops.Code("USER_CONFLICT").With("username", username).Wrap(err)
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login checks the credentials and returns a fresh session token. Unknown
// users and wrong passwords both yield common.ErrorUnauthorized; for unknown
// users a dummy hash is still verified so both paths cost the same.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	if err := validateCredentials(username, password); err != nil {
		return "", err
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			if hash, herr := s.dummyHash(); herr == nil {
				_, _ = s.hasher.Verify(password, hash)
			}
			return "", common.ErrorUnauthorized
		}
		return "", fmt.Errorf("error loading user: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("error verifying password: %w", err)
	}
	if !ok {
		return "", common.ErrorUnauthorized
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("error issuing token: %w", err)
	}
	return token, nil
}

func validateCredentials(username, password string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: username is required", common.ErrorBadRequest)
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", common.ErrorBadRequest)
	}
	if len(password) > auth.MaxPasswordBytes {
		return fmt.Errorf("%w: password must be at most %d bytes", common.ErrorBadRequest, auth.MaxPasswordBytes)
	}
	return nil
}
