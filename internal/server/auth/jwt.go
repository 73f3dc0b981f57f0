// Package auth holds the password hashing and session token primitives.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/dogcatalog/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/samber/oops"
)

// DefaultTokenValidity is how long an issued token stays valid.
const DefaultTokenValidity = time.Hour

// TokenService issues and verifies stateless HS256 session tokens. There is
// no revocation list: a token is valid until it expires.
type TokenService struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

// TokenOption customises a TokenService.
type TokenOption func(*TokenService)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

// NewTokenService fails on an empty secret; a non-positive validity falls
// back to DefaultTokenValidity.
func NewTokenService(secret []byte, validity time.Duration, opts ...TokenOption) (*TokenService, error) {
	if len(secret) == 0 {
		return nil, oops.Code("AUTH_NO_SECRET").Errorf("token signing secret is empty")
	}
	if validity <= 0 {
		validity = DefaultTokenValidity
	}

	s := &TokenService{
		secret:   append([]byte(nil), secret...),
		validity: validity,
		now:      time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Issue signs a token whose subject is principalID.
func (s *TokenService) Issue(principalID string) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   principalID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.validity)),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", oops.Code("AUTH_TOKEN_SIGN_FAILED").Wrap(err)
	}
	return signed, nil
}

// Verify returns the principal id carried by token. Expired tokens yield
// common.ErrTokenExpired, every other failure common.ErrInvalidToken.
func (s *TokenService) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !parsed.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}
	return claims.Subject, nil
}
