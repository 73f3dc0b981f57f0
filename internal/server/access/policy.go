// Package access decides whether a request may mutate the catalog. A Policy
// inspects the request headers and either yields the caller's Identity or
// denies with common.ErrorUnauthorized. The server picks one policy at
// startup; routes never know which.
package access

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/dogcatalog/internal/common"
)

const (
	MethodBearer       = "bearer"
	MethodSharedSecret = "shared_secret"

	// SharedSecretPrincipal is reported for callers admitted by the API key.
	SharedSecretPrincipal = "api-key"
)

// Identity is the outcome of a successful authorization.
type Identity struct {
	// Principal is the user id for bearer tokens and SharedSecretPrincipal
	// for the API key.
	Principal string
	Method    string
}

type Policy interface {
	Authorize(r *http.Request) (Identity, error)
}

// TokenVerifier resolves a session token to the principal it was issued to.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// BearerPolicy admits requests carrying "Authorization: Bearer <token>" with
// a token the verifier accepts.
type BearerPolicy struct {
	verifier TokenVerifier
}

func NewBearerPolicy(v TokenVerifier) *BearerPolicy {
	return &BearerPolicy{verifier: v}
}

func (p *BearerPolicy) Authorize(r *http.Request) (Identity, error) {
	token, ok := bearerToken(r.Header.Get(common.AuthorizationHeaderName))
	if !ok {
		return Identity{}, common.ErrorUnauthorized
	}

	principal, err := p.verifier.Verify(token)
	if err != nil || principal == "" {
		return Identity{}, common.ErrorUnauthorized
	}
	return Identity{Principal: principal, Method: MethodBearer}, nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// SharedSecretPolicy admits requests whose X-API-Key header equals the
// configured secret. An empty secret admits nobody.
type SharedSecretPolicy struct {
	secret []byte
}

func NewSharedSecretPolicy(secret string) *SharedSecretPolicy {
	return &SharedSecretPolicy{secret: []byte(secret)}
}

func (p *SharedSecretPolicy) Authorize(r *http.Request) (Identity, error) {
	if len(p.secret) == 0 {
		return Identity{}, common.ErrorUnauthorized
	}

	presented := r.Header.Get(common.APIKeyHeaderName)
	if subtle.ConstantTimeCompare([]byte(presented), p.secret) != 1 {
		return Identity{}, common.ErrorUnauthorized
	}
	return Identity{Principal: SharedSecretPrincipal, Method: MethodSharedSecret}, nil
}
