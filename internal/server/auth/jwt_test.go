package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/dogcatalog/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newService(t *testing.T, secret string, clock *fakeClock) *TokenService {
	t.Helper()
	s, err := NewTokenService([]byte(secret), time.Hour, WithClock(clock.Now))
	if err != nil {
		t.Fatalf("NewTokenService error: %v", err)
	}
	return s
}

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	s := newService(t, "super-secret", clock)

	tok, err := s.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	got, err := s.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if got != "user-123" {
		t.Fatalf("principal mismatch: got %q want %q", got, "user-123")
	}
}

func TestIssue_EmbedsStandardClaims(t *testing.T) {
	t.Parallel()

	issued := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := newService(t, "k", &fakeClock{t: issued})

	tok, err := s.Issue("u1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		t.Fatalf("ParseUnverified error: %v", err)
	}
	if claims.Subject != "u1" {
		t.Fatalf("sub = %q", claims.Subject)
	}
	if !claims.IssuedAt.Time.Equal(issued) {
		t.Fatalf("iat = %v, want %v", claims.IssuedAt.Time, issued)
	}
	if !claims.ExpiresAt.Time.Equal(issued.Add(time.Hour)) {
		t.Fatalf("exp = %v, want %v", claims.ExpiresAt.Time, issued.Add(time.Hour))
	}
}

func TestVerify_ExpiresAfterValidity(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	s := newService(t, "secret", clock)

	tok, err := s.Issue("u1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	clock.Advance(59 * time.Minute)
	if _, err := s.Verify(tok); err != nil {
		t.Fatalf("token must still be valid before expiry, got %v", err)
	}

	clock.Advance(time.Minute)
	_, err = s.Verify(tok)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected common.ErrTokenExpired at expiry, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{t: time.Now()}
	tok, err := newService(t, "right-secret", clock).Issue("u2")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = newService(t, "wrong-secret", clock).Verify(tok)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	s := newService(t, "secret", &fakeClock{t: time.Now()})
	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := s.Verify(tok); !errors.Is(err, common.ErrInvalidToken) {
			t.Fatalf("Verify(%q): expected common.ErrInvalidToken, got %v", tok, err)
		}
	}
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	now := time.Now()
	s := newService(t, "secret", &fakeClock{t: now})

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "u3",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("SignedString error: %v", err)
	}

	if _, err := s.Verify(tok); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken for HS512, got %v", err)
	}
}

func TestVerify_RequiresExpiryAndSubject(t *testing.T) {
	t.Parallel()

	now := time.Now()
	s := newService(t, "secret", &fakeClock{t: now})

	cases := map[string]jwt.RegisteredClaims{
		"no exp":     {Subject: "u4"},
		"no subject": {ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))},
	}
	for name, claims := range cases {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		if err != nil {
			t.Fatalf("%s: SignedString error: %v", name, err)
		}
		if _, err := s.Verify(tok); !errors.Is(err, common.ErrInvalidToken) {
			t.Fatalf("%s: expected common.ErrInvalidToken, got %v", name, err)
		}
	}
}

func TestNewTokenService_EmptySecret(t *testing.T) {
	t.Parallel()

	if _, err := NewTokenService(nil, time.Hour); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}

func TestNewTokenService_DefaultValidity(t *testing.T) {
	t.Parallel()

	s, err := NewTokenService([]byte("k"), 0)
	if err != nil {
		t.Fatalf("NewTokenService error: %v", err)
	}
	if s.validity != DefaultTokenValidity {
		t.Fatalf("validity = %v, want %v", s.validity, DefaultTokenValidity)
	}
}
