package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/talentbridge/marketplace/internal/core/domain"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func testUser() *domain.User {
	return &domain.User{ID: "u-1", Email: "alice@example.com", Role: domain.RoleCandidate}
}

func TestNewTokenCodec_MissingSecret(t *testing.T) {
	if _, err := NewTokenCodec("", 0); !errors.Is(err, domain.ErrMissingSigningSecret) {
		t.Fatalf("expected ErrMissingSigningSecret, got %v", err)
	}
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec, err := NewTokenCodec("secret", 0, WithClock(fixedClock(fixedNow)))
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}

	token, err := codec.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "u-1" || claims.Email != "alice@example.com" || claims.Role != domain.RoleCandidate {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != 7*24*time.Hour {
		t.Fatalf("expected 7 day lifetime, got %s", got)
	}
}

func TestTokenCodec_Deterministic(t *testing.T) {
	a, _ := NewTokenCodec("secret", 0, WithClock(fixedClock(fixedNow)))
	b, _ := NewTokenCodec("secret", 0, WithClock(fixedClock(fixedNow)))

	t1, _ := a.Issue(testUser())
	t2, _ := b.Issue(testUser())
	if t1 != t2 {
		t.Fatalf("expected identical tokens for the same secret and clock")
	}
}

func TestTokenCodec_Expired(t *testing.T) {
	issuer, _ := NewTokenCodec("secret", 0, WithClock(fixedClock(fixedNow)))
	token, _ := issuer.Issue(testUser())

	later, _ := NewTokenCodec("secret", 0, WithClock(fixedClock(fixedNow.Add(7*24*time.Hour+time.Second))))
	if _, err := later.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}

	justBefore, _ := NewTokenCodec("secret", 0, WithClock(fixedClock(fixedNow.Add(7*24*time.Hour-time.Second))))
	if _, err := justBefore.Verify(token); err != nil {
		t.Fatalf("expected token valid just before expiry, got %v", err)
	}
}

func TestTokenCodec_WrongSecret(t *testing.T) {
	issuer, _ := NewTokenCodec("other-secret", 0)
	token, _ := issuer.Issue(testUser())

	verifier, _ := NewTokenCodec("secret", 0)
	if _, err := verifier.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenCodec_RejectsOtherAlgorithms(t *testing.T) {
	verifier, _ := NewTokenCodec("secret", 0)
	claims := TokenClaims{
		UserID: "u-1",
		Role:   domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign HS512: %v", err)
	}
	if _, err := verifier.Verify(hs512); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected HS512 token rejected, got %v", err)
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, err := verifier.Verify(none); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected alg=none token rejected, got %v", err)
	}
}

func TestTokenCodec_Malformed(t *testing.T) {
	verifier, _ := NewTokenCodec("secret", 0)
	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := verifier.Verify(raw); !errors.Is(err, domain.ErrInvalidToken) {
			t.Errorf("%q: expected ErrInvalidToken, got %v", raw, err)
		}
	}
}

func TestTokenCodec_MissingExpiry(t *testing.T) {
	verifier, _ := NewTokenCodec("secret", 0)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, TokenClaims{UserID: "u-1"}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := verifier.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected token without exp rejected, got %v", err)
	}
}
