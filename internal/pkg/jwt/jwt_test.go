package jwt

import (
	"errors"
	"strings"
	"testing"
	"time"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type stubUUID struct{}

func (stubUUID) Generate() string { return "test-token-id" }

func newTestJWT(t *testing.T, clk clocker, secret string) *Symmetric {
	t.Helper()

	s, err := NewHS512(Config{
		Secret:     []byte(secret),
		Issuer:     "gonote-test",
		Audiences:  []string{"gonote-test"},
		TTLMinutes: time.Hour,
		Clock:      clk,
		UUID:       stubUUID{},
	})
	if err != nil {
		t.Fatalf("init jwt: %v", err)
	}

	return s
}

func TestNewHS512RejectsShortSecret(t *testing.T) {
	_, err := NewHS512(Config{Secret: []byte("too-short")})

	if !errors.Is(err, ErrSigningKeyTooShort) {
		t.Fatalf("expected ErrSigningKeyTooShort, got %v", err)
	}
}

func TestGenerateVerifyRoundTrip(t *testing.T) {
	// A fixed clock on both sides: validity must not depend on wall time.
	clk := fixedClock{now: time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)}
	s := newTestJWT(t, clk, strings.Repeat("a", 64))

	token, err := s.Generate(42, "user@example.com")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	clm, err := s.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if clm.UserID != 42 {
		t.Fatalf("user id mismatch: got %d want 42", clm.UserID)
	}
	if clm.UserEmail != "user@example.com" {
		t.Fatalf("email mismatch: got %q", clm.UserEmail)
	}
	if clm.Issuer != "gonote-test" {
		t.Fatalf("issuer mismatch: got %q", clm.Issuer)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	issuedAt := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	secret := strings.Repeat("a", 64)

	issuer := newTestJWT(t, fixedClock{now: issuedAt}, secret)
	later := newTestJWT(t, fixedClock{now: issuedAt.Add(2 * time.Hour)}, secret)

	token, err := issuer.Generate(42, "user@example.com")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := issuer.Verify(token); err != nil {
		t.Fatalf("token must verify within its ttl: %v", err)
	}
	if _, err := later.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	clk := fixedClock{now: time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)}
	issuer := newTestJWT(t, clk, strings.Repeat("a", 64))
	other := newTestJWT(t, clk, strings.Repeat("b", 64))

	token, err := issuer.Generate(42, "user@example.com")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := other.Verify(token); err == nil {
		t.Fatal("a token signed with another secret must not verify")
	}
}

func TestVerifyGarbage(t *testing.T) {
	s := newTestJWT(t, fixedClock{now: time.Now()}, strings.Repeat("a", 64))

	if _, err := s.Verify("not.a.token"); err == nil {
		t.Fatal("garbage input must not verify")
	}
}

func TestAuthContextRoundTrip(t *testing.T) {
	ctx := SetAuth(t.Context(), Claims{UserID: 7, UserEmail: "user@example.com"})

	clm := GetAuth(ctx)
	if clm == nil {
		t.Fatal("claims missing from context")
	}
	if clm.UserID != 7 {
		t.Fatalf("user id mismatch: got %d", clm.UserID)
	}

	if GetAuth(t.Context()) != nil {
		t.Fatal("fresh context must have no claims")
	}
}
