package identity

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/everestpress/printshop-api/internal/httperr"
)

func TestTokenIssuer_AccessRoundtrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour, time.Hour)

	token, err := issuer.IssueAccess("user-1")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	sub, err := issuer.VerifyAccess(token)
	if err != nil {
		t.Fatalf("VerifyAccess: %v", err)
	}
	if sub != "user-1" {
		t.Fatalf("expected subject user-1, got %q", sub)
	}
}

func TestTokenIssuer_ExpiredAccessToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour, time.Hour)

	// Signed with the right secret but already past its expiry.
	claims := jwt.MapClaims{
		"sub": "user-1",
		"iat": time.Now().Add(-2 * time.Hour).Unix(),
		"exp": time.Now().Add(-time.Minute).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := issuer.VerifyAccess(token); !httperr.IsKind(err, httperr.KindUnauthenticated) {
		t.Fatalf("expected unauthenticated error, got %v", err)
	}
}

func TestTokenIssuer_ExpiredResetToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour, time.Hour)

	claims := jwt.MapClaims{
		"sub":     "user-1",
		"jti":     "jti-1",
		"purpose": "password_reset",
		"iat":     time.Now().Add(-2 * time.Hour).Unix(),
		"exp":     time.Now().Add(-time.Minute).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, _, _, err := issuer.VerifyReset(token); !httperr.IsKind(err, httperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTokenIssuer_WrongSecretRejected(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour, time.Hour)
	other := NewTokenIssuer("other-secret", time.Hour, time.Hour)

	token, err := issuer.IssueAccess("user-1")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	if _, err := other.VerifyAccess(token); err == nil {
		t.Fatal("expected verification to fail with a different secret")
	}
}

func TestTokenIssuer_ResetTokenIsNotASessionToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour, time.Hour)

	token, _, err := issuer.IssueReset("user-1")
	if err != nil {
		t.Fatalf("IssueReset: %v", err)
	}

	if _, err := issuer.VerifyAccess(token); err == nil {
		t.Fatal("expected reset token to be rejected as a session credential")
	}
}

func TestTokenIssuer_ResetRoundtrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour, time.Hour)

	token, jti, err := issuer.IssueReset("user-1")
	if err != nil {
		t.Fatalf("IssueReset: %v", err)
	}
	if jti == "" {
		t.Fatal("expected a non-empty jti")
	}

	sub, gotJTI, remaining, err := issuer.VerifyReset(token)
	if err != nil {
		t.Fatalf("VerifyReset: %v", err)
	}
	if sub != "user-1" {
		t.Fatalf("expected subject user-1, got %q", sub)
	}
	if gotJTI != jti {
		t.Fatalf("jti mismatch: issued %q, verified %q", jti, gotJTI)
	}
	if remaining <= 0 || remaining > time.Hour {
		t.Fatalf("unexpected remaining lifetime: %v", remaining)
	}
}

func TestTokenIssuer_AccessTokenIsNotAResetToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour, time.Hour)

	token, err := issuer.IssueAccess("user-1")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	if _, _, _, err := issuer.VerifyReset(token); !httperr.IsKind(err, httperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
