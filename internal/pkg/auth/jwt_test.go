package auth

import (
	"errors"
	"testing"
	"time"
)

func testService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    exp,
		TokenIssuer: "dancecamp.app",
	})
}

func TestIssueAndValidateToken(t *testing.T) {
	svc := testService(time.Hour)

	token, expiresIn, err := svc.IssueToken("dancer@example.com")
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}
	if expiresIn != 3600 {
		t.Errorf("expected 3600s expiry, got %d", expiresIn)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken returned error: %v", err)
	}
	if claims.Email != "dancer@example.com" {
		t.Errorf("unexpected email claim %q", claims.Email)
	}
	if claims.Subject != "dancer@example.com" {
		t.Errorf("unexpected subject %q", claims.Subject)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	svc := testService(-time.Minute)

	token, _, err := svc.IssueToken("dancer@example.com")
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}

	_, err = svc.ValidateToken(token)
	if !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected expired-token error, got %v", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, _, err := testService(time.Hour).IssueToken("dancer@example.com")
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}

	other := NewJWTService(JWTConfig{
		SecretKey:   "different-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "dancecamp.app",
	})
	if _, err := other.ValidateToken(token); err == nil {
		t.Fatal("token signed with another secret must not validate")
	}
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	if err != nil {
		t.Fatalf("ExtractBearerToken returned error: %v", err)
	}
	if token != "abc.def.ghi" {
		t.Errorf("unexpected token %q", token)
	}

	if _, err := ExtractBearerToken(""); err == nil {
		t.Error("empty header must be rejected")
	}

	// A header without the Bearer prefix is passed through as-is
	raw, err := ExtractBearerToken("abc.def.ghi")
	if err != nil {
		t.Fatalf("bare token header returned error: %v", err)
	}
	if raw != "abc.def.ghi" {
		t.Errorf("unexpected raw token %q", raw)
	}
}
