package auth

import (
	"testing"
	"time"
)

func TestGenerateAndValidateTokens(t *testing.T) {
	auth := NewJWTAuthenticator("access-secret", "refresh-secret", "parcacote", "parcacote", time.Minute, time.Hour)

	access, refresh, err := auth.GenerateTokens(42, "user")
	if err != nil {
		t.Fatalf("GenerateTokens: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("expected non-empty tokens")
	}

	tok, err := auth.ValidateAccessToken(access)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	sub, err := tok.Claims.GetSubject()
	if err != nil {
		t.Fatalf("GetSubject: %v", err)
	}
	if sub != "42" {
		t.Errorf("got sub %q, want %q", sub, "42")
	}

	rtok, err := auth.ValidateRefreshToken(refresh)
	if err != nil {
		t.Fatalf("ValidateRefreshToken: %v", err)
	}
	rsub, err := rtok.Claims.GetSubject()
	if err != nil {
		t.Fatalf("GetSubject on refresh token: %v", err)
	}
	if rsub != "42" {
		t.Errorf("got refresh sub %q, want %q", rsub, "42")
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	auth := NewJWTAuthenticator("access-secret", "refresh-secret", "parcacote", "parcacote", time.Minute, time.Hour)

	access, _, err := auth.GenerateTokens(1, "user")
	if err != nil {
		t.Fatalf("GenerateTokens: %v", err)
	}

	// A refresh token endpoint must not accept an access token.
	if _, err := auth.ValidateRefreshToken(access); err == nil {
		t.Error("expected validation failure for access token against refresh secret")
	}

	other := NewJWTAuthenticator("other-secret", "other-refresh", "parcacote", "parcacote", time.Minute, time.Hour)
	if _, err := other.ValidateAccessToken(access); err == nil {
		t.Error("expected validation failure with wrong secret")
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	auth := NewJWTAuthenticator("access-secret", "refresh-secret", "parcacote", "parcacote", -time.Minute, time.Hour)

	access, _, err := auth.GenerateTokens(1, "user")
	if err != nil {
		t.Fatalf("GenerateTokens: %v", err)
	}
	if _, err := auth.ValidateAccessToken(access); err == nil {
		t.Error("expected validation failure for expired token")
	}
}
