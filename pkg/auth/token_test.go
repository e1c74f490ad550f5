package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/quikapp/user-service/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "quikapp-auth-local"}
}

type mintOptions struct {
	secret    string
	issuer    string
	expiresIn time.Duration
	tokenType string
	subject   string
	email     string
}

func mintToken(t *testing.T, opts mintOptions) string {
	t.Helper()

	if opts.secret == "" {
		opts.secret = "secret"
	}
	if opts.issuer == "" {
		opts.issuer = "quikapp-auth-local"
	}
	if opts.expiresIn == 0 {
		opts.expiresIn = 30 * time.Minute
	}
	if opts.tokenType == "" {
		opts.tokenType = TokenTypeAccess
	}
	if opts.subject == "" {
		opts.subject = uuid.NewString()
	}

	now := time.Now()
	claims := AccessTokenClaims{
		Email:      opts.email,
		TokenType:  opts.tokenType,
		ExternalID: "ext-1",
		SessionID:  "sess-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   opts.subject,
			Issuer:    opts.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(opts.expiresIn)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(opts.secret))
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestVerifyAccessToken(t *testing.T) {
	subject := uuid.NewString()
	token := mintToken(t, mintOptions{subject: subject, email: "a@x.com"})

	claims, err := VerifyAccessToken(testJWTConfig(), token)
	if err != nil {
		t.Fatalf("verify access token: %v", err)
	}

	if claims.Subject != subject {
		t.Fatalf("expected subject %s, got %s", subject, claims.Subject)
	}
	if claims.Email != "a@x.com" {
		t.Fatalf("unexpected email %q", claims.Email)
	}
	if claims.TokenType != TokenTypeAccess {
		t.Fatalf("unexpected token type %q", claims.TokenType)
	}
	if claims.ExternalID != "ext-1" || claims.SessionID != "sess-1" {
		t.Fatalf("external/session claims not preserved")
	}
}

func TestVerifyAccessTokenInvalidSignature(t *testing.T) {
	token := mintToken(t, mintOptions{})
	if _, err := VerifyAccessToken(testJWTConfig(), token+"x"); err == nil {
		t.Fatal("expected invalid signature error")
	}
}

func TestVerifyAccessTokenWrongSecret(t *testing.T) {
	token := mintToken(t, mintOptions{secret: "other-secret"})
	if _, err := VerifyAccessToken(testJWTConfig(), token); err == nil {
		t.Fatal("expected signature verification to fail")
	}
}

func TestVerifyAccessTokenExpired(t *testing.T) {
	token := mintToken(t, mintOptions{expiresIn: -time.Hour})
	_, err := VerifyAccessToken(testJWTConfig(), token)
	if err == nil {
		t.Fatal("expected expiration error")
	}
	if !strings.Contains(err.Error(), "expired") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestVerifyAccessTokenIssuerMismatch(t *testing.T) {
	// Signature and expiry are valid; the issuer alone must reject it.
	token := mintToken(t, mintOptions{issuer: "someone-else"})
	if _, err := VerifyAccessToken(testJWTConfig(), token); err == nil {
		t.Fatal("expected issuer mismatch error")
	}
}

func TestVerifyAccessTokenMalformed(t *testing.T) {
	if _, err := VerifyAccessToken(testJWTConfig(), "not-a-jwt"); err == nil {
		t.Fatal("expected malformed token error")
	}
}

func TestPrincipalFromClaims(t *testing.T) {
	claims := &AccessTokenClaims{
		Email:      "a@x.com",
		TokenType:  TokenTypeAccess,
		ExternalID: "ext-9",
		SessionID:  "sess-9",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "user-9",
		},
	}
	principal := PrincipalFromClaims(claims)
	if principal.UserID != "user-9" || principal.Email != "a@x.com" {
		t.Fatalf("unexpected principal %+v", principal)
	}
	if principal.Role != "user" {
		t.Fatalf("expected single user role grant, got %q", principal.Role)
	}
}
