package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	pkgauth "github.com/quikapp/user-service/pkg/auth"
	"github.com/quikapp/user-service/pkg/config"
)

var testJWT = config.JWTConfig{Secret: "test-secret", Issuer: "quikapp-auth-test"}

func signToken(t *testing.T, cfg config.JWTConfig, mutate func(*pkgauth.AccessTokenClaims)) string {
	t.Helper()
	claims := &pkgauth.AccessTokenClaims{
		Email:     "alice@example.com",
		TokenType: pkgauth.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			Issuer:    cfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	if mutate != nil {
		mutate(claims)
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func principalProbe(got *pkgauth.Principal, found *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p, ok := PrincipalFromContext(r.Context()); ok {
			*got = p
			*found = true
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateValidToken(t *testing.T) {
	var principal pkgauth.Principal
	var found bool
	handler := Authenticate(testJWT, nil)(principalProbe(&principal, &found))

	subject := uuid.NewString()
	token := signToken(t, testJWT, func(c *pkgauth.AccessTokenClaims) {
		c.Subject = subject
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/"+subject, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !found {
		t.Fatal("expected a principal in the request context")
	}
	if principal.UserID != subject || principal.Email != "alice@example.com" {
		t.Fatalf("unexpected principal %+v", principal)
	}
}

func TestAuthenticateMissingTokenProceedsUnauthenticated(t *testing.T) {
	var principal pkgauth.Principal
	var found bool
	handler := Authenticate(testJWT, nil)(principalProbe(&principal, &found))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/abc", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("soft gate must not reject, got %d", rec.Code)
	}
	if found {
		t.Fatal("unauthenticated request must carry no principal")
	}
}

func TestAuthenticateInvalidSignatureProceedsUnauthenticated(t *testing.T) {
	var principal pkgauth.Principal
	var found bool
	handler := Authenticate(testJWT, nil)(principalProbe(&principal, &found))

	forged := signToken(t, config.JWTConfig{Secret: "other-secret", Issuer: testJWT.Issuer}, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/abc", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("soft gate must not reject, got %d", rec.Code)
	}
	if found {
		t.Fatal("forged token must not produce a principal")
	}
}

func TestAuthenticateRejectsNonAccessTokenType(t *testing.T) {
	var principal pkgauth.Principal
	var found bool
	handler := Authenticate(testJWT, nil)(principalProbe(&principal, &found))

	refresh := signToken(t, testJWT, func(c *pkgauth.AccessTokenClaims) {
		c.TokenType = "refresh"
	})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/abc", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if found {
		t.Fatal("refresh token must not authenticate a request")
	}
}

func TestAuthenticateSkipsOpenPaths(t *testing.T) {
	for _, path := range []string{"/health/live", "/health/ready", "/metrics", "/api/public/status"} {
		var principal pkgauth.Principal
		var found bool
		handler := Authenticate(testJWT, nil)(principalProbe(&principal, &found))

		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("open path %s must pass, got %d", path, rec.Code)
		}
	}
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	handler := RequireAuth(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/abc", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuthPassesAuthenticated(t *testing.T) {
	handler := RequireAuth(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/abc", nil)
	req = req.WithContext(WithPrincipal(req.Context(), pkgauth.Principal{UserID: uuid.NewString()}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
