package middleware

import (
	"net/http"
	"strings"

	"github.com/quikapp/user-service/api/responses"
	pkgauth "github.com/quikapp/user-service/pkg/auth"
	"github.com/quikapp/user-service/pkg/config"
	pkgerrors "github.com/quikapp/user-service/pkg/errors"
	"github.com/quikapp/user-service/pkg/logger"
)

// Paths that never carry credentials. Probes and scrapers hit these.
var openPathPrefixes = []string{
	"/health/",
	"/api/public/",
}

var openPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

func isOpenPath(path string) bool {
	if _, ok := openPaths[path]; ok {
		return true
	}
	for _, prefix := range openPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Authenticate verifies the bearer token when one is present and seeds the
// request context with the caller principal. Requests without a usable token
// proceed unauthenticated; enforcement happens in RequireAuth so that open
// routes stay reachable.
func Authenticate(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isOpenPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := pkgauth.VerifyAccessToken(cfg, token)
			if err != nil {
				if logg != nil {
					ctx := logg.WithField(r.Context(), "error", err.Error())
					logg.Warn(ctx, "auth.token_rejected")
				}
				next.ServeHTTP(w, r)
				return
			}

			if claims.TokenType != pkgauth.TokenTypeAccess {
				if logg != nil {
					ctx := logg.WithField(r.Context(), "token_type", claims.TokenType)
					logg.Warn(ctx, "auth.wrong_token_type")
				}
				next.ServeHTTP(w, r)
				return
			}

			principal := pkgauth.PrincipalFromClaims(claims)
			ctx := WithPrincipal(r.Context(), principal)
			if logg != nil {
				ctx = logg.WithUserID(ctx, principal.UserID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests that did not authenticate upstream.
func RequireAuth(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := PrincipalFromContext(r.Context()); !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return ""
}
