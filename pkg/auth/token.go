// Package auth verifies bearer tokens issued by the auth service. Tokens are
// validated only, never minted here; both services share the HS256 secret.
package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/quikapp/user-service/pkg/config"
)

var jwtSigningMethod = jwt.SigningMethodHS256

// VerifyAccessToken validates the JWT string and returns typed claims.
// Rejected cases: bad signature, malformed or unsupported token, expired
// token, issuer mismatch.
func VerifyAccessToken(cfg config.JWTConfig, tokenString string) (*AccessTokenClaims, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}

	claims := &AccessTokenClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}

	return claims, nil
}
