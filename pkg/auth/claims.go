package auth

import "github.com/golang-jwt/jwt/v5"

// TokenTypeAccess is the token-type claim required for API authentication.
// Tokens of any other type (e.g. refresh) never authenticate a request.
const TokenTypeAccess = "access"

// AccessTokenClaims is the claim set minted by the auth service. The subject
// registered claim carries the user id.
type AccessTokenClaims struct {
	Email      string `json:"email,omitempty"`
	TokenType  string `json:"type,omitempty"`
	ExternalID string `json:"externalId,omitempty"`
	SessionID  string `json:"sessionId,omitempty"`
	jwt.RegisteredClaims
}

// Principal is the verified identity attached to an authenticated request.
type Principal struct {
	UserID     string
	Email      string
	ExternalID string
	SessionID  string
	Role       string
}

// PrincipalFromClaims maps verified claims onto the request principal. Every
// authenticated caller receives the same single role grant.
func PrincipalFromClaims(claims *AccessTokenClaims) Principal {
	return Principal{
		UserID:     claims.Subject,
		Email:      claims.Email,
		ExternalID: claims.ExternalID,
		SessionID:  claims.SessionID,
		Role:       "user",
	}
}
