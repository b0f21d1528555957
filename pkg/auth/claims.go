package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenClaims mirrors the JWT minted by the external identity provider.
// The subject is the provider's stable user id.
type AccessTokenClaims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Principal is the authenticated shopper as seen by handlers and services.
type Principal struct {
	Subject   string
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

// IsZero reports whether no identity is present.
func (p Principal) IsZero() bool {
	return strings.TrimSpace(p.Subject) == ""
}

// PrincipalFromClaims extracts the principal carried by verified claims.
func PrincipalFromClaims(claims *AccessTokenClaims) Principal {
	if claims == nil {
		return Principal{}
	}
	p := Principal{
		Subject: strings.TrimSpace(claims.Subject),
		Email:   strings.ToLower(strings.TrimSpace(claims.Email)),
		TokenID: claims.ID,
	}
	if claims.ExpiresAt != nil {
		p.ExpiresAt = claims.ExpiresAt.Time
	}
	return p
}
