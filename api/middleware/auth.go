package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mantomate/storefront-backend/api/responses"
	pkgAuth "github.com/mantomate/storefront-backend/pkg/auth"
	"github.com/mantomate/storefront-backend/pkg/auth/session"
	"github.com/mantomate/storefront-backend/pkg/config"
	pkgerrors "github.com/mantomate/storefront-backend/pkg/errors"
	"github.com/mantomate/storefront-backend/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the
// principal. Requests without a valid token are rejected.
func Auth(cfg config.AuthConfig, revocations session.RevocationChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return authenticate(cfg, revocations, logg, true)
}

// OptionalAuth seeds the principal when a valid token is present and lets
// anonymous requests through untouched.
func OptionalAuth(cfg config.AuthConfig, revocations session.RevocationChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return authenticate(cfg, revocations, logg, false)
}

func authenticate(cfg config.AuthConfig, revocations session.RevocationChecker, logg *logger.Logger, required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				if !required {
					next.ServeHTTP(w, r)
					return
				}
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			principal, err := verify(r.Context(), cfg, revocations, token)
			if err != nil {
				if !required && pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
					next.ServeHTTP(w, r)
					return
				}
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := WithPrincipal(r.Context(), principal)
			if logg != nil {
				ctx = logg.WithUserID(ctx, principal.Subject)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func verify(ctx context.Context, cfg config.AuthConfig, revocations session.RevocationChecker, token string) (pkgAuth.Principal, error) {
	claims, err := pkgAuth.ParseAccessToken(cfg, token)
	if err != nil {
		return pkgAuth.Principal{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token")
	}
	principal := pkgAuth.PrincipalFromClaims(claims)

	if revocations != nil && principal.TokenID != "" {
		revoked, err := revocations.IsRevoked(ctx, principal.TokenID)
		if err != nil {
			return pkgAuth.Principal{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session")
		}
		if revoked {
			return pkgAuth.Principal{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "session revoked")
		}
	}
	return principal, nil
}

func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(raw) > 7 && strings.EqualFold(raw[:7], "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}
