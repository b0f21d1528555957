package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	redisclient "github.com/mantomate/storefront-backend/pkg/redis"
)

// minRevocationTTL keeps a marker around briefly even for tokens that are
// about to expire, covering clock skew and the verifier's leeway.
const minRevocationTTL = time.Minute

var ErrTokenIDRequired = errors.New("token id is required")

type revocationStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
}

type revocationKeyer interface {
	RevokedTokenKey(tokenID string) string
}

// RevocationChecker is the read-only surface used by the auth middleware.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Revocations records signed-out access tokens until they would have
// expired anyway, so a logged out token stops working immediately.
type Revocations struct {
	store revocationStore
	keyer revocationKeyer
	now   func() time.Time
}

// NewRevocations constructs a revocation list backed by Redis.
func NewRevocations(client *redisclient.Client) (*Revocations, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	return &Revocations{store: client, keyer: client, now: time.Now}, nil
}

// Revoke marks tokenID as signed out until expiresAt.
func (r *Revocations) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	tokenID = strings.TrimSpace(tokenID)
	if tokenID == "" {
		return ErrTokenIDRequired
	}
	ttl := expiresAt.Sub(r.now())
	if ttl < minRevocationTTL {
		ttl = minRevocationTTL
	}
	return r.store.Set(ctx, r.keyer.RevokedTokenKey(tokenID), "1", ttl)
}

// IsRevoked reports whether tokenID was signed out.
func (r *Revocations) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	tokenID = strings.TrimSpace(tokenID)
	if tokenID == "" {
		return false, nil
	}
	return r.store.Exists(ctx, r.keyer.RevokedTokenKey(tokenID))
}
