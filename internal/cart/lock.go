package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	lockKeyName      = "lock"
	defaultLockTTL   = 10 * time.Second
	defaultLockWait  = 3 * time.Second
	defaultLockRetry = 10 * time.Millisecond
)

// ErrCartBusy is returned when another request kept the shopper's cart
// locked for longer than the lock wait.
var ErrCartBusy = errors.New("cart is locked by another request")

// Locker serializes the read-change-write cycle of one shopper's cart.
// The returned release func must be called exactly once.
type Locker interface {
	Lock(ctx context.Context, principal string) (release func(), err error)
}

// LocalLocker serializes mutations inside one process.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	sem  chan struct{}
	refs int
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: make(map[string]*keyLock)}
}

func (l *LocalLocker) Lock(ctx context.Context, principal string) (func(), error) {
	l.mu.Lock()
	kl, ok := l.locks[principal]
	if !ok {
		kl = &keyLock{sem: make(chan struct{}, 1)}
		l.locks[principal] = kl
	}
	kl.refs++
	l.mu.Unlock()

	select {
	case kl.sem <- struct{}{}:
		return func() {
			<-kl.sem
			l.unref(principal, kl)
		}, nil
	case <-ctx.Done():
		l.unref(principal, kl)
		return nil, ctx.Err()
	}
}

func (l *LocalLocker) unref(principal string, kl *keyLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	kl.refs--
	if kl.refs == 0 {
		delete(l.locks, principal)
	}
}

type lockStore interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	CartKey(principal, name string) string
}

// RedisLocker serializes mutations across API instances with SETNX + TTL
// under manto:cart:<principal>:lock.
type RedisLocker struct {
	client lockStore
	ttl    time.Duration
	wait   time.Duration
	retry  time.Duration
}

// NewRedisLocker builds a lock held at most ttl; 0 uses the default.
func NewRedisLocker(client lockStore, ttl time.Duration) (*RedisLocker, error) {
	if client == nil {
		return nil, errors.New("redis client required for cart lock")
	}
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &RedisLocker{
		client: client,
		ttl:    ttl,
		wait:   defaultLockWait,
		retry:  defaultLockRetry,
	}, nil
}

func (l *RedisLocker) Lock(ctx context.Context, principal string) (func(), error) {
	key := l.client.CartKey(principal, lockKeyName)
	owner := uuid.NewString()

	deadline := time.NewTimer(l.wait)
	defer deadline.Stop()

	for {
		ok, err := l.client.SetNX(ctx, key, owner, l.ttl)
		if err != nil {
			return nil, fmt.Errorf("setnx: %w", err)
		}
		if ok {
			releaseCtx := context.WithoutCancel(ctx)
			return func() { l.release(releaseCtx, key, owner) }, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			return nil, ErrCartBusy
		case <-time.After(l.retry):
		}
	}
}

// release deletes the key only while owner still holds it. A missing key or
// a failed call leaves expiry to the TTL.
func (l *RedisLocker) release(ctx context.Context, key, owner string) {
	value, err := l.client.Get(ctx, key)
	if err != nil || value != owner {
		return
	}
	_ = l.client.Del(ctx, key)
}
