package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mantomate/storefront-backend/pkg/redis"
)

// StorageKey names the persisted cart of a shopper.
const StorageKey = "manto_cart"

// Storage persists the serialized cart of one shopper.
type Storage interface {
	// Load returns nil data when nothing was saved yet.
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

type redisStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CartKey(principal, name string) string
}

// RedisStorage keeps a shopper's cart under manto:cart:<principal>:manto_cart.
type RedisStorage struct {
	client redisStore
	key    string
	ttl    time.Duration
}

// NewRedisStorage binds storage to principal. ttl 0 keeps the cart forever.
func NewRedisStorage(client redisStore, principal string, ttl time.Duration) *RedisStorage {
	return &RedisStorage{
		client: client,
		key:    client.CartKey(principal, StorageKey),
		ttl:    ttl,
	}
}

func (s *RedisStorage) Load(ctx context.Context) ([]byte, error) {
	value, err := s.client.Get(ctx, s.key)
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

// Save refreshes the TTL on every write.
func (s *RedisStorage) Save(ctx context.Context, data []byte) error {
	return s.client.Set(ctx, s.key, string(data), s.ttl)
}

// MemoryStorage is a process-local Storage.
type MemoryStorage struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryStorage returns storage preloaded with data.
func NewMemoryStorage(data []byte) *MemoryStorage {
	return &MemoryStorage{data: data}
}

func (s *MemoryStorage) Load(context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, nil
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, nil
}

func (s *MemoryStorage) Save(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
	return nil
}
