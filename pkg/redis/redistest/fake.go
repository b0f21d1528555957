// Package redistest provides an in-memory stand-in for the go-redis command
// surface used by pkg/redis.
package redistest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Fake implements pkg/redis.Cmdable in memory. TTLs are recorded but
// never expire entries.
type Fake struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
	// Err, when set, is returned by every command.
	Err error
}

func NewFake() *Fake {
	return &Fake{
		data: make(map[string]string),
		ttls: make(map[string]time.Duration),
	}
}

// TTL returns the expiration recorded for key.
func (f *Fake) TTL(key string) time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ttls[key]
}

// Keys returns the stored keys.
func (f *Fake) Keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.data))
	for k := range f.data {
		keys = append(keys, k)
	}
	return keys
}

func (f *Fake) Ping(context.Context) *redis.StatusCmd {
	if f.Err != nil {
		return redis.NewStatusResult("", f.Err)
	}
	return redis.NewStatusResult("PONG", nil)
}

func (f *Fake) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	if f.Err != nil {
		return redis.NewStatusResult("", f.Err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = stringify(value)
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *Fake) Get(_ context.Context, key string) *redis.StringCmd {
	if f.Err != nil {
		return redis.NewStringResult("", f.Err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *Fake) SetNX(_ context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd {
	if f.Err != nil {
		return redis.NewBoolResult(false, f.Err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.data[key]; exists {
		return redis.NewBoolResult(false, nil)
	}
	f.data[key] = stringify(value)
	f.ttls[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func (f *Fake) Exists(_ context.Context, keys ...string) *redis.IntCmd {
	if f.Err != nil {
		return redis.NewIntResult(0, f.Err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, key := range keys {
		if _, ok := f.data[key]; ok {
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *Fake) Del(_ context.Context, keys ...string) *redis.IntCmd {
	if f.Err != nil {
		return redis.NewIntResult(0, f.Err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, key := range keys {
		if _, ok := f.data[key]; ok {
			n++
		}
		delete(f.data, key)
		delete(f.ttls, key)
	}
	return redis.NewIntResult(n, nil)
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}
