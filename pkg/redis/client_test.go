package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mantomate/storefront-backend/pkg/config"
	"github.com/mantomate/storefront-backend/pkg/redis/redistest"
)

func TestSetGetDel(t *testing.T) {
	ctx := context.Background()
	mock := redistest.NewFake()
	client := NewWithCmdable(mock)

	if err := client.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	got, err := client.Get(ctx, "k")
	if err != nil || got != "v" {
		t.Fatalf("expected v, got %q (%v)", got, err)
	}
	if mock.TTL("k") != time.Minute {
		t.Fatalf("expected ttl to be forwarded, got %v", mock.TTL("k"))
	}

	exists, err := client.Exists(ctx, "k")
	if err != nil || !exists {
		t.Fatalf("expected key to exist (%v)", err)
	}

	if err := client.Del(ctx, "k"); err != nil {
		t.Fatalf("del failed: %v", err)
	}
	if _, err := client.Get(ctx, "k"); !errors.Is(err, Nil) {
		t.Fatalf("expected Nil after delete, got %v", err)
	}
	if err := client.Del(ctx); err != nil {
		t.Fatalf("empty del should be a no-op, got %v", err)
	}
}

func TestSetNX(t *testing.T) {
	ctx := context.Background()
	client := NewWithCmdable(redistest.NewFake())

	ok, err := client.SetNX(ctx, "once", "a", time.Hour)
	if err != nil || !ok {
		t.Fatalf("first SetNX should win (%v)", err)
	}
	ok, err = client.SetNX(ctx, "once", "b", time.Hour)
	if err != nil || ok {
		t.Fatalf("second SetNX should lose (%v)", err)
	}
	if v, _ := client.Get(ctx, "once"); v != "a" {
		t.Fatalf("expected original value, got %q", v)
	}
}

func TestUninitializedClient(t *testing.T) {
	client := &Client{}
	if err := client.Ping(context.Background()); err == nil {
		t.Fatal("expected error from uninitialized client")
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close without raw client should be nil, got %v", err)
	}
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	if got := client.IdempotencyKey("scope", "id"); got != "manto:idempotency:scope:id" {
		t.Fatalf("unexpected idempotency key %s", got)
	}
	if got := client.CartKey("user-1", "manto_cart"); got != "manto:cart:user-1:manto_cart" {
		t.Fatalf("unexpected cart key %s", got)
	}
	if got := client.ViewKey("dashboard", "user-1"); got != "manto:view:dashboard:user-1" {
		t.Fatalf("unexpected view key %s", got)
	}
	if got := client.RevokedTokenKey(" jti "); got != "manto:revoked:jti" {
		t.Fatalf("unexpected revoked key %s", got)
	}
	if got := client.ViewKey("orders", ""); got != "manto:view:orders" {
		t.Fatalf("empty parts should be skipped, got %s", got)
	}
}

func TestOptionsFromConfigRequiresAddress(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error without url or address")
	}
	opts, err := optionsFromConfig(config.RedisConfig{URL: "redis://:pw@localhost:6380/2"})
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	if opts.Addr != "localhost:6380" || opts.DB != 2 || opts.Password != "pw" {
		t.Fatalf("unexpected options %+v", opts)
	}
}
