package cart

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/mantomate/storefront-backend/internal/catalog"
	"github.com/mantomate/storefront-backend/pkg/auth"
	pkgerrors "github.com/mantomate/storefront-backend/pkg/errors"
	"github.com/mantomate/storefront-backend/pkg/redis"
	"github.com/mantomate/storefront-backend/pkg/redis/redistest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProducts struct {
	products map[int64]catalog.Product
}

func (s stubProducts) Get(_ context.Context, id int64) (*catalog.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func newRedisService(t *testing.T) (Service, *redistest.Fake) {
	t.Helper()
	fake := redistest.NewFake()
	client := redis.NewWithCmdable(fake)
	products := stubProducts{products: map[int64]catalog.Product{
		1: {ID: 1, Nombre: "Yerba Suave", Precio: decimal.NewFromInt(1500)},
	}}
	svc, err := NewService(func(principal string) Storage {
		return NewRedisStorage(client, principal, 720*time.Hour)
	}, products, nil, nil)
	require.NoError(t, err)
	return svc, fake
}

func TestServicePersistsCartPerPrincipal(t *testing.T) {
	ctx := context.Background()
	svc, fake := newRedisService(t)
	ana := auth.Principal{Subject: "user-ana"}
	bob := auth.Principal{Subject: "user-bob"}

	view, err := svc.AddProduct(ctx, ana, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, view.TotalItems)

	view, err = svc.UpdateQuantity(ctx, ana, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, "$ 4.500", view.TotalFormateado)

	again, err := svc.Get(ctx, ana)
	require.NoError(t, err)
	assert.Equal(t, 3, again.TotalItems)

	other, err := svc.Get(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, other.Items)

	assert.Equal(t, 720*time.Hour, fake.TTL("manto:cart:user-ana:manto_cart"))

	view, err = svc.Clear(ctx, ana)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestServiceRejectsUnknownProductAndAnonymous(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRedisService(t)

	_, err := svc.AddProduct(ctx, auth.Principal{Subject: "u"}, 404)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	_, err = svc.Get(ctx, auth.Principal{})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))
}

func TestServiceSurfacesStorageFailure(t *testing.T) {
	ctx := context.Background()
	svc, fake := newRedisService(t)
	principal := auth.Principal{Subject: "u"}

	_, err := svc.AddProduct(ctx, principal, 1)
	require.NoError(t, err)

	fake.Err = assert.AnError
	_, err = svc.Remove(ctx, principal, 1)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
}

type slowStorage struct {
	*MemoryStorage
	delay time.Duration
}

func (s slowStorage) Load(ctx context.Context) ([]byte, error) {
	time.Sleep(s.delay)
	return s.MemoryStorage.Load(ctx)
}

func addConcurrently(t *testing.T, svc Service, principal auth.Principal, n int) {
	t.Helper()
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddProduct(context.Background(), principal, 1)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}

func TestServiceConcurrentAddsAccumulate(t *testing.T) {
	storage := slowStorage{MemoryStorage: NewMemoryStorage(nil), delay: 2 * time.Millisecond}
	products := stubProducts{products: map[int64]catalog.Product{
		1: {ID: 1, Nombre: "Yerba Suave", Precio: decimal.NewFromInt(1500)},
	}}
	svc, err := NewService(func(string) Storage { return storage }, products, nil, nil)
	require.NoError(t, err)
	ana := auth.Principal{Subject: "user-ana"}

	addConcurrently(t, svc, ana, 20)

	view, err := svc.Get(context.Background(), ana)
	require.NoError(t, err)
	assert.Equal(t, 20, view.TotalItems)
}

func TestServiceConcurrentAddsAccumulateWithRedisLock(t *testing.T) {
	fake := redistest.NewFake()
	client := redis.NewWithCmdable(fake)
	locks, err := NewRedisLocker(client, 0)
	require.NoError(t, err)
	products := stubProducts{products: map[int64]catalog.Product{
		1: {ID: 1, Nombre: "Yerba Suave", Precio: decimal.NewFromInt(1500)},
	}}
	svc, err := NewService(func(principal string) Storage {
		return NewRedisStorage(client, principal, time.Hour)
	}, products, locks, nil)
	require.NoError(t, err)
	ana := auth.Principal{Subject: "user-ana"}

	addConcurrently(t, svc, ana, 10)

	view, err := svc.Get(context.Background(), ana)
	require.NoError(t, err)
	assert.Equal(t, 10, view.TotalItems)
	assert.NotContains(t, fake.Keys(), "manto:cart:user-ana:lock")
}

func TestRedisLockerTimesOutWhileHeld(t *testing.T) {
	fake := redistest.NewFake()
	locks, err := NewRedisLocker(redis.NewWithCmdable(fake), time.Minute)
	require.NoError(t, err)
	locks.wait = 20 * time.Millisecond

	release, err := locks.Lock(context.Background(), "user-ana")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, fake.TTL("manto:cart:user-ana:lock"))

	_, err = locks.Lock(context.Background(), "user-ana")
	assert.ErrorIs(t, err, ErrCartBusy)

	release()
	again, err := locks.Lock(context.Background(), "user-ana")
	require.NoError(t, err)
	again()
}

func TestLocalLockerHonorsContext(t *testing.T) {
	locks := NewLocalLocker()
	release, err := locks.Lock(context.Background(), "user-ana")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = locks.Lock(ctx, "user-ana")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	other, err := locks.Lock(context.Background(), "user-bob")
	require.NoError(t, err)
	other()

	release()
	assert.Empty(t, locks.locks)
}
