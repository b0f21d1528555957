package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/mantomate/storefront-backend/internal/catalog"
	"github.com/mantomate/storefront-backend/pkg/auth"
	pkgerrors "github.com/mantomate/storefront-backend/pkg/errors"
	"github.com/mantomate/storefront-backend/pkg/logger"
)

// Service exposes the shopper's server-side cart.
type Service interface {
	Get(ctx context.Context, principal auth.Principal) (*View, error)
	AddProduct(ctx context.Context, principal auth.Principal, productID int64) (*View, error)
	UpdateQuantity(ctx context.Context, principal auth.Principal, productID int64, quantity int) (*View, error)
	Remove(ctx context.Context, principal auth.Principal, productID int64) (*View, error)
	Clear(ctx context.Context, principal auth.Principal) (*View, error)
}

// StorageFactory returns the storage holding principal's cart.
type StorageFactory func(principal string) Storage

type productLoader interface {
	Get(ctx context.Context, id int64) (*catalog.Product, error)
}

type service struct {
	storage  StorageFactory
	products productLoader
	locks    Locker
	logg     *logger.Logger
}

// NewService constructs a cart service. A nil locker serializes mutations
// within this process only.
func NewService(storage StorageFactory, products productLoader, locks Locker, logg *logger.Logger) (Service, error) {
	if storage == nil {
		return nil, fmt.Errorf("cart storage factory required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if locks == nil {
		locks = NewLocalLocker()
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{storage: storage, products: products, locks: locks, logg: logg}, nil
}

func (s *service) open(ctx context.Context, principal auth.Principal) *Store {
	return NewStore(ctx, s.storage(principal.Subject), s.logg)
}

// mutate reloads the cart while holding the shopper's lock so concurrent
// requests apply on top of each other.
func (s *service) mutate(ctx context.Context, principal auth.Principal, fn func(*Store) error) (*View, error) {
	if principal.IsZero() {
		return nil, errNotAuthenticated()
	}
	release, err := s.locks.Lock(ctx, principal.Subject)
	if err != nil {
		if errors.Is(err, ErrCartBusy) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "carrito ocupado, reintentá")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lock cart")
	}
	defer release()

	store := s.open(ctx, principal)
	if err := fn(store); err != nil {
		return nil, persistError(err)
	}
	return NewView(store), nil
}

func (s *service) Get(ctx context.Context, principal auth.Principal) (*View, error) {
	if principal.IsZero() {
		return nil, errNotAuthenticated()
	}
	return NewView(s.open(ctx, principal)), nil
}

// AddProduct copies name, price and image from the catalog into the line.
func (s *service) AddProduct(ctx context.Context, principal auth.Principal, productID int64) (*View, error) {
	if principal.IsZero() {
		return nil, errNotAuthenticated()
	}
	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "producto no encontrado")
	}
	item := Item{
		ID:        product.ID,
		Nombre:    product.Nombre,
		Precio:    product.Precio,
		ImagenURL: product.ImagenURL,
	}
	return s.mutate(ctx, principal, func(store *Store) error {
		return store.Add(ctx, item)
	})
}

func (s *service) UpdateQuantity(ctx context.Context, principal auth.Principal, productID int64, quantity int) (*View, error) {
	return s.mutate(ctx, principal, func(store *Store) error {
		return store.UpdateQuantity(ctx, productID, quantity)
	})
}

func (s *service) Remove(ctx context.Context, principal auth.Principal, productID int64) (*View, error) {
	return s.mutate(ctx, principal, func(store *Store) error {
		return store.Remove(ctx, productID)
	})
}

func (s *service) Clear(ctx context.Context, principal auth.Principal) (*View, error) {
	return s.mutate(ctx, principal, func(store *Store) error {
		return store.Clear(ctx)
	})
}

func errNotAuthenticated() error {
	return pkgerrors.New(pkgerrors.CodeUnauthorized, "No autenticado")
}

func persistError(err error) error {
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart")
}
