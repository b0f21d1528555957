package cart

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/mantomate/storefront-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

// Store is the authoritative cart of one shopper. It rehydrates from storage
// once and writes the full line array back after every mutation. A mutation
// whose write fails leaves the in-memory cart unchanged.
type Store struct {
	mu      sync.Mutex
	lines   []Line
	storage Storage
	logg    *logger.Logger
}

// NewStore loads the persisted cart. Unreadable or unparseable state is
// logged and discarded so the shopper starts with an empty cart.
func NewStore(ctx context.Context, storage Storage, logg *logger.Logger) *Store {
	if logg == nil {
		logg = logger.Nop()
	}
	s := &Store{storage: storage, logg: logg, lines: []Line{}}
	if storage == nil {
		return s
	}

	data, err := storage.Load(ctx)
	if err != nil {
		logg.Error(ctx, "cart.load_failed", err)
		return s
	}
	if len(data) == 0 {
		return s
	}
	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		logg.Error(ctx, "cart.state_discarded", err)
		return s
	}
	s.lines = sanitize(lines)
	return s
}

// Add increments the line of item or appends it with quantity 1.
func (s *Store) Add(ctx context.Context, item Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, addLine(s.lines, item))
}

// Remove deletes the line of productID; absent products are a no-op.
func (s *Store) Remove(ctx context.Context, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, removeLine(s.lines, productID))
}

// UpdateQuantity sets the quantity of productID. Quantities below 1 are
// ignored; Remove is the way to drop a line.
func (s *Store) UpdateQuantity(ctx context.Context, productID int64, quantity int) error {
	if quantity < 1 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, setQuantity(s.lines, productID, quantity))
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, []Line{})
}

// Lines returns a copy of the current lines.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneLines(s.lines)
}

// TotalItems sums line quantities.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalItems(s.lines)
}

// TotalPrice sums price times quantity over all lines.
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalPrice(s.lines)
}

func (s *Store) commit(ctx context.Context, next []Line) error {
	if s.storage != nil {
		data, err := json.Marshal(next)
		if err != nil {
			return err
		}
		if err := s.storage.Save(ctx, data); err != nil {
			return err
		}
	}
	s.lines = next
	return nil
}
