// Package cart owns the cart line items and the order history. Every
// mutation writes the full state back to the snapshot store right away.
package cart

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/exclucatalog/exclucatalog/internal/kvstore"
	"github.com/exclucatalog/exclucatalog/internal/models"
)

const dateLayout = "2/1/2006, 15:04:05"

type Store struct {
	mu     sync.Mutex
	kv     kvstore.Store
	log    *slog.Logger
	items  []models.CartItem
	orders []models.Order
	now    func() time.Time
}

// NewStore loads the persisted cart and order history. Corrupt snapshots
// are logged and treated as empty.
func NewStore(ctx context.Context, kv kvstore.Store, log *slog.Logger) *Store {
	s := &Store{kv: kv, log: log, now: time.Now}
	s.items = loadSlice[models.CartItem](ctx, kv, log, kvstore.KeyCartItems)
	s.orders = loadSlice[models.Order](ctx, kv, log, kvstore.KeyOrderHistory)
	return s
}

func loadSlice[T any](ctx context.Context, kv kvstore.Store, log *slog.Logger, key string) []T {
	raw, ok, err := kv.Load(ctx, key)
	if err != nil {
		log.Error("load snapshot", "key", key, "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Error("parse snapshot, starting empty", "key", key, "error", err)
		return nil
	}
	return out
}

// SetClock overrides the timestamp source for order ids and dates.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

// AddToCart increments the quantity of an existing line item or appends
// a new one with quantity 1. Existing item order is preserved.
func (s *Store) AddToCart(ctx context.Context, p models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.items {
		if s.items[i].ID == p.ID {
			s.items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		s.items = append(s.items, models.CartItem{Product: p, Quantity: 1})
	}
	return s.saveCart(ctx)
}

// UpdateQuantity sets the item's quantity exactly. Quantities below 1
// are ignored.
func (s *Store) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	if quantity < 1 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = quantity
			return s.saveCart(ctx)
		}
	}
	return nil
}

// RemoveFromCart removes the matching line item. Removing an absent id
// is a no-op.
func (s *Store) RemoveFromCart(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return s.saveCart(ctx)
		}
	}
	return nil
}

func (s *Store) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	return s.saveCart(ctx)
}

func (s *Store) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyItems(s.items)
}

// TotalItems is the sum of all quantities.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, it := range s.items {
		total += it.Quantity
	}
	return total
}

func (s *Store) Orders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// SaveOrder snapshots the current cart into a new order and prepends it
// to the history. The cart itself is left untouched; clearing it after
// checkout is the caller's decision. An empty cart produces no order.
func (s *Store) SaveOrder(ctx context.Context, customer *models.Customer) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		return nil, nil
	}

	now := s.now()
	total := 0.0
	for _, it := range s.items {
		total += it.Price * float64(it.Quantity)
	}

	order := models.Order{
		ID:       strconv.FormatInt(now.UnixMilli(), 10),
		Date:     now.Format(dateLayout),
		Total:    total,
		Items:    copyItems(s.items),
		Customer: customer,
	}

	s.orders = append([]models.Order{order}, s.orders...)
	if err := s.saveOrders(ctx); err != nil {
		return nil, err
	}
	return &order, nil
}

func copyItems(items []models.CartItem) []models.CartItem {
	out := make([]models.CartItem, len(items))
	copy(out, items)
	return out
}

func (s *Store) saveCart(ctx context.Context) error {
	raw, err := json.Marshal(s.items)
	if err != nil {
		return err
	}
	return s.kv.Save(ctx, kvstore.KeyCartItems, raw)
}

func (s *Store) saveOrders(ctx context.Context) error {
	raw, err := json.Marshal(s.orders)
	if err != nil {
		return err
	}
	return s.kv.Save(ctx, kvstore.KeyOrderHistory, raw)
}
