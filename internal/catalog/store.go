// Package catalog owns the in-memory product list. The only mutation is
// a wholesale replacement; every replacement is mirrored into the
// snapshot store.
package catalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"github.com/exclucatalog/exclucatalog/internal/kvstore"
	"github.com/exclucatalog/exclucatalog/internal/models"
)

// Filter kinds accepted by Filter.
const (
	FilterModel = "model"
	FilterBrand = "brand"
)

type Store struct {
	mu   sync.RWMutex
	kv   kvstore.Store
	log  *slog.Logger
	list []models.Product
}

// NewStore loads the persisted catalog snapshot. An absent, corrupt or
// empty snapshot falls back to the seed catalog.
func NewStore(ctx context.Context, kv kvstore.Store, log *slog.Logger) *Store {
	s := &Store{kv: kv, log: log, list: Seed()}

	raw, ok, err := kv.Load(ctx, kvstore.KeyCatalogProducts)
	if err != nil {
		log.Error("load catalog snapshot", "error", err)
		return s
	}
	if !ok {
		return s
	}

	var saved []models.Product
	if err := json.Unmarshal(raw, &saved); err != nil {
		log.Error("parse catalog snapshot, using seed catalog", "error", err)
		return s
	}
	if len(saved) > 0 {
		s.list = saved
	}
	return s
}

// GetAll returns the catalog in insertion order.
func (s *Store) GetAll() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, len(s.list))
	copy(out, s.list)
	return out
}

// ReplaceAll swaps the entire catalog and persists the new snapshot. No
// merge with the prior contents happens.
func (s *Store) ReplaceAll(ctx context.Context, products []models.Product) error {
	next := make([]models.Product, len(products))
	copy(next, products)

	s.mu.Lock()
	s.list = next
	s.mu.Unlock()

	raw, err := json.Marshal(next)
	if err != nil {
		return err
	}
	return s.kv.Save(ctx, kvstore.KeyCatalogProducts, raw)
}

// Filter returns the products matching the given filter. Kind "model"
// matches the model field exactly; kind "brand" matches the first word
// of the product name. Any other kind returns the whole catalog.
func (s *Store) Filter(kind, value string) []models.Product {
	all := s.GetAll()
	if value == "" {
		return all
	}

	var keep func(p models.Product) bool
	switch kind {
	case FilterModel:
		keep = func(p models.Product) bool { return p.Model == value }
	case FilterBrand:
		keep = func(p models.Product) bool {
			name, _, _ := strings.Cut(p.Name, " ")
			return name == value
		}
	default:
		return all
	}

	out := make([]models.Product, 0, len(all))
	for _, p := range all {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
