// Package kvstore persists whole-state snapshots under fixed keys, the
// way the original deployment used browser local storage. A missing or
// unreadable value is reported as absent, never as a fatal error.
package kvstore

import "context"

// Well-known snapshot keys.
const (
	KeyCartItems       = "cart_items"
	KeyOrderHistory    = "order_history"
	KeyCatalogProducts = "catalog_products"
	KeyAuthSession     = "auth_session"
)

type Store interface {
	// Load returns the stored blob for key and whether it exists.
	Load(ctx context.Context, key string) ([]byte, bool, error)
	// Save overwrites the stored blob for key.
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
