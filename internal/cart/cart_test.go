package cart

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exclucatalog/exclucatalog/internal/kvstore"
	"github.com/exclucatalog/exclucatalog/internal/logging"
	"github.com/exclucatalog/exclucatalog/internal/models"
)

func testProduct(id int64, price float64) models.Product {
	return models.Product{ID: id, Code: "C", Name: "Producto", Model: "General", Price: price}
}

func newTestStore(t *testing.T) (*Store, *kvstore.Memory) {
	t.Helper()
	kv := kvstore.NewMemory()
	s := NewStore(context.Background(), kv, logging.New("error"))
	return s, kv
}

func TestAddToCart_MergesByProductID(t *testing.T) {
	t.Parallel()
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddToCart(ctx, testProduct(1, 10)))
	require.NoError(t, s.AddToCart(ctx, testProduct(2, 5)))
	require.NoError(t, s.AddToCart(ctx, testProduct(1, 10)))

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, int64(2), items[1].ID)
	assert.Equal(t, 1, items[1].Quantity)
	assert.Equal(t, 3, s.TotalItems())
}

func TestUpdateQuantity(t *testing.T) {
	t.Parallel()
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddToCart(ctx, testProduct(1, 10)))

	require.NoError(t, s.UpdateQuantity(ctx, 1, 7))
	assert.Equal(t, 7, s.Items()[0].Quantity)

	// Below 1 is ignored, not treated as removal.
	require.NoError(t, s.UpdateQuantity(ctx, 1, 0))
	assert.Equal(t, 7, s.Items()[0].Quantity)
	require.NoError(t, s.UpdateQuantity(ctx, 1, -3))
	assert.Equal(t, 7, s.Items()[0].Quantity)
}

func TestRemoveFromCart_Idempotent(t *testing.T) {
	t.Parallel()
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddToCart(ctx, testProduct(1, 10)))
	require.NoError(t, s.RemoveFromCart(ctx, 99))
	require.Len(t, s.Items(), 1)

	require.NoError(t, s.RemoveFromCart(ctx, 1))
	require.Empty(t, s.Items())

	require.NoError(t, s.RemoveFromCart(ctx, 1))
	require.Empty(t, s.Items())
}

func TestSaveOrder_EmptyCart(t *testing.T) {
	t.Parallel()
	s, _ := newTestStore(t)

	order, err := s.SaveOrder(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, order)
	assert.Empty(t, s.Orders())
}

func TestSaveOrder_SnapshotIsIndependent(t *testing.T) {
	t.Parallel()
	s, _ := newTestStore(t)
	ctx := context.Background()

	now := time.UnixMilli(1700000000000)
	s.SetClock(func() time.Time { return now })

	require.NoError(t, s.AddToCart(ctx, testProduct(1, 10)))
	require.NoError(t, s.AddToCart(ctx, testProduct(1, 10)))
	require.NoError(t, s.AddToCart(ctx, testProduct(2, 2.5)))

	order, err := s.SaveOrder(ctx, &models.Customer{RIF: "V-1", Name: "Ana", Phone: "0414", Address: "Av. 1"})
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.Equal(t, "1700000000000", order.ID)
	assert.Equal(t, 22.5, order.Total)
	require.Len(t, order.Items, 2)

	// The cart is left untouched by checkout.
	assert.Len(t, s.Items(), 2)

	// Later cart mutations must not leak into the saved order.
	require.NoError(t, s.UpdateQuantity(ctx, 1, 50))
	require.NoError(t, s.RemoveFromCart(ctx, 2))

	saved := s.Orders()[0]
	assert.Equal(t, 2, saved.Items[0].Quantity)
	assert.Len(t, saved.Items, 2)
	assert.Equal(t, 22.5, saved.Total)
}

func TestSaveOrder_PrependsToHistory(t *testing.T) {
	t.Parallel()
	s, _ := newTestStore(t)
	ctx := context.Background()

	ts := time.UnixMilli(1000)
	s.SetClock(func() time.Time { return ts })

	require.NoError(t, s.AddToCart(ctx, testProduct(1, 1)))
	_, err := s.SaveOrder(ctx, nil)
	require.NoError(t, err)

	ts = time.UnixMilli(2000)
	_, err = s.SaveOrder(ctx, nil)
	require.NoError(t, err)

	orders := s.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, "2000", orders[0].ID)
	assert.Equal(t, "1000", orders[1].ID)
}

func TestStore_PersistsAndReloads(t *testing.T) {
	t.Parallel()
	s, kv := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddToCart(ctx, testProduct(1, 10)))
	_, err := s.SaveOrder(ctx, nil)
	require.NoError(t, err)

	reloaded := NewStore(ctx, kv, logging.New("error"))
	require.Len(t, reloaded.Items(), 1)
	require.Len(t, reloaded.Orders(), 1)
	assert.Equal(t, s.Orders()[0].ID, reloaded.Orders()[0].ID)
}

func TestStore_CorruptSnapshotStartsEmpty(t *testing.T) {
	t.Parallel()
	kv := kvstore.NewMemory()
	ctx := context.Background()
	require.NoError(t, kv.Save(ctx, kvstore.KeyCartItems, []byte("{not json")))
	require.NoError(t, kv.Save(ctx, kvstore.KeyOrderHistory, []byte("also not json")))

	s := NewStore(ctx, kv, logging.New("error"))
	assert.Empty(t, s.Items())
	assert.Empty(t, s.Orders())
}

func TestMutationsWriteSnapshotImmediately(t *testing.T) {
	t.Parallel()
	s, kv := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddToCart(ctx, testProduct(1, 10)))

	raw, ok, err := kv.Load(ctx, kvstore.KeyCartItems)
	require.NoError(t, err)
	require.True(t, ok)

	var items []models.CartItem
	require.NoError(t, json.Unmarshal(raw, &items))
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}
