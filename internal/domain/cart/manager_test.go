package cart

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"artisan/internal/domain/entity"
	domainerrors "artisan/internal/domain/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapStore struct {
	data   map[string]string
	getErr error
	setErr error
}

func newMapStore() *mapStore {
	return &mapStore{data: map[string]string{}}
}

func (s *mapStore) Get(_ context.Context, key string) (string, bool, error) {
	if s.getErr != nil {
		return "", false, s.getErr
	}
	v, ok := s.data[key]

	return v, ok, nil
}

func (s *mapStore) Set(_ context.Context, key, value string) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.data[key] = value

	return nil
}

func (s *mapStore) Remove(_ context.Context, key string) error {
	if s.setErr != nil {
		return s.setErr
	}
	delete(s.data, key)

	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newManager(t *testing.T, ctx context.Context, store *mapStore, owner string) *Manager {
	t.Helper()

	m, err := NewManager(ctx, store, owner, testLogger())
	require.NoError(t, err)

	return m
}

func product(id string, stock int, price string) *entity.Product {
	return &entity.Product{
		ID:         id,
		SellerID:   "s1",
		Name:       "Product " + id,
		Price:      decimal.RequireFromString(price),
		StockCount: stock,
		Images:     []string{"https://cdn.example.com/" + id + ".jpg"},
		IsActive:   true,
	}
}

func TestManager_AddToCart(t *testing.T) {
	ctx := context.Background()
	m := newManager(t, ctx, newMapStore(), "u1")
	p := product("p1", 2, "10.50")

	lines, err := m.AddToCart(ctx, p)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, "https://cdn.example.com/p1.jpg", lines[0].Image)

	lines, err = m.AddToCart(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, 2, lines[0].Quantity)

	_, err = m.AddToCart(ctx, p)
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientStock)
	assert.Equal(t, 2, m.Lines()[0].Quantity)
	assert.Equal(t, 2, m.ItemCount())
	assert.True(t, decimal.RequireFromString("21").Equal(m.Subtotal()))
}

func TestManager_AddToCart_OutOfStock(t *testing.T) {
	ctx := context.Background()
	store := newMapStore()
	m := newManager(t, ctx, store, "u1")

	_, err := m.AddToCart(ctx, product("p1", 0, "5"))
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientStock)
	assert.Empty(t, m.Lines())
	assert.NotContains(t, store.data, CartKey("u1"))
}

func TestManager_NeverExceedsStock(t *testing.T) {
	ctx := context.Background()
	m := newManager(t, ctx, newMapStore(), "u1")
	p := product("p1", 3, "1")

	for range 10 {
		_, _ = m.AddToCart(ctx, p)
		for _, line := range m.Lines() {
			assert.LessOrEqual(t, line.Quantity, p.StockCount)
		}
	}
	assert.Equal(t, 3, m.ItemCount())
}

func TestManager_StockDroppedBelowQuantity(t *testing.T) {
	ctx := context.Background()
	m := newManager(t, ctx, newMapStore(), "u1")
	p := product("p1", 5, "1")

	_, err := m.SetQuantity(ctx, p, 4)
	require.NoError(t, err)

	p.StockCount = 2
	_, err = m.AddToCart(ctx, p)
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientStock)
	assert.Equal(t, 4, m.Lines()[0].Quantity)
}

func TestManager_SetQuantityAndRemove(t *testing.T) {
	ctx := context.Background()
	m := newManager(t, ctx, newMapStore(), "u1")
	a := product("a", 10, "2")
	b := product("b", 10, "3")

	_, err := m.AddToCart(ctx, a)
	require.NoError(t, err)
	_, err = m.AddToCart(ctx, b)
	require.NoError(t, err)

	lines, err := m.SetQuantity(ctx, a, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, []string{lines[0].ProductID, lines[1].ProductID})
	assert.Equal(t, 5, lines[0].Quantity)

	_, err = m.SetQuantity(ctx, a, 11)
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientStock)

	lines, err = m.SetQuantity(ctx, a, 0)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "b", lines[0].ProductID)

	lines, err = m.RemoveFromCart(ctx, "missing")
	require.NoError(t, err)
	assert.Len(t, lines, 1)

	require.NoError(t, m.Clear(ctx))
	assert.Empty(t, m.Lines())
}

func TestManager_ToggleWishlist(t *testing.T) {
	ctx := context.Background()
	m := newManager(t, ctx, newMapStore(), "u1")

	ids, err := m.ToggleWishlist(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, ids)

	ids, err = m.ToggleWishlist(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, ids)
	assert.True(t, m.InWishlist("p2"))

	ids, err = m.ToggleWishlist(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p2"}, ids)

	// Out-of-stock products can still be wishlisted.
	ids, err = m.ToggleWishlist(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p1"}, ids)
}

func TestManager_HydratesFromStore(t *testing.T) {
	ctx := context.Background()
	store := newMapStore()

	first := newManager(t, ctx, store, "u1")
	_, err := first.AddToCart(ctx, product("p1", 4, "9.99"))
	require.NoError(t, err)
	_, err = first.ToggleWishlist(ctx, "p7")
	require.NoError(t, err)

	second := newManager(t, ctx, store, "u1")
	require.Len(t, second.Lines(), 1)
	line := second.Lines()[0]
	assert.Equal(t, "p1", line.ProductID)
	assert.Equal(t, 1, line.Quantity)
	assert.True(t, decimal.RequireFromString("9.99").Equal(line.Price))
	assert.Equal(t, []string{"p7"}, second.Wishlist())

	other := newManager(t, ctx, store, "u2")
	assert.Empty(t, other.Lines())
	assert.Empty(t, other.Wishlist())
}

func TestManager_CorruptStateFallsBackToEmpty(t *testing.T) {
	ctx := context.Background()
	store := newMapStore()
	store.data[CartKey("u1")] = `[{"product_id":"p1","quantity":`
	store.data[WishlistKey("u1")] = `{"not":"a list"}`

	m := newManager(t, ctx, store, "u1")
	assert.Empty(t, m.Lines())
	assert.Empty(t, m.Wishlist())

	lines, err := m.AddToCart(ctx, product("p1", 1, "1"))
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestManager_DropsInvalidPersistedLines(t *testing.T) {
	ctx := context.Background()
	store := newMapStore()
	store.data[CartKey("u1")] = `[{"product_id":"p1","quantity":2},{"product_id":"p1","quantity":1},{"product_id":"p2","quantity":0},{"product_id":"","quantity":1}]`
	store.data[WishlistKey("u1")] = `["a","a","b"]`

	m := newManager(t, ctx, store, "u1")
	require.Len(t, m.Lines(), 1)
	assert.Equal(t, 2, m.Lines()[0].Quantity)
	assert.Equal(t, []string{"a", "b"}, m.Wishlist())
}

func TestManager_FailedWriteLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	store := newMapStore()
	m := newManager(t, ctx, store, "u1")

	_, err := m.AddToCart(ctx, product("p1", 5, "1"))
	require.NoError(t, err)
	_, err = m.ToggleWishlist(ctx, "p1")
	require.NoError(t, err)
	persisted := store.data[CartKey("u1")]

	store.setErr = errors.New("disk full")

	_, err = m.AddToCart(ctx, product("p1", 5, "1"))
	assert.Error(t, err)
	_, err = m.ToggleWishlist(ctx, "p1")
	assert.Error(t, err)
	assert.Error(t, m.Clear(ctx))

	assert.Equal(t, 1, m.Lines()[0].Quantity)
	assert.Equal(t, []string{"p1"}, m.Wishlist())
	assert.Equal(t, persisted, store.data[CartKey("u1")])
}

func TestManager_ReadFailureIsNotEmptyState(t *testing.T) {
	ctx := context.Background()
	store := newMapStore()

	m := newManager(t, ctx, store, "u1")
	_, err := m.AddToCart(ctx, product("vase", 3, "40"))
	require.NoError(t, err)
	_, err = m.AddToCart(ctx, product("mug", 3, "12"))
	require.NoError(t, err)
	persisted := store.data[CartKey("u1")]

	store.getErr = errors.New("connection reset")
	_, err = NewManager(ctx, store, "u1", testLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, store.getErr)

	store.getErr = nil
	assert.Equal(t, persisted, store.data[CartKey("u1")])
	assert.Len(t, newManager(t, ctx, store, "u1").Lines(), 2)
}
