// Package cart keeps one owner's cart and wishlist, persisted write-through to a
// KeyValueStore. The persisted blobs are the source of truth on load; a missing
// or corrupt blob starts the collection empty, a failed read is an error.
package cart

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"artisan/internal/domain/entity"
	domainerrors "artisan/internal/domain/errors"
	"artisan/internal/domain/repository"
	"artisan/internal/errors"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CartKey is the store key of an owner's cart.
func CartKey(owner string) string {
	return "cart:" + owner
}

// WishlistKey is the store key of an owner's wishlist.
func WishlistKey(owner string) string {
	return "wishlist:" + owner
}

// Manager is the in-memory view of one owner's cart and wishlist.
// Mutations persist the new state first and only then replace the view, so a
// failed write leaves both the store and the view unchanged.
type Manager struct {
	store  repository.KeyValueStore
	owner  string
	logger *slog.Logger

	mu       sync.Mutex
	lines    []entity.CartLine
	wishlist []string
}

// NewManager hydrates the manager for owner from store. A store read failure is
// returned rather than treated as empty, so later writes cannot overwrite state
// that was never loaded.
func NewManager(ctx context.Context, store repository.KeyValueStore, owner string, logger *slog.Logger) (*Manager, error) {
	m := &Manager{
		store:  store,
		owner:  owner,
		logger: logger.With(slog.String("owner", owner)),
	}

	lines, err := loadBlob[[]entity.CartLine](ctx, m, CartKey(owner))
	if err != nil {
		return nil, err
	}
	wishlist, err := loadBlob[[]string](ctx, m, WishlistKey(owner))
	if err != nil {
		return nil, err
	}
	m.lines = sanitizeLines(lines)
	m.wishlist = dedupe(wishlist)

	return m, nil
}

// Lines returns a copy of the cart lines in insertion order.
func (m *Manager) Lines() []entity.CartLine {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.lines)
}

// Wishlist returns a copy of the wishlisted product ids in insertion order.
func (m *Manager) Wishlist() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.wishlist)
}

// ItemCount returns the total quantity over all lines.
func (m *Manager) ItemCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, line := range m.lines {
		count += line.Quantity
	}

	return count
}

// Subtotal returns the sum of the line totals.
func (m *Manager) Subtotal() decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := decimal.Zero
	for _, line := range m.lines {
		total = total.Add(line.LineTotal())
	}

	return total
}

// AddToCart adds one unit of product. An existing line is incremented unless the
// new quantity would exceed the product's stock; a new line needs stock > 0.
// On ErrInsufficientStock the cart is unchanged.
func (m *Manager) AddToCart(ctx context.Context, product *entity.Product) ([]entity.CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := slices.Clone(m.lines)
	idx := m.indexOf(product.ID)

	if idx >= 0 {
		quantity := next[idx].Quantity + 1
		if quantity > product.StockCount {
			return nil, domainerrors.ErrInsufficientStock.WithDetails(product.ID)
		}
		line := entity.NewCartLine(product)
		line.Quantity = quantity
		next[idx] = line
	} else {
		if !product.InStock() {
			return nil, domainerrors.ErrInsufficientStock.WithDetails(product.ID)
		}
		next = append(next, entity.NewCartLine(product))
	}

	if err := m.commitLines(ctx, next); err != nil {
		return nil, err
	}

	return slices.Clone(m.lines), nil
}

// SetQuantity sets the quantity of the product's line, adding the line when
// absent. A quantity of zero or less removes the line.
func (m *Manager) SetQuantity(ctx context.Context, product *entity.Product, quantity int) ([]entity.CartLine, error) {
	if quantity <= 0 {
		return m.RemoveFromCart(ctx, product.ID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if quantity > product.StockCount {
		return nil, domainerrors.ErrInsufficientStock.WithDetails(product.ID)
	}

	next := slices.Clone(m.lines)
	line := entity.NewCartLine(product)
	line.Quantity = quantity

	if idx := m.indexOf(product.ID); idx >= 0 {
		next[idx] = line
	} else {
		next = append(next, line)
	}

	if err := m.commitLines(ctx, next); err != nil {
		return nil, err
	}

	return slices.Clone(m.lines), nil
}

// RemoveFromCart deletes the line of productID. Removing an absent line is a no-op.
func (m *Manager) RemoveFromCart(ctx context.Context, productID string) ([]entity.CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(productID)
	if idx < 0 {
		return slices.Clone(m.lines), nil
	}

	next := slices.Delete(slices.Clone(m.lines), idx, idx+1)
	if err := m.commitLines(ctx, next); err != nil {
		return nil, err
	}

	return slices.Clone(m.lines), nil
}

// Clear empties the cart and removes its persisted blob.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Remove(ctx, CartKey(m.owner)); err != nil {
		return errors.Wrap(err, "failed to clear cart")
	}
	m.lines = nil

	return nil
}

// ToggleWishlist adds productID when absent and removes it when present.
// No stock or eligibility checks apply.
func (m *Manager) ToggleWishlist(ctx context.Context, productID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var next []string
	if idx := slices.Index(m.wishlist, productID); idx >= 0 {
		next = slices.Delete(slices.Clone(m.wishlist), idx, idx+1)
	} else {
		next = append(slices.Clone(m.wishlist), productID)
	}

	if err := m.persist(ctx, WishlistKey(m.owner), next); err != nil {
		return nil, err
	}
	m.wishlist = next

	return slices.Clone(m.wishlist), nil
}

// InWishlist reports whether productID is wishlisted.
func (m *Manager) InWishlist(productID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Contains(m.wishlist, productID)
}

func (m *Manager) indexOf(productID string) int {
	return slices.IndexFunc(m.lines, func(l entity.CartLine) bool {
		return l.ProductID == productID
	})
}

func (m *Manager) commitLines(ctx context.Context, next []entity.CartLine) error {
	if err := m.persist(ctx, CartKey(m.owner), next); err != nil {
		return err
	}
	m.lines = next

	return nil
}

func (m *Manager) persist(ctx context.Context, key string, value any) error {
	blob, err := json.MarshalToString(value)
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s", key)
	}
	if err := m.store.Set(ctx, key, blob); err != nil {
		return errors.Wrapf(err, "failed to persist %s", key)
	}

	return nil
}

func loadBlob[T any](ctx context.Context, m *Manager, key string) (T, error) {
	var zero T

	blob, ok, err := m.store.Get(ctx, key)
	if err != nil {
		return zero, errors.Wrapf(err, "failed to read %s", key)
	}
	if !ok || blob == "" {
		return zero, nil
	}

	var value T
	if err := json.UnmarshalFromString(blob, &value); err != nil {
		m.logger.WarnContext(ctx, "Discarding corrupt persisted state",
			slog.String("key", key), slog.Any("error", err))

		return zero, nil
	}

	return value, nil
}

// sanitizeLines drops lines that could not have been produced by the manager.
func sanitizeLines(lines []entity.CartLine) []entity.CartLine {
	seen := make(map[string]struct{}, len(lines))
	out := lines[:0]
	for _, line := range lines {
		if line.ProductID == "" || line.Quantity < 1 {
			continue
		}
		if _, dup := seen[line.ProductID]; dup {
			continue
		}
		seen[line.ProductID] = struct{}{}
		out = append(out, line)
	}

	return out
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, dup := seen[id]; dup || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}
