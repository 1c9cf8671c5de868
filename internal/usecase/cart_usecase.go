package usecase

import (
	"context"

	"artisan/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// CartView is the cart of one owner with its totals.
type CartView struct {
	Lines     []entity.CartLine
	ItemCount int
	Subtotal  decimal.Decimal
}

// CartUsecase defines the cart and wishlist operations of an authenticated owner.
type CartUsecase interface {
	GetCart(ctx context.Context, owner string) (*CartView, error)

	// AddToCart adds one unit of an active product.
	AddToCart(ctx context.Context, owner, productID string) (*CartView, error)

	// SetQuantity sets the line quantity. Zero or less removes the line.
	SetQuantity(ctx context.Context, owner, productID string, quantity int) (*CartView, error)

	RemoveFromCart(ctx context.Context, owner, productID string) (*CartView, error)
	ClearCart(ctx context.Context, owner string) error

	GetWishlist(ctx context.Context, owner string) ([]string, error)

	// ToggleWishlist adds or removes productID and returns the wishlist in insertion order.
	ToggleWishlist(ctx context.Context, owner, productID string) ([]string, error)
}
