// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"time"

	"artisan/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// ProductQuery carries the predicates a store can evaluate natively.
// The remaining predicates (search) are applied in memory by the caller.
type ProductQuery struct {
	IsActive *bool           // nil selects both active and inactive products.
	Category entity.Category // Empty or "all" disables the predicate.
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	SellerID string
	Limit    int // Zero means no limit. Otherwise the newest Limit matches are returned.
}

// ProductRepository defines the persistence operations for products.
type ProductRepository interface {
	// CreateProduct persists a new product. The ID is assigned by the store when empty.
	CreateProduct(ctx context.Context, product *entity.Product) error

	// FindProductByID returns the product regardless of its active flag.
	// Returns domainerrors.ErrProductNotFound when no product exists.
	FindProductByID(ctx context.Context, id string) (*entity.Product, error)

	// FindProducts returns the products matching query. Without a Limit the order
	// is unspecified; with one the result is newest first.
	FindProducts(ctx context.Context, query ProductQuery) ([]*entity.Product, error)

	// CountProducts returns the number of products matching query.
	CountProducts(ctx context.Context, query ProductQuery) (int, error)

	// UpdateProduct overwrites the mutable fields of an existing product.
	UpdateProduct(ctx context.Context, product *entity.Product) error

	// SetLikeCount stores the cached like counter of a product.
	SetLikeCount(ctx context.Context, id string, count int) error

	// SoftDeleteProduct marks the product inactive and records the deletion time.
	SoftDeleteProduct(ctx context.Context, id string, at time.Time) error
}
