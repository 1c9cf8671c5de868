package usecase

import (
	"context"

	"artisan/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// ProductItem is a catalog product enriched with its seller summary.
// Seller is nil when the seller profile is unknown.
type ProductItem struct {
	Product *entity.Product
	Seller  *entity.SellerSummary
}

// ProductPage is one page of a catalog listing.
type ProductPage struct {
	Items      []*ProductItem
	Page       int
	PageSize   int
	Total      int // Size of the fully filtered result set.
	TotalPages int
}

// ProductDetail is the single product view.
type ProductDetail struct {
	Product       *entity.Product
	Seller        *entity.SellerSummary
	Reviews       []*entity.Review
	AverageRating float64
	ReviewCount   int
	Related       []*ProductItem
	Liked         bool // Whether the viewer liked the product; false for anonymous viewers.
}

// CategoryFacet is the number of active products in one category.
type CategoryFacet struct {
	Category entity.Category
	Count    int
}

// SellerProductStatus filters a seller's own listing.
type SellerProductStatus string

const (
	SellerProductsAll      SellerProductStatus = "all"
	SellerProductsActive   SellerProductStatus = "active"
	SellerProductsInactive SellerProductStatus = "inactive"
)

// IsValid reports whether s is a known status filter.
func (s SellerProductStatus) IsValid() bool {
	switch s {
	case SellerProductsAll, SellerProductsActive, SellerProductsInactive:
		return true
	default:
		return false
	}
}

// CreateProductInput holds the fields of a new listing.
type CreateProductInput struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	OriginalPrice *decimal.Decimal
	Category      entity.Category
	Tags          []string
	Materials     []string
	Dimensions    string
	StockCount    int
	Images        []string
}

// UpdateProductInput holds a partial update. Nil fields are left unchanged.
type UpdateProductInput struct {
	Name          *string
	Description   *string
	Price         *decimal.Decimal
	OriginalPrice *decimal.Decimal
	ClearDiscount bool // Removes the original price; wins over OriginalPrice.
	Category      *entity.Category
	Tags          []string
	Materials     []string
	Dimensions    *string
	StockCount    *int
	Images        []string
	IsActive      *bool
}

// ProductUsecase defines the catalog read and seller listing operations.
type ProductUsecase interface {
	// QueryProducts returns one page of active products matching filter.
	QueryProducts(ctx context.Context, filter entity.ProductFilter) (*ProductPage, error)

	// SearchProducts is QueryProducts with a required search term.
	SearchProducts(ctx context.Context, filter entity.ProductFilter) (*ProductPage, error)

	// GetProduct returns a product, active or not, with its seller, reviews and related products.
	// viewerID may be empty.
	GetProduct(ctx context.Context, productID, viewerID string) (*ProductDetail, error)

	// ListSellerProducts lists a seller's products, newest first.
	ListSellerProducts(ctx context.Context, sellerID string, status SellerProductStatus, page, pageSize int) (*ProductPage, error)

	// CategoryFacets counts the active products per category.
	CategoryFacets(ctx context.Context) ([]CategoryFacet, error)

	CreateProduct(ctx context.Context, sellerID string, input *CreateProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, sellerID, productID string, input *UpdateProductInput) (*entity.Product, error)

	// DeleteProduct soft-deletes the product and removes its images on a best-effort basis.
	DeleteProduct(ctx context.Context, sellerID, productID string) error
}
