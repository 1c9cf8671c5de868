package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents one listing in the catalog.
type Product struct {
	ID            string           `json:"id"`
	SellerID      string           `json:"seller_id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"` // Set when the listing is discounted.
	Category      Category         `json:"category"`
	Tags          []string         `json:"tags"`
	Materials     []string         `json:"materials"`
	Dimensions    string           `json:"dimensions"`
	StockCount    int              `json:"stock_count"`
	Images        []string         `json:"images"`
	IsActive      bool             `json:"is_active"`  // False once the seller deleted the listing.
	LikeCount     int              `json:"like_count"` // Cached count of Like records, reconcilable.
	Rating        float64          `json:"rating"`
	ReviewCount   int              `json:"review_count"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     *time.Time       `json:"deleted_at,omitempty"`
}

// InStock reports whether at least one unit is available.
func (p *Product) InStock() bool {
	return p.StockCount > 0
}

// DiscountRatio returns (originalPrice - price) / originalPrice, or zero when the
// product carries no usable original price.
func (p *Product) DiscountRatio() decimal.Decimal {
	if p.OriginalPrice == nil || !p.OriginalPrice.IsPositive() || p.OriginalPrice.LessThanOrEqual(p.Price) {
		return decimal.Zero
	}

	return p.OriginalPrice.Sub(p.Price).Div(*p.OriginalPrice)
}

// OwnedBy reports whether sellerID owns the product.
func (p *Product) OwnedBy(sellerID string) bool {
	return sellerID != "" && p.SellerID == sellerID
}
