package entity

import "github.com/shopspring/decimal"

// SortKey selects the ordering of catalog results.
type SortKey string

const (
	SortNewest         SortKey = "newest"
	SortPriceAsc       SortKey = "price-asc"
	SortPriceDesc      SortKey = "price-desc"
	SortRatingDesc     SortKey = "rating-desc"
	SortPopularityDesc SortKey = "popularity-desc"
	SortDiscountDesc   SortKey = "discount-desc"
)

// IsValid reports whether k is a known sort key.
func (k SortKey) IsValid() bool {
	switch k {
	case SortNewest, SortPriceAsc, SortPriceDesc, SortRatingDesc, SortPopularityDesc, SortDiscountDesc:
		return true
	default:
		return false
	}
}

// ProductFilter is the parsed and validated catalog query.
type ProductFilter struct {
	Category   Category
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	SearchTerm string
	SortKey    SortKey
	Page       int
	PageSize   int
}

// HasEmptyPriceRange reports whether the bounds exclude every price (min > max).
func (f ProductFilter) HasEmptyPriceRange() bool {
	return f.MinPrice != nil && f.MaxPrice != nil && f.MinPrice.GreaterThan(*f.MaxPrice)
}
