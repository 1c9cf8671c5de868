// Package catalog holds the pure catalog logic: the filter predicate, the sort
// orders and the pagination arithmetic shared by every listing endpoint.
package catalog

import (
	"strings"

	"artisan/internal/domain/entity"
)

// Matches reports whether product satisfies every active predicate of filter.
// seller is optional; when nil the seller name is not searched.
func Matches(product *entity.Product, seller *entity.Seller, filter entity.ProductFilter) bool {
	if product == nil {
		return false
	}

	return matchesCategory(product, filter) &&
		matchesPrice(product, filter) &&
		matchesSearch(product, seller, filter.SearchTerm)
}

func matchesCategory(product *entity.Product, filter entity.ProductFilter) bool {
	if filter.Category.IsAll() {
		return true
	}

	return product.Category == filter.Category
}

func matchesPrice(product *entity.Product, filter entity.ProductFilter) bool {
	if filter.MinPrice != nil && product.Price.LessThan(*filter.MinPrice) {
		return false
	}
	if filter.MaxPrice != nil && product.Price.GreaterThan(*filter.MaxPrice) {
		return false
	}

	return true
}

func matchesSearch(product *entity.Product, seller *entity.Seller, term string) bool {
	needle := NormalizeSearchTerm(term)
	if needle == "" {
		return true
	}

	if containsFold(product.Name, needle) ||
		containsFold(product.Description, needle) ||
		containsFold(product.Category.String(), needle) {
		return true
	}

	for _, tag := range product.Tags {
		if containsFold(tag, needle) {
			return true
		}
	}

	return seller != nil && containsFold(seller.Name, needle)
}

// NormalizeSearchTerm trims and lowercases a raw search term.
func NormalizeSearchTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// containsFold expects needle to be lowercased already.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}
