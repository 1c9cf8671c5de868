package catalog

import (
	"cmp"
	"slices"
	"strings"

	"artisan/internal/domain/entity"
	domainerrors "artisan/internal/domain/errors"
)

// ErrInvalidSortKey is returned for an unknown sort key.
var ErrInvalidSortKey = domainerrors.ErrValidationFailed.WithDetails("unknown sort key")

// DefaultSortKey is used when the caller does not pick an order.
const DefaultSortKey = entity.SortNewest

// SortProducts returns a new slice ordered by key. Equal primary values are
// ordered by ascending ID so repeated queries paginate identically.
func SortProducts(products []*entity.Product, key entity.SortKey) ([]*entity.Product, error) {
	compare, ok := comparators[key]
	if !ok {
		return nil, ErrInvalidSortKey
	}

	sorted := slices.Clone(products)
	slices.SortStableFunc(sorted, func(a, b *entity.Product) int {
		if c := compare(a, b); c != 0 {
			return c
		}

		return strings.Compare(a.ID, b.ID)
	})

	return sorted, nil
}

type comparator func(a, b *entity.Product) int

var comparators = map[entity.SortKey]comparator{
	entity.SortNewest: func(a, b *entity.Product) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	},
	entity.SortPriceAsc: func(a, b *entity.Product) int {
		return a.Price.Cmp(b.Price)
	},
	entity.SortPriceDesc: func(a, b *entity.Product) int {
		return b.Price.Cmp(a.Price)
	},
	entity.SortRatingDesc: func(a, b *entity.Product) int {
		return cmp.Compare(b.Rating, a.Rating)
	},
	entity.SortPopularityDesc: func(a, b *entity.Product) int {
		return cmp.Compare(b.LikeCount, a.LikeCount)
	},
	entity.SortDiscountDesc: func(a, b *entity.Product) int {
		return b.DiscountRatio().Cmp(a.DiscountRatio())
	},
}

// ParseSortKey resolves the transport sort parameters. sortBy may be one of the
// sort key names, or a field name (createdAt, price, rating, likeCount,
// popularity, discount) combined with sortOrder asc or desc.
func ParseSortKey(sortBy, sortOrder string) (entity.SortKey, error) {
	sortBy = strings.TrimSpace(sortBy)
	if sortBy == "" {
		return DefaultSortKey, nil
	}

	if key := entity.SortKey(sortBy); key.IsValid() {
		return key, nil
	}

	desc := true
	switch strings.ToLower(strings.TrimSpace(sortOrder)) {
	case "", "desc":
	case "asc":
		desc = false
	default:
		return "", domainerrors.ErrValidationFailed.WithDetails("sortOrder must be asc or desc")
	}

	switch strings.ToLower(sortBy) {
	case "createdat", "newest":
		if desc {
			return entity.SortNewest, nil
		}
	case "price":
		if desc {
			return entity.SortPriceDesc, nil
		}

		return entity.SortPriceAsc, nil
	case "rating":
		if desc {
			return entity.SortRatingDesc, nil
		}
	case "likecount", "popularity", "popular":
		if desc {
			return entity.SortPopularityDesc, nil
		}
	case "discount":
		if desc {
			return entity.SortDiscountDesc, nil
		}
	}

	return "", ErrInvalidSortKey
}
