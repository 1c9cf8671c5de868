package catalog

import (
	domainerrors "artisan/internal/domain/errors"
)

var (
	// ErrInvalidPage is returned when page is lower than 1.
	ErrInvalidPage = domainerrors.ErrValidationFailed.WithDetails("page must be a positive integer")
	// ErrInvalidPageSize is returned when pageSize is lower than 1.
	ErrInvalidPageSize = domainerrors.ErrValidationFailed.WithDetails("page size must be a positive integer")
)

// Page is one slice of an ordered result set plus the metadata of the whole set.
type Page[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

// Paginate slices items[(page-1)*pageSize : page*pageSize]. A page past the end
// yields no items but still reports Total and TotalPages.
func Paginate[T any](items []T, page, pageSize int) (Page[T], error) {
	if pageSize < 1 {
		return Page[T]{}, ErrInvalidPageSize
	}
	if page < 1 {
		return Page[T]{}, ErrInvalidPage
	}

	total := len(items)
	result := Page[T]{
		Items:      []T{},
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: TotalPages(total, pageSize),
	}

	// Guard the multiplication against overflow for absurd page numbers.
	if page-1 > total/pageSize {
		return result, nil
	}

	start := (page - 1) * pageSize
	if start >= total {
		return result, nil
	}
	end := min(start+pageSize, total)
	result.Items = items[start:end]

	return result, nil
}

// TotalPages returns ceil(total/pageSize), zero for an empty set.
func TotalPages(total, pageSize int) int {
	if pageSize < 1 || total <= 0 {
		return 0
	}

	return (total + pageSize - 1) / pageSize
}
