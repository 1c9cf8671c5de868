package impl

import (
	"fmt"
	"strings"

	"artisan/internal/domain/entity"
	domainerrors "artisan/internal/domain/errors"

	"github.com/shopspring/decimal"
)

func validateProductFields(name string, price decimal.Decimal, originalPrice *decimal.Decimal, category entity.Category, stock int) error {
	switch {
	case strings.TrimSpace(name) == "":
		return domainerrors.ErrValidationFailed.WithDetails("name is required")
	case !price.IsPositive():
		return domainerrors.ErrValidationFailed.WithDetails("price must be positive")
	case originalPrice != nil && originalPrice.LessThan(price):
		return domainerrors.ErrValidationFailed.WithDetails("original price must not be lower than price")
	case !category.IsValid():
		return domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("unknown category %q", category))
	case stock < 0:
		return domainerrors.ErrValidationFailed.WithDetails("stock count must not be negative")
	}

	return nil
}
