package postgres

import (
	"context"

	domainerrors "artisan/internal/domain/errors"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const pqUniqueViolation = "23505"

func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}

	return false
}

// storeError converts driver failures into the retryable store error. Domain
// errors pass through untouched.
func storeError(err error, details string) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return errors.Wrap(err, details)
	}

	return domainerrors.NewStoreUnavailableError(err, details)
}
