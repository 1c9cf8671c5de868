// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"time"

	"artisan/config"
	domainerrors "artisan/internal/domain/errors"

	"github.com/pkg/errors"
)

const fallbackStoreTimeout = 5 * time.Second

func storeTimeoutOf(cfg *config.Config) time.Duration {
	if cfg == nil || cfg.Store == nil || cfg.Store.Timeout <= 0 {
		return fallbackStoreTimeout
	}

	return cfg.Store.Timeout
}

// storeError maps a failed store call to the error returned to callers.
// Domain errors pass through, caller cancellation is wrapped and anything
// else, deadline expiry included, becomes the retryable StoreUnavailable.
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
