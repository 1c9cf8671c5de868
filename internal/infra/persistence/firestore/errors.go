package firestore

import (
	"context"

	domainerrors "artisan/internal/domain/errors"
	"artisan/internal/errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// storeError maps Firestore status codes onto domain errors. Anything not
// recognised is reported as a retryable store failure.
func storeError(err error, details string) error {
	if err == nil {
		return nil
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return errors.Wrap(err, details)
	}

	switch status.Code(err) {
	case codes.AlreadyExists:
		return domainerrors.ErrDuplicateLike
	case codes.Aborted:
		return domainerrors.ErrStaleWriteConflict.WithDetails(details)
	case codes.InvalidArgument, codes.FailedPrecondition:
		// Usually a missing composite index; surfaced so it shows up in logs.
		return errors.Wrap(err, details)
	}

	return domainerrors.NewStoreUnavailableError(err, details)
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}
