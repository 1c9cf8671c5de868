package impl

import (
	"context"
	"log/slog"
	"time"

	"artisan/config"
	deliverycontext "artisan/internal/delivery/context"
	"artisan/internal/domain/entity"
	domainerrors "artisan/internal/domain/errors"
	"artisan/internal/domain/repository"
	"artisan/internal/domain/service"
	"artisan/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// likeService implements the LikeUsecase interface.
type likeService struct {
	txManager    repository.TransactionManager
	products     repository.ProductRepository
	likes        repository.LikeRepository
	publisher    service.EventPublisher
	storeTimeout time.Duration
	logger       *slog.Logger
	now          func() time.Time
}

// LikeServiceParams holds dependencies for LikeService, injected by Fx.
type LikeServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Products  repository.ProductRepository
	Likes     repository.LikeRepository
	Publisher service.EventPublisher
	Config    *config.Config
	Logger    *slog.Logger
}

// NewLikeService is the constructor for likeService.
func NewLikeService(params LikeServiceParams) usecase.LikeUsecase {
	return &likeService{
		txManager:    params.TxManager,
		products:     params.Products,
		likes:        params.Likes,
		publisher:    params.Publisher,
		storeTimeout: storeTimeoutOf(params.Config),
		logger:       params.Logger,
		now:          time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *likeService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ToggleLike creates or deletes the like record and moves the cached count by
// one in the same transaction. A concurrent toggle of the same pair that wins
// the race surfaces as StaleWriteConflict.
func (srv *likeService) ToggleLike(ctx context.Context, userID, productID string) (*usecase.LikeResult, error) {
	if userID == "" {
		return nil, domainerrors.ErrUnauthorized
	}
	if productID == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("product id is required")
	}

	tctx, cancel := context.WithTimeout(ctx, srv.storeTimeout)
	defer cancel()

	var result usecase.LikeResult
	err := srv.txManager.Execute(tctx, func(txCtx context.Context, repoFactory repository.RepositoryFactory) error {
		products := repoFactory.NewProductRepository()
		likes := repoFactory.NewLikeRepository()

		product, err := products.FindProductByID(txCtx, productID)
		if err != nil {
			return err
		}

		liked, err := likes.ExistsLike(txCtx, userID, productID)
		if err != nil {
			return err
		}

		if liked {
			if err := likes.DeleteLike(txCtx, userID, productID); err != nil {
				return err
			}
			result = usecase.LikeResult{Liked: false, LikeCount: max(product.LikeCount-1, 0)}
		} else {
			like := &entity.Like{UserID: userID, ProductID: productID, CreatedAt: srv.now()}
			if err := likes.CreateLike(txCtx, like); err != nil {
				return err
			}
			result = usecase.LikeResult{Liked: true, LikeCount: product.LikeCount + 1}
		}

		return products.SetLikeCount(txCtx, productID, result.LikeCount)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrDuplicateLike) {
			srv.log(ctx).Warn("Concurrent like toggle detected", slog.String("user_id", userID), slog.String("product_id", productID))

			return nil, domainerrors.ErrStaleWriteConflict.WithDetails(productID)
		}
		if !errors.Is(err, domainerrors.ErrProductNotFound) {
			srv.log(ctx).Error("Failed to toggle like", slog.String("product_id", productID), slog.Any("error", err))
		}

		return nil, storeError(err, "failed to toggle like")
	}

	srv.publishToggled(ctx, userID, productID, result)

	return &result, nil
}

// publishToggled emits the reconciliation event. Failures are logged only.
func (srv *likeService) publishToggled(ctx context.Context, userID, productID string, result usecase.LikeResult) {
	event := &service.LikeToggledEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		UserID:    userID,
		ProductID: productID,
		Liked:     result.Liked,
		LikeCount: result.LikeCount,
		ToggledAt: srv.now(),
	}

	if err := srv.publisher.PublishLikeToggled(context.WithoutCancel(ctx), event); err != nil {
		srv.log(ctx).Warn("Failed to publish like toggled event", slog.String("product_id", productID), slog.Any("error", err))
	}
}

// HasLiked reports whether userID liked productID.
func (srv *likeService) HasLiked(ctx context.Context, userID, productID string) (bool, error) {
	if userID == "" {
		return false, nil
	}

	tctx, cancel := context.WithTimeout(ctx, srv.storeTimeout)
	defer cancel()

	liked, err := srv.likes.ExistsLike(tctx, userID, productID)
	if err != nil {
		return false, storeError(err, "failed to check like")
	}

	return liked, nil
}

// ReconcileLikeCount rewrites the cached count from the like records.
func (srv *likeService) ReconcileLikeCount(ctx context.Context, productID string) (int, error) {
	tctx, cancel := context.WithTimeout(ctx, srv.storeTimeout)
	defer cancel()

	var count int
	var previous int
	err := srv.txManager.Execute(tctx, func(txCtx context.Context, repoFactory repository.RepositoryFactory) error {
		products := repoFactory.NewProductRepository()

		product, err := products.FindProductByID(txCtx, productID)
		if err != nil {
			return err
		}
		previous = product.LikeCount

		count, err = repoFactory.NewLikeRepository().CountLikesByProduct(txCtx, productID)
		if err != nil {
			return err
		}
		if count == product.LikeCount {
			return nil
		}

		return products.SetLikeCount(txCtx, productID, count)
	})
	if err != nil {
		return 0, storeError(err, "failed to reconcile like count")
	}

	if previous != count {
		srv.log(ctx).Info("Like count reconciled",
			slog.String("product_id", productID),
			slog.Int("cached", previous),
			slog.Int("actual", count))
	}

	return count, nil
}
