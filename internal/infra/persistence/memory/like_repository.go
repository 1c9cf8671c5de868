package memory

import (
	"context"

	"artisan/internal/domain/entity"
	domainerrors "artisan/internal/domain/errors"
	"artisan/internal/domain/repository"
)

type likeRepository struct {
	store *Store
	undo  *undoLog
}

// NewLikeRepository returns a LikeRepository backed by store.
func NewLikeRepository(store *Store) repository.LikeRepository {
	return &likeRepository{store: store}
}

func (repo *likeRepository) ExistsLike(ctx context.Context, userID, productID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	_, ok := repo.store.likes[entity.LikeKey(userID, productID)]

	return ok, nil
}

func (repo *likeRepository) CreateLike(ctx context.Context, like *entity.Like) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	key := entity.LikeKey(like.UserID, like.ProductID)
	if _, ok := repo.store.likes[key]; ok {
		return domainerrors.ErrDuplicateLike
	}
	repo.undo.recordLike(key, nil)
	if like.CreatedAt.IsZero() {
		like.CreatedAt = repo.store.now()
	}
	cp := *like
	repo.store.likes[key] = &cp

	return nil
}

func (repo *likeRepository) DeleteLike(ctx context.Context, userID, productID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	key := entity.LikeKey(userID, productID)
	if prev, ok := repo.store.likes[key]; ok {
		repo.undo.recordLike(key, prev)
		delete(repo.store.likes, key)
	}

	return nil
}

func (repo *likeRepository) CountLikesByProduct(ctx context.Context, productID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	count := 0
	for _, like := range repo.store.likes {
		if like.ProductID == productID {
			count++
		}
	}

	return count, nil
}
