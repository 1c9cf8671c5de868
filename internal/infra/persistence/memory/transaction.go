package memory

import (
	"context"

	"artisan/internal/domain/repository"
)

type transactionManager struct {
	store *Store
}

type repositoryFactory struct {
	store *Store
	undo  *undoLog
}

func (f *repositoryFactory) NewProductRepository() repository.ProductRepository {
	return &productRepository{store: f.store, undo: f.undo}
}

func (f *repositoryFactory) NewLikeRepository() repository.LikeRepository {
	return &likeRepository{store: f.store, undo: f.undo}
}

func (f *repositoryFactory) NewSellerRepository() repository.SellerRepository {
	return NewSellerRepository(f.store)
}

// NewTransactionManager returns a TransactionManager that runs one transaction
// at a time and, when fn fails, restores the products and likes it wrote.
// Writes made outside the transaction are left alone.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return &transactionManager{store: store}
}

// Execute runs fn while holding the store's transaction lock.
func (tm *transactionManager) Execute(ctx context.Context, fn func(txCtx context.Context, repoFactory repository.RepositoryFactory) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tm.store.txMu.Lock()
	defer tm.store.txMu.Unlock()

	undo := newUndoLog()

	defer func() {
		if r := recover(); r != nil {
			tm.store.rollback(undo)
			panic(r)
		}
	}()

	if err := fn(ctx, &repositoryFactory{store: tm.store, undo: undo}); err != nil {
		tm.store.rollback(undo)

		return err
	}

	return nil
}
