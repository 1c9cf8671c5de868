package postgres

import (
	"context"
	"fmt"

	"artisan/internal/domain/repository"

	"gorm.io/gorm"
)

// gormTransactionManager implements the domain's TransactionManager interface using GORM.
type gormTransactionManager struct {
	db *gorm.DB
}

// gormRepositoryFactory implements the domain's RepositoryFactory interface.
// It holds a specific GORM transaction object (*gorm.Tx) and uses it to create
// repository instances that are bound to that single transaction.
type gormRepositoryFactory struct {
	tx *gorm.DB // In GORM, a transaction object *gorm.Tx is also a *gorm.DB
}

// NewProductRepository creates a product repository bound to the transaction.
// Product reads take a row lock so concurrent toggles of one product serialise.
func (f *gormRepositoryFactory) NewProductRepository() repository.ProductRepository {
	return &productRepository{db: f.tx, lockRows: true}
}

// NewLikeRepository creates a like repository bound to the transaction.
func (f *gormRepositoryFactory) NewLikeRepository() repository.LikeRepository {
	return NewLikeRepository(f.tx)
}

// NewSellerRepository creates a seller repository bound to the transaction.
func (f *gormRepositoryFactory) NewSellerRepository() repository.SellerRepository {
	return NewSellerRepository(f.tx)
}

// NewTransactionManager is the constructor for gormTransactionManager.
func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &gormTransactionManager{db: db}
}

// Execute runs the given function within a single database transaction.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(txCtx context.Context, repoFactory repository.RepositoryFactory) error) error {
	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return storeError(tx.Error, "failed to begin transaction")
	}

	// Roll back on panic, then re-panic so the recover middleware handles it.
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	factory := &gormRepositoryFactory{tx: tx}

	if err := fn(ctx, factory); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			return fmt.Errorf("transaction rollback failed: %v (original error: %w)", rbErr, err)
		}

		return err
	}

	if err := tx.Commit().Error; err != nil {
		return storeError(err, "failed to commit transaction")
	}

	return nil
}
