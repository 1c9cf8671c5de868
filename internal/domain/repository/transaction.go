package repository

import "context"

// TransactionManager defines the interface for managing store transactions.
// This allows the use case layer to handle transactions without depending on a specific driver like GORM or Firestore.
type TransactionManager interface {
	// Execute runs a function within a transaction.
	// If the function returns an error, the transaction is rolled back. Otherwise, it's committed.
	// A store may run fn more than once when it retries on contention, so fn must not have side effects outside the factory.
	// fn must pass txCtx, not ctx, to the repositories it gets from the factory.
	Execute(ctx context.Context, fn func(txCtx context.Context, txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances that are bound to a specific transaction.
type RepositoryFactory interface {
	// NewProductRepository returns a ProductRepository bound to the current transaction.
	// Reads through it lock the product until the transaction ends.
	NewProductRepository() ProductRepository

	// NewLikeRepository returns a LikeRepository bound to the current transaction.
	NewLikeRepository() LikeRepository

	// NewSellerRepository returns a SellerRepository bound to the current transaction.
	NewSellerRepository() SellerRepository
}
