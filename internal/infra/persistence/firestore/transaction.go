package firestore

import (
	"context"

	"artisan/internal/domain/repository"

	"cloud.google.com/go/firestore"
)

type transactionManager struct {
	client *firestore.Client
}

// repositoryFactory binds repositories to one Firestore transaction. Firestore
// requires every read of a transaction to happen before its first write.
type repositoryFactory struct {
	docs
}

func (f *repositoryFactory) NewProductRepository() repository.ProductRepository {
	return &productRepository{docs: f.docs}
}

func (f *repositoryFactory) NewLikeRepository() repository.LikeRepository {
	return &likeRepository{docs: f.docs}
}

func (f *repositoryFactory) NewSellerRepository() repository.SellerRepository {
	return &sellerRepository{docs: f.docs}
}

// NewTransactionManager returns a TransactionManager using RunTransaction.
// Contended transactions are retried by the client, so fn may run more than once.
func NewTransactionManager(client *firestore.Client) repository.TransactionManager {
	return &transactionManager{client: client}
}

// fn receives the context RunTransaction supplies for the attempt.
func (tm *transactionManager) Execute(ctx context.Context, fn func(txCtx context.Context, repoFactory repository.RepositoryFactory) error) error {
	err := tm.client.RunTransaction(ctx, func(txCtx context.Context, tx *firestore.Transaction) error {
		return fn(txCtx, &repositoryFactory{docs: docs{client: tm.client, tx: tx}})
	})

	return storeError(err, "transaction failed")
}
