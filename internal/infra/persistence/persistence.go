// Package persistence selects the catalog store backend from configuration.
package persistence

import (
	"context"
	"log/slog"

	"artisan/config"
	"artisan/internal/domain/constants"
	"artisan/internal/domain/repository"
	"artisan/internal/errors"
	"artisan/internal/infra/persistence/firestore"
	"artisan/internal/infra/persistence/memory"
	"artisan/internal/infra/persistence/postgres"

	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// Repositories is the set of repositories of one store backend.
type Repositories struct {
	fx.Out

	Products     repository.ProductRepository
	Sellers      repository.SellerRepository
	Likes        repository.LikeRepository
	Reviews      repository.ReviewRepository
	Transactions repository.TransactionManager
}

// New builds the repositories of the configured store driver.
func New(params Params) (Repositories, error) {
	driver := params.Config.Store.Driver
	params.Logger.Info("Initializing catalog store", slog.String("driver", driver))

	switch driver {
	case constants.StoreDriverMemory:
		store := memory.NewStore()
		if path := params.Config.Store.SeedPath; path != "" {
			if err := store.LoadFixture(path); err != nil {
				return Repositories{}, err
			}
		}

		return Repositories{
			Products:     memory.NewProductRepository(store),
			Sellers:      memory.NewSellerRepository(store),
			Likes:        memory.NewLikeRepository(store),
			Reviews:      memory.NewReviewRepository(store),
			Transactions: memory.NewTransactionManager(store),
		}, nil

	case constants.StoreDriverPostgres:
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return Repositories{}, err
		}

		return Repositories{
			Products:     postgres.NewProductRepository(db),
			Sellers:      postgres.NewSellerRepository(db),
			Likes:        postgres.NewLikeRepository(db),
			Reviews:      postgres.NewReviewRepository(db),
			Transactions: postgres.NewTransactionManager(db),
		}, nil

	case constants.StoreDriverFirestore:
		client, err := firestore.New(params.Ctx, firestore.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return Repositories{}, err
		}

		return Repositories{
			Products:     firestore.NewProductRepository(client),
			Sellers:      firestore.NewSellerRepository(client),
			Likes:        firestore.NewLikeRepository(client),
			Reviews:      firestore.NewReviewRepository(client),
			Transactions: firestore.NewTransactionManager(client),
		}, nil

	default:
		return Repositories{}, errors.Errorf("unknown store driver: %s", driver)
	}
}
