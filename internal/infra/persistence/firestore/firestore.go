// Package firestore implements the catalog repositories on Cloud Firestore.
// Collections: products, sellers, likes (document id = LikeKey), reviews.
package firestore

import (
	"context"
	"log/slog"

	"artisan/config"
	"artisan/internal/domain/lifecycle"
	"artisan/internal/errors"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"go.uber.org/fx"
	"google.golang.org/api/option"
)

const (
	collectionProducts = "products"
	collectionSellers  = "sellers"
	collectionLikes    = "likes"
	collectionReviews  = "reviews"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates the Firestore client through the Firebase app.
func New(ctx context.Context, params Params) (*firestore.Client, error) {
	cfg := params.Config.Firestore
	if cfg == nil {
		return nil, errors.New("firestore configuration is required for the firestore store")
	}

	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	var appConfig *firebase.Config
	if cfg.ProjectID != "" {
		appConfig = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, appConfig, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Firestore client")
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			// A cheap read proves credentials and connectivity.
			_, err := client.Collection(collectionProducts).Limit(1).Documents(ctx).GetAll()
			if err != nil {
				return errors.Wrap(err, "failed to reach Firestore")
			}
			params.Logger.Info("Firestore store ready", slog.String("project_id", cfg.ProjectID))

			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return client, nil
}

// docs performs document operations either directly or inside a transaction.
type docs struct {
	client *firestore.Client
	tx     *firestore.Transaction
}

func (d docs) get(ctx context.Context, ref *firestore.DocumentRef) (*firestore.DocumentSnapshot, error) {
	if d.tx != nil {
		return d.tx.Get(ref)
	}

	return ref.Get(ctx)
}

func (d docs) getAll(ctx context.Context, refs []*firestore.DocumentRef) ([]*firestore.DocumentSnapshot, error) {
	if d.tx != nil {
		return d.tx.GetAll(refs)
	}

	return d.client.GetAll(ctx, refs)
}

func (d docs) query(ctx context.Context, q firestore.Query) ([]*firestore.DocumentSnapshot, error) {
	if d.tx != nil {
		return d.tx.Documents(q).GetAll()
	}

	return q.Documents(ctx).GetAll()
}

func (d docs) create(ctx context.Context, ref *firestore.DocumentRef, data any) error {
	if d.tx != nil {
		return d.tx.Create(ref, data)
	}
	_, err := ref.Create(ctx, data)

	return err
}

func (d docs) update(ctx context.Context, ref *firestore.DocumentRef, updates []firestore.Update) error {
	if d.tx != nil {
		return d.tx.Update(ref, updates)
	}
	_, err := ref.Update(ctx, updates)

	return err
}

func (d docs) delete(ctx context.Context, ref *firestore.DocumentRef) error {
	if d.tx != nil {
		return d.tx.Delete(ref)
	}
	_, err := ref.Delete(ctx)

	return err
}
