// Command reconciler receives like.toggled push messages and recounts the
// like records of the product. It must share the API's store backend.
package main

import (
	"context"
	"log/slog"
	"os"

	"artisan/config"
	"artisan/internal/delivery"
	"artisan/internal/delivery/worker"
	"artisan/internal/delivery/worker/handler"
	logs "artisan/internal/infra/log"
	"artisan/internal/infra/persistence"
	"artisan/internal/infra/pubsub"
	"artisan/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectUsecase(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		pubsub.NewEventPublisher,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			persistence.New,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewLikeService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewPushHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start worker server", slog.Any("error", err))
				if shutdownErr := params.Shutdown(fx.ExitCode(1)); shutdownErr != nil {
					os.Exit(1)
				}
			}
		}()
	}
}
