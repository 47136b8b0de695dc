package main

import (
	"context"
	"log/slog"
	"time"

	"journal/config"
	"journal/internal/infra/auth"
	"journal/internal/infra/clock"
	"journal/internal/infra/export"
	logs "journal/internal/infra/log"
	"journal/internal/infra/persistence/sqlite"
	"journal/internal/infra/preference"
	"journal/internal/usecase"
	"journal/internal/usecase/impl"
	"journal/internal/validation"

	"go.uber.org/fx"
)

const lifecycleTimeout = 15 * time.Second

// services is everything a command may call, resolved from the fx graph.
type services struct {
	fx.In

	Config    *config.Config
	Logger    *slog.Logger
	Entries   usecase.EntryUsecase
	Analytics usecase.AnalyticsUsecase
	Catalog   usecase.CatalogUsecase
	Sessions  usecase.SessionUsecase
	Exports   usecase.ExportUsecase
}

func injectInfra(opts *globalOptions) fx.Option {
	return fx.Options(
		fx.Provide(
			config.NewOrDefault,
			logs.New,
			sqlite.New,
		),
		fx.Decorate(opts.apply),
	)
}

func injectRepo() fx.Option {
	return fx.Provide(
		sqlite.NewTransactionManager,
		sqlite.NewEntryRepository,
		sqlite.NewMoodRepository,
		sqlite.NewTagRepository,
		sqlite.NewUserRepository,
	)
}

func injectService() fx.Option {
	return fx.Provide(
		auth.NewBcryptHasher,
		clock.NewSystemClock,
		preference.NewDiskvStore,
		export.NewMarkdownExporter,
		export.NewBlobStorage,
		validation.New,
	)
}

func injectUsecase() fx.Option {
	return fx.Provide(
		impl.NewEntryService,
		impl.NewAnalyticsService,
		impl.NewCatalogService,
		impl.NewSessionService,
		impl.NewExportService,
	)
}

// run builds the application graph, starts it, and hands the resolved
// services to fn under an invocation-scoped logger.
func run(ctx context.Context, opts *globalOptions, command string, fn func(ctx context.Context, svc services) error) error {
	var svc services
	app := fx.New(
		fx.NopLogger,
		injectInfra(opts),
		injectRepo(),
		injectService(),
		injectUsecase(),
		fx.Invoke(func(s services) { svc = s }),
	)
	if err := app.Err(); err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(ctx, lifecycleTimeout)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return err
	}

	ctx = logs.WithInvocation(ctx, svc.Logger, command)
	logs.FromContext(ctx, svc.Logger).Debug("Command started")

	runErr := fn(ctx, svc)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), lifecycleTimeout)
	defer stopCancel()
	if err := app.Stop(stopCtx); err != nil && runErr == nil {
		return err
	}

	return runErr
}
