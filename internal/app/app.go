package app

import (
	"context"
	"fmt"
	"os"

	"github.com/you-humble/computer-shop/internal/config"
	"github.com/you-humble/computer-shop/platform/closer"
	"github.com/you-humble/computer-shop/platform/logger"
)

type app struct {
	di *di
}

func New(ctx context.Context) (*app, error) {
	a := &app{}

	if err := a.init(ctx); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *app) Run(ctx context.Context) error { return a.run(ctx) }

func (a *app) init(ctx context.Context) error {
	inits := []func(context.Context) error{
		a.initConfig,
		a.initLogger,
		a.initCloser,
		a.initDI,
		a.initCatalog,
	}

	for _, initFn := range inits {
		if err := initFn(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) initConfig(_ context.Context) error {
	return config.Load()
}

func (a *app) initLogger(_ context.Context) error {
	var opts []logger.Option
	if file := config.C().Logger.File(); file != "" {
		opts = append(opts, logger.WithOutput(file))
	}

	return logger.Init(
		config.C().Logger.Level(),
		config.C().Logger.AsJSON(),
		opts...,
	)
}

func (a *app) initCloser(_ context.Context) error {
	closer.SetLogger(logger.L())
	return nil
}

func (a *app) initDI(_ context.Context) error {
	a.di = NewDI()
	return nil
}

func (a *app) initCatalog(ctx context.Context) error {
	if err := a.di.PartsBootstrap(ctx); err != nil {
		logger.Error(ctx, "failed to bootstrap the catalog", logger.ErrorF(err))
		return err
	}

	svc := a.di.ShopService(ctx)
	if err := svc.Start(ctx); err != nil {
		logger.Error(ctx, "failed to load the catalog", logger.ErrorF(err))
		return err
	}
	closer.AddNamed("Shop Catalog", svc.Shutdown)

	return nil
}

func (a *app) run(ctx context.Context) error {
	defer gracefulShutdown()

	errCh := make(chan error, 1)

	go func() {
		logger.Info(ctx,
			"🚀 shop session started",
			logger.String("catalog", config.C().Storage.CatalogPath()),
		)
		errCh <- a.di.Handler(ctx).Run(ctx)
	}()

	select {
	case <-ctx.Done():
		logger.Warn(ctx, "🛑 session interrupted", logger.ErrorF(ctx.Err()))
		return nil
	case err := <-errCh:
		return err
	}
}

//nolint:contextcheck
func gracefulShutdown() {
	ctx, cancel := context.WithTimeout(
		context.Background(), // do not inherit cancellation from ctx
		config.C().Storage.IOTimeout(),
	)
	defer cancel()
	defer closeLogger()

	err := closer.CloseAll(ctx)
	if err != nil {
		logger.Error(ctx, "❌ Error during shutdown", logger.ErrorF(err))
		return
	}
	logger.Info(ctx, "✅ Shop closed")
}

// closeLogger runs after the closer, which logs through the logger.
func closeLogger() {
	if err := logger.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ failed to close the log file: %v\n", err)
	}
}
