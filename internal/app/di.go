package app

import (
	"context"
	"os"

	"github.com/you-humble/computer-shop/internal/config"
	partrepo "github.com/you-humble/computer-shop/internal/repository/part"
	receiptrepo "github.com/you-humble/computer-shop/internal/repository/receipt"
	userrepo "github.com/you-humble/computer-shop/internal/repository/user"
	authservice "github.com/you-humble/computer-shop/internal/service/auth"
	shopservice "github.com/you-humble/computer-shop/internal/service/shop"
	"github.com/you-humble/computer-shop/internal/transport/cli"
	"github.com/you-humble/computer-shop/platform/logger"
)

type PartRepository interface {
	shopservice.PartRepository
	Exists() (bool, error)
}

type ShopService interface {
	cli.ShopService
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

type di struct {
	partRepository    PartRepository
	userRepository    authservice.UserRepository
	receiptRepository shopservice.ReceiptRepository

	authService shopservice.Authenticator
	shopService ShopService

	handler *cli.Handler
}

func NewDI() *di { return &di{} }

func (d *di) PartRepository(_ context.Context) PartRepository {
	if d.partRepository == nil {
		d.partRepository = partrepo.NewPartRepository(config.C().Storage.CatalogPath())
	}

	return d.partRepository
}

// PartsBootstrap seeds the catalog file on first run.
func (d *di) PartsBootstrap(ctx context.Context) error {
	repo := d.PartRepository(ctx)

	ok, err := repo.Exists()
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	logger.Info(ctx, "no catalog found, writing the starter catalog",
		logger.String("path", config.C().Storage.CatalogPath()),
	)

	bctx, cancel := context.WithTimeout(ctx, config.C().Storage.IOTimeout())
	defer cancel()

	return partrepo.PartsBootstrap(bctx, repo)
}

func (d *di) UserRepository(_ context.Context) authservice.UserRepository {
	if d.userRepository == nil {
		d.userRepository = userrepo.NewUserRepository(config.C().Storage.UsersPath())
	}

	return d.userRepository
}

func (d *di) ReceiptRepository(_ context.Context) shopservice.ReceiptRepository {
	if d.receiptRepository == nil {
		d.receiptRepository = receiptrepo.NewReceiptRepository(config.C().Storage.ReceiptsDir())
	}

	return d.receiptRepository
}

func (d *di) AuthService(ctx context.Context) shopservice.Authenticator {
	if d.authService == nil {
		d.authService = authservice.NewAuthService(
			d.UserRepository(ctx),
			config.C().Shop.MinPasswordLen(),
		)
	}

	return d.authService
}

func (d *di) ShopService(ctx context.Context) ShopService {
	if d.shopService == nil {
		d.shopService = shopservice.NewShopService(
			d.PartRepository(ctx),
			d.ReceiptRepository(ctx),
			d.AuthService(ctx),
			config.C().Storage.IOTimeout(),
		)
	}

	return d.shopService
}

func (d *di) Handler(ctx context.Context) *cli.Handler {
	if d.handler == nil {
		d.handler = cli.NewHandler(
			d.ShopService(ctx),
			os.Stdin,
			os.Stdout,
			config.C().Shop.Color(),
		)
	}

	return d.handler
}
