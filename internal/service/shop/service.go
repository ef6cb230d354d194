package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/you-humble/computer-shop/internal/cart"
	"github.com/you-humble/computer-shop/internal/catalog"
	"github.com/you-humble/computer-shop/internal/model"
	"github.com/you-humble/computer-shop/platform/logger"
)

type PartRepository interface {
	Load(ctx context.Context) ([][]string, error)
	Save(ctx context.Context, records [][]string) error
}

type ReceiptRepository interface {
	Save(ctx context.Context, receipt *model.Receipt) (string, error)
}

type Authenticator interface {
	Register(ctx context.Context, username, email, password string) error
	Login(ctx context.Context, username, password string) error
	VerifyEmail(ctx context.Context, username, email string) error
	Logout(ctx context.Context, username string)
	IsLoggedIn(username string) bool
}

// service owns the catalog and the single wish list that may be open at a time.
type service struct {
	parts     PartRepository
	receipts  ReceiptRepository
	auth      Authenticator
	ioTimeout time.Duration

	catalog *catalog.Catalog

	mu   sync.Mutex
	cart *cart.Cart
}

func NewShopService(
	parts PartRepository,
	receipts ReceiptRepository,
	auth Authenticator,
	ioTimeout time.Duration,
) *service {
	return &service{
		parts:     parts,
		receipts:  receipts,
		auth:      auth,
		ioTimeout: ioTimeout,
		catalog:   catalog.New(),
	}
}

// Start loads the catalog file.
func (s *service) Start(ctx context.Context) error {
	const op = "shop.service.Start"

	rctx, cancel := context.WithTimeout(ctx, s.ioTimeout)
	defer cancel()

	records, err := s.parts.Load(rctx)
	if err != nil {
		logger.Error(ctx, "repository load catalog", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.catalog.Load(records); err != nil {
		logger.Error(ctx, "parse catalog", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	logger.Info(ctx, "catalog loaded", logger.Int("parts", s.catalog.Len()))
	return nil
}

// Save writes the catalog back to its file.
func (s *service) Save(ctx context.Context) error {
	const op = "shop.service.Save"

	wctx, cancel := context.WithTimeout(ctx, s.ioTimeout)
	defer cancel()

	if err := s.parts.Save(wctx, s.catalog.Save()); err != nil {
		logger.Error(ctx, "repository save catalog", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Shutdown returns the stock of an open wish list and saves the catalog.
func (s *service) Shutdown(ctx context.Context) error {
	var errs []error
	if s.CartOpen() {
		if err := s.CloseCart(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := s.Save(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (s *service) ListCatalog() string { return s.catalog.String() }

func (s *service) Catalog() *catalog.Catalog { return s.catalog }

// AddPart lists p or bumps the stock of an equal listed part.
func (s *service) AddPart(ctx context.Context, p model.Part) (int, error) {
	const op = "shop.service.AddPart"
	log := logger.With(
		logger.String("part", p.Name()),
		logger.Stringer("kind", p.Kind()),
	)

	stock, err := s.catalog.Add(p, 1)
	if err != nil {
		log.Warn(ctx, "catalog add", logger.ErrorF(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	log.Info(ctx, "part added", logger.Int("stock", stock))
	return stock, nil
}

// Register creates a new customer account.
func (s *service) Register(ctx context.Context, username, email, password string) error {
	const op = "shop.service.Register"

	if err := s.auth.Register(ctx, username, email, password); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SignIn authenticates a returning customer by email and password.
func (s *service) SignIn(ctx context.Context, username, email, password string) error {
	const op = "shop.service.SignIn"

	if err := s.auth.VerifyEmail(ctx, username, email); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.auth.Login(ctx, username, password); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// OpenCart starts a wish list for a logged in user.
func (s *service) OpenCart(ctx context.Context, username string) (*cart.Cart, error) {
	const op = "shop.service.OpenCart"
	log := logger.With(
		logger.String("username", username),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart != nil {
		log.Warn(ctx, "wish list already open", logger.String("owner", s.cart.Username()))
		return nil, fmt.Errorf("%s: %w", op, model.ErrCartOpen)
	}
	if !s.auth.IsLoggedIn(username) {
		log.Warn(ctx, "open wish list without login")
		return nil, fmt.Errorf("%s: %w: %s", op, model.ErrUnauthorized, username)
	}

	c, err := cart.New(username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.cart = c

	log.Info(ctx, "wish list opened", logger.Stringer("cart_id", c.ID()))
	return c, nil
}

func (s *service) CartOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart != nil
}

// Authorize re-checks the password of the wish list owner.
func (s *service) Authorize(ctx context.Context, password string) error {
	const op = "shop.service.Authorize"

	c, err := s.activeCart()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.auth.Login(ctx, c.Username(), password); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Reserve moves one unit of name from the catalog to the open wish list.
func (s *service) Reserve(ctx context.Context, name string) (int, error) {
	const op = "shop.service.Reserve"
	log := logger.With(
		logger.String("part", name),
	)

	c, err := s.activeCart()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	n, err := c.Reserve(s.catalog, name)
	if err != nil {
		log.Warn(ctx, "cart reserve", logger.ErrorF(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	log.Info(ctx, "part reserved", logger.Int("in_cart", n))
	return n, nil
}

// Release returns every unit of name from the wish list to the catalog.
func (s *service) Release(ctx context.Context, name string) (int, error) {
	const op = "shop.service.Release"
	log := logger.With(
		logger.String("part", name),
	)

	c, err := s.activeCart()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	n, err := c.Release(s.catalog, name)
	if err != nil {
		log.Warn(ctx, "cart release", logger.ErrorF(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	log.Info(ctx, "part released", logger.Int("units", n))
	return n, nil
}

func (s *service) ShowCart() (string, error) {
	c, err := s.activeCart()
	if err != nil {
		return "", fmt.Errorf("shop.service.ShowCart: %w", err)
	}
	return c.Render(), nil
}

// Purchase closes the wish list, writes its receipt and saves the catalog.
func (s *service) Purchase(ctx context.Context) (*model.Receipt, string, error) {
	const op = "shop.service.Purchase"

	c, err := s.activeCart()
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	log := logger.With(
		logger.String("username", c.Username()),
		logger.Stringer("cart_id", c.ID()),
	)

	if !c.IsPurchasable() {
		log.Warn(ctx, "purchasing an incomplete computer")
	}

	wctx, cancel := context.WithTimeout(ctx, s.ioTimeout)
	defer cancel()

	var path string
	receipt, err := c.Purchase(func(r *model.Receipt) (err error) {
		path, err = s.receipts.Save(wctx, r)
		return err
	})
	if err != nil {
		log.Warn(ctx, "cart purchase", logger.ErrorF(err))
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	s.finish(ctx, c)

	if err := s.parts.Save(wctx, s.catalog.Save()); err != nil {
		log.Error(ctx, "repository save catalog", logger.ErrorF(err))
		return receipt, path, fmt.Errorf("%s: %w", op, err)
	}

	log.Info(ctx, "wish list purchased",
		logger.String("receipt", path),
		logger.Int("units", receipt.Units),
		logger.String("total", receipt.Total.StringFixed(2)),
	)
	return receipt, path, nil
}

// CloseCart returns all reserved stock and closes the wish list.
func (s *service) CloseCart(ctx context.Context) error {
	const op = "shop.service.CloseCart"

	c, err := s.activeCart()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := c.CloseWithoutPurchase(s.catalog); err != nil {
		logger.Error(ctx, "cart close", logger.ErrorF(err), logger.String("username", c.Username()))
		return fmt.Errorf("%s: %w", op, err)
	}
	s.finish(ctx, c)

	logger.Info(ctx, "wish list closed", logger.String("username", c.Username()))
	return nil
}

func (s *service) activeCart() (*cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart == nil {
		return nil, model.ErrNoActiveCart
	}
	return s.cart, nil
}

func (s *service) finish(ctx context.Context, c *cart.Cart) {
	s.mu.Lock()
	if s.cart == c {
		s.cart = nil
	}
	s.mu.Unlock()

	s.auth.Logout(ctx, c.Username())
}
