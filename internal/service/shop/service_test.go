package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/computer-shop/internal/model"
	"github.com/you-humble/computer-shop/internal/service/mocks"
	"github.com/you-humble/computer-shop/platform/logger"
)

var catalogRecords = [][]string{
	{"CPU", "AMD Ryzen 5", "119.99", "6", "3.2", "2"},
	{"GraphicsCard", "NVIDIA GeForce 1080", "925", "1607", "8", "1"},
	{"Memory", "Corsair Vengeance", "239", "16", "3000", "DDR4", "3"},
	{"Storage", "Seagate Barracuda", "60", "1000", "HDD", "5"},
}

type deps struct {
	parts    *mocks.MockPartRepository
	receipts *mocks.MockReceiptRepository
	auth     *mocks.MockAuthenticator
}

func newDeps(t *testing.T) deps {
	return deps{
		parts:    mocks.NewMockPartRepository(t),
		receipts: mocks.NewMockReceiptRepository(t),
		auth:     mocks.NewMockAuthenticator(t),
	}
}

func newSvc(d deps) *service {
	return NewShopService(d.parts, d.receipts, d.auth, time.Second)
}

// startedSvc returns a service with the catalog loaded and a cart open for username.
func startedSvc(t *testing.T, d deps, username string) *service {
	t.Helper()

	d.parts.On("Load", mock.Anything).Return(catalogRecords, nil).Once()
	d.auth.On("IsLoggedIn", username).Return(true).Once()

	svc := newSvc(d)
	require.NoError(t, svc.Start(context.Background()))
	_, err := svc.OpenCart(context.Background(), username)
	require.NoError(t, err)
	return svc
}

func TestServiceStart(t *testing.T) {
	logger.SetNopLogger()
	t.Parallel()

	tests := []struct {
		name   string
		setup  func(d deps)
		assert func(t *testing.T, svc *service, err error)
	}{
		{
			name: "repository error",
			setup: func(d deps) {
				d.parts.On("Load", mock.Anything).Return(([][]string)(nil), errors.New("permission denied")).Once()
			},
			assert: func(t *testing.T, svc *service, err error) {
				require.Error(t, err)
				assert.ErrorContains(t, err, "permission denied")
				assert.Equal(t, 0, svc.Catalog().Len())
			},
		},
		{
			name: "invalid record",
			setup: func(d deps) {
				d.parts.On("Load", mock.Anything).Return([][]string{{"CPU", "AMD Ryzen 5"}}, nil).Once()
			},
			assert: func(t *testing.T, _ *service, err error) {
				require.ErrorIs(t, err, model.ErrValidation)
			},
		},
		{
			name: "success",
			setup: func(d deps) {
				d.parts.On("Load", mock.Anything).Return(catalogRecords, nil).Once()
			},
			assert: func(t *testing.T, svc *service, err error) {
				require.NoError(t, err)
				assert.Equal(t, 4, svc.Catalog().Len())
				assert.Contains(t, svc.ListCatalog(), "AMD Ryzen 5: 6 cores @ 3.2GHz for $119.99 (x2)")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := newDeps(t)
			tt.setup(d)

			svc := newSvc(d)
			err := svc.Start(context.Background())
			tt.assert(t, svc, err)
		})
	}
}

func TestServiceAddPart(t *testing.T) {
	logger.SetNopLogger()
	t.Parallel()

	svc := newSvc(newDeps(t))
	ctx := context.Background()

	name := gofakeit.ProductName()
	p, err := model.NewMemory(name, decimal.RequireFromString("79.99"), 8, 3200, "DDR4")
	require.NoError(t, err)

	n, err := svc.AddPart(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = svc.AddPart(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	clash, err := model.NewMemory(name, decimal.RequireFromString("89.99"), 8, 3200, "DDR4")
	require.NoError(t, err)
	_, err = svc.AddPart(ctx, clash)
	assert.ErrorIs(t, err, model.ErrConflictingDuplicate)
}

func TestServiceOpenCart(t *testing.T) {
	logger.SetNopLogger()
	t.Parallel()

	d := newDeps(t)
	svc := newSvc(d)
	ctx := context.Background()

	d.auth.On("IsLoggedIn", "ash").Return(false).Once()
	_, err := svc.OpenCart(ctx, "ash")
	require.ErrorIs(t, err, model.ErrUnauthorized)
	assert.False(t, svc.CartOpen())

	d.auth.On("IsLoggedIn", "gary").Return(true).Once()
	c, err := svc.OpenCart(ctx, "gary")
	require.NoError(t, err)
	assert.Equal(t, "gary", c.Username())
	assert.True(t, svc.CartOpen())

	_, err = svc.OpenCart(ctx, "gary")
	assert.ErrorIs(t, err, model.ErrCartOpen)
}

func TestServiceCartOperationsNeedOpenCart(t *testing.T) {
	logger.SetNopLogger()
	t.Parallel()

	svc := newSvc(newDeps(t))
	ctx := context.Background()

	_, err := svc.Reserve(ctx, "AMD Ryzen 5")
	assert.ErrorIs(t, err, model.ErrNoActiveCart)
	_, err = svc.Release(ctx, "AMD Ryzen 5")
	assert.ErrorIs(t, err, model.ErrNoActiveCart)
	_, err = svc.ShowCart()
	assert.ErrorIs(t, err, model.ErrNoActiveCart)
	_, _, err = svc.Purchase(ctx)
	assert.ErrorIs(t, err, model.ErrNoActiveCart)
	assert.ErrorIs(t, svc.CloseCart(ctx), model.ErrNoActiveCart)
	assert.ErrorIs(t, svc.Authorize(ctx, "secret1"), model.ErrNoActiveCart)
}

func TestServiceAuthorize(t *testing.T) {
	logger.SetNopLogger()
	t.Parallel()

	d := newDeps(t)
	svc := startedSvc(t, d, "gary")
	ctx := context.Background()

	d.auth.On("Login", mock.Anything, "gary", "wrong").Return(model.ErrInvalidPassword).Once()
	d.auth.On("Login", mock.Anything, "gary", "secret1").Return(nil).Once()

	assert.ErrorIs(t, svc.Authorize(ctx, "wrong"), model.ErrInvalidPassword)
	assert.NoError(t, svc.Authorize(ctx, "secret1"))
}

func TestServiceSignIn(t *testing.T) {
	logger.SetNopLogger()
	t.Parallel()

	d := newDeps(t)
	svc := newSvc(d)
	ctx := context.Background()

	d.auth.On("VerifyEmail", mock.Anything, "gary", "ash@example.com").Return(model.ErrInvalidEmail).Once()
	err := svc.SignIn(ctx, "gary", "ash@example.com", "secret1")
	require.ErrorIs(t, err, model.ErrInvalidEmail)
	d.auth.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)

	d.auth.On("VerifyEmail", mock.Anything, "gary", "gary@example.com").Return(nil).Once()
	d.auth.On("Login", mock.Anything, "gary", "secret1").Return(nil).Once()
	require.NoError(t, svc.SignIn(ctx, "gary", "gary@example.com", "secret1"))
}

func TestServiceReserveRelease(t *testing.T) {
	logger.SetNopLogger()
	t.Parallel()

	d := newDeps(t)
	svc := startedSvc(t, d, "gary")
	ctx := context.Background()

	for want := 1; want <= 2; want++ {
		n, err := svc.Reserve(ctx, "AMD Ryzen 5")
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}

	stock, _ := svc.Catalog().Stock("AMD Ryzen 5")
	assert.Equal(t, 0, stock)

	view, err := svc.ShowCart()
	require.NoError(t, err)
	assert.Contains(t, view, "AMD Ryzen 5: 6 cores @ 3.2GHz for $119.99 (x2)")
	assert.Contains(t, view, "$239.98")

	_, err = svc.Reserve(ctx, "AMD Ryzen 5")
	assert.ErrorIs(t, err, model.ErrOutOfStock)

	n, err := svc.Release(ctx, "AMD Ryzen 5")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	stock, _ = svc.Catalog().Stock("AMD Ryzen 5")
	assert.Equal(t, 2, stock)

	_, err = svc.Release(ctx, "AMD Ryzen 5")
	assert.ErrorIs(t, err, model.ErrPartNotFound)
}

func TestServicePurchase(t *testing.T) {
	logger.SetNopLogger()
	t.Parallel()

	type testCase struct {
		name   string
		setup  func(d deps)
		assert func(t *testing.T, svc *service, receipt *model.Receipt, path string, err error)
	}

	tests := []testCase{
		{
			name: "receipt write fails",
			setup: func(d deps) {
				d.receipts.On("Save", mock.Anything, mock.Anything).Return("", errors.New("disk full")).Once()
			},
			assert: func(t *testing.T, svc *service, receipt *model.Receipt, path string, err error) {
				require.Error(t, err)
				assert.ErrorContains(t, err, "disk full")
				assert.Nil(t, receipt)
				assert.Empty(t, path)

				assert.True(t, svc.CartOpen(), "nothing sold, the wish list stays open")
				view, verr := svc.ShowCart()
				require.NoError(t, verr)
				assert.Contains(t, view, "AMD Ryzen 5")

				stock, _ := svc.Catalog().Stock("AMD Ryzen 5")
				assert.Equal(t, 1, stock)
			},
		},
		{
			name: "success",
			setup: func(d deps) {
				d.receipts.
					On("Save", mock.Anything, mock.MatchedBy(func(r *model.Receipt) bool {
						return r.Username == "gary" && r.FileName == "gary.csv" && r.Units == 4
					})).
					Return("database/receipts/gary.csv", nil).
					Once()
				d.parts.
					On("Save", mock.Anything, mock.MatchedBy(func(records [][]string) bool {
						return len(records) == 4 && records[1][5] == "OUT OF STOCK"
					})).
					Return(nil).
					Once()
				d.auth.On("Logout", mock.Anything, "gary").Once()
			},
			assert: func(t *testing.T, svc *service, receipt *model.Receipt, path string, err error) {
				require.NoError(t, err)
				assert.Equal(t, "database/receipts/gary.csv", path)
				assert.Equal(t, "1343.99", receipt.Total.StringFixed(2))
				assert.False(t, svc.CartOpen())

				stock, _ := svc.Catalog().Stock("NVIDIA GeForce 1080")
				assert.Equal(t, 0, stock)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := newDeps(t)
			svc := startedSvc(t, d, "gary")
			for _, name := range []string{"AMD Ryzen 5", "NVIDIA GeForce 1080", "Corsair Vengeance", "Seagate Barracuda"} {
				_, err := svc.Reserve(context.Background(), name)
				require.NoError(t, err)
			}
			tt.setup(d)

			receipt, path, err := svc.Purchase(context.Background())
			tt.assert(t, svc, receipt, path, err)
		})
	}
}

func TestServicePurchaseEmptyCartKeepsItOpen(t *testing.T) {
	logger.SetNopLogger()
	t.Parallel()

	d := newDeps(t)
	svc := startedSvc(t, d, "gary")

	_, _, err := svc.Purchase(context.Background())
	require.ErrorIs(t, err, model.ErrEmptyCart)
	assert.True(t, svc.CartOpen())
	d.receipts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestServiceShutdownReturnsStock(t *testing.T) {
	logger.SetNopLogger()
	t.Parallel()

	d := newDeps(t)
	svc := startedSvc(t, d, "gary")
	ctx := context.Background()

	_, err := svc.Reserve(ctx, "Corsair Vengeance")
	require.NoError(t, err)

	d.auth.On("Logout", mock.Anything, "gary").Once()
	d.parts.On("Save", mock.Anything, catalogRecords).Return(nil).Once()

	require.NoError(t, svc.Shutdown(ctx))
	assert.False(t, svc.CartOpen())
}

func TestServiceCloseCartKeepsUnreturnableUnits(t *testing.T) {
	logger.SetNopLogger()
	t.Parallel()

	d := newDeps(t)
	svc := startedSvc(t, d, "gary")
	ctx := context.Background()

	_, err := svc.Reserve(ctx, "NVIDIA GeForce 1080")
	require.NoError(t, err)

	_, err = svc.Catalog().RemoveByName("NVIDIA GeForce 1080")
	require.NoError(t, err)
	other, err := model.NewGraphicsCard("NVIDIA GeForce 1080", decimal.RequireFromString("499"), 1500, 6)
	require.NoError(t, err)
	_, err = svc.AddPart(ctx, other)
	require.NoError(t, err)

	err = svc.CloseCart(ctx)
	require.ErrorIs(t, err, model.ErrConflictingDuplicate)
	assert.True(t, svc.CartOpen())
	d.auth.AssertNotCalled(t, "Logout", mock.Anything, mock.Anything)

	view, err := svc.ShowCart()
	require.NoError(t, err)
	assert.Contains(t, view, "NVIDIA GeForce 1080: 8GB @ 1607MHz for $925.00 (x1)")
}
