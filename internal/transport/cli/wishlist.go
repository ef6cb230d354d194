package cli

import (
	"context"
	"errors"

	"github.com/you-humble/computer-shop/internal/model"
	"github.com/you-humble/computer-shop/platform/logger"
)

// newWishList signs the customer in and runs the Wish List menu until the
// list is purchased or closed.
func (h *Handler) newWishList(ctx context.Context) error {
	h.println()

	username, err := h.signIn(ctx)
	if err != nil {
		return err
	}

	c, err := h.svc.OpenCart(ctx, username)
	if err != nil {
		h.failure("%s", describeError(err))
		h.println()
		return nil
	}
	ctx = logger.WithContext(ctx, logger.String("username", username), logger.Stringer("cart_id", c.ID()))

	for {
		cmd, err := h.choose(wishListMenu)
		if err != nil {
			return err
		}

		password, err := h.readLine("Please enter your password: ")
		if err != nil {
			return err
		}
		if err := h.svc.Authorize(ctx, password); err != nil {
			h.failure("%s", describeError(err))
			h.println()
			continue
		}

		done, err := h.wishListAction(ctx, cmd)
		if err != nil {
			return err
		}
		h.println()
		if done {
			return nil
		}
	}
}

func (h *Handler) wishListAction(ctx context.Context, cmd command) (bool, error) {
	switch cmd {
	case cmdAddFromDatabase:
		h.println(h.svc.ListCatalog())
		name, err := h.readLine("Enter the name of the part to add: ")
		if err != nil {
			return false, err
		}
		n, err := h.svc.Reserve(ctx, name)
		if err != nil {
			h.failure("%s", describePartError(err, name))
			return false, nil
		}
		h.success("Added %s to your wish list (x%d).", name, n)

	case cmdRemoveFromWishList:
		h.showCart()
		name, err := h.readLine("Enter the name of the part to remove: ")
		if err != nil {
			return false, err
		}
		n, err := h.svc.Release(ctx, name)
		if err != nil {
			h.failure("%s", describePartError(err, name))
			return false, nil
		}
		h.success("Removed %d x %s from your wish list.", n, name)

	case cmdShowWishList:
		h.showCart()

	case cmdPurchaseAndClose:
		h.showCart()
		receipt, path, err := h.svc.Purchase(ctx)
		if receipt == nil {
			// nothing was sold, the wish list stays open
			h.failure("%s", describeError(err))
			return false, nil
		}
		h.success("Thank you for your purchase! %d item(s) for $%s.", receipt.Units, receipt.Total.StringFixed(2))
		h.success("Receipt saved to %s.", path)
		if err != nil {
			h.failure("%s", describeError(err))
		}
		return true, nil

	case cmdClose:
		if err := h.svc.CloseCart(ctx); err != nil {
			h.failure("%s", describeError(err))
		}
		return true, nil
	}

	return false, nil
}

func (h *Handler) showCart() {
	view, err := h.svc.ShowCart()
	if err != nil {
		h.failure("%s", describeError(err))
		return
	}
	h.println(view)
}

// signIn registers a new customer or signs in a returning one and returns the username.
func (h *Handler) signIn(ctx context.Context) (string, error) {
	for {
		username, err := ask(h, "Enter your username: ", func(s string) (string, error) {
			return s, model.ValidateUsername(s)
		})
		if err != nil {
			return "", err
		}
		email, err := h.readLine("Enter your email: ")
		if err != nil {
			return "", err
		}
		password, err := h.readPassword()
		if err != nil {
			return "", err
		}

		err = h.svc.Register(ctx, username, email, password)
		if errors.Is(err, model.ErrUsernameAlreadyExists) {
			returning, aerr := ask(h, "Are you a returning customer? [Y/n] ", parseYesNo)
			if aerr != nil {
				return "", aerr
			}
			if !returning {
				h.failure("%s", describeError(err))
				continue
			}
			err = h.svc.SignIn(ctx, username, email, password)
		}
		if err != nil {
			h.failure("%s", describeError(err))
			continue
		}

		h.println()
		return username, nil
	}
}

func (h *Handler) readPassword() (string, error) {
	for {
		password, err := h.readLine("Enter your password: ")
		if err != nil {
			return "", err
		}
		verify, err := h.readLine("Verify your password: ")
		if err != nil {
			return "", err
		}
		if password != verify {
			h.failure("Passwords do not match.")
			continue
		}
		return password, nil
	}
}
