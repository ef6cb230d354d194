package cli

import (
	"errors"
	"fmt"

	"github.com/you-humble/computer-shop/internal/model"
)

// describeError turns a service error into the line shown to the customer.
func describeError(err error) string {
	switch {
	case errors.Is(err, model.ErrPasswordTooShort):
		return "Password is too short."
	case errors.Is(err, model.ErrInvalidPassword):
		return "Invalid password."
	case errors.Is(err, model.ErrInvalidUsername):
		return "Invalid username."
	case errors.Is(err, model.ErrInvalidEmail):
		return "Invalid email."
	case errors.Is(err, model.ErrUsernameAlreadyExists):
		return "Username already exists."
	case errors.Is(err, model.ErrEmailAlreadyExists):
		return "Email already exists."
	case errors.Is(err, model.ErrEmptyCart):
		return "Your wish list is empty."
	case errors.Is(err, model.ErrCartOpen):
		return "A wish list is already open."
	case errors.Is(err, model.ErrNoActiveCart), errors.Is(err, model.ErrCartClosed):
		return "There is no open wish list."
	case errors.Is(err, model.ErrUnauthorized):
		return "Please sign in first."
	case errors.Is(err, model.ErrValidation):
		return fmt.Sprintf("Invalid input: %s", unwrapAll(err))
	default:
		return fmt.Sprintf("Something went wrong: %s", err)
	}
}

func describePartError(err error, name string) string {
	switch {
	case errors.Is(err, model.ErrPartNotFound):
		return fmt.Sprintf("Could not find %s!", name)
	case errors.Is(err, model.ErrOutOfStock):
		return fmt.Sprintf("Not enough of %s in stock!", name)
	default:
		return describeError(err)
	}
}

// unwrapAll drops the sentinel from a joined validation error.
func unwrapAll(err error) string {
	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) {
		return err.Error()
	}
	for _, e := range joined.Unwrap() {
		if !errors.Is(e, model.ErrValidation) {
			return e.Error()
		}
	}
	return err.Error()
}
