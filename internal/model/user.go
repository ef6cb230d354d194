package model

import (
	"fmt"
	"strings"
)

type User struct {
	// Unique login, no spaces.
	Username string
	// Unique contact email.
	Email string
	// bcrypt hash of the password.
	PasswordHash string
}

// ValidateUsername requires a non-empty name without spaces. The name also
// names the receipt file, so path separators and dot names are refused.
func ValidateUsername(username string) error {
	switch {
	case username == "":
		return fmt.Errorf("%w: username must be non-empty", ErrInvalidUsername)
	case strings.ContainsAny(username, " \t"):
		return fmt.Errorf("%w: username cannot contain spaces", ErrInvalidUsername)
	case strings.ContainsAny(username, `/\`):
		return fmt.Errorf("%w: username cannot contain / or \\", ErrInvalidUsername)
	case username == "." || username == "..":
		return fmt.Errorf("%w: username %q is reserved", ErrInvalidUsername, username)
	}
	return nil
}
