package model

import "errors"

var (
	ErrValidation           = errors.New("validation error")
	ErrPartNotFound         = errors.New("part not found")
	ErrIndexOutOfRange      = errors.New("index out of range")
	ErrOutOfStock           = errors.New("part out of stock")
	ErrConflictingDuplicate = errors.New("part with the same name but different attributes already exists")
	ErrCartClosed           = errors.New("wish list is closed")
	ErrEmptyCart            = errors.New("wish list is empty")
	ErrNoActiveCart         = errors.New("no active wish list")
	ErrCartOpen             = errors.New("a wish list is already open")
	ErrUnauthorized         = errors.New("user is not logged in")
)

// Credential errors all wrap ErrCredential.
var (
	ErrCredential            = errors.New("credential error")
	ErrInvalidUsername       = credentialError("invalid username")
	ErrInvalidPassword       = credentialError("invalid password")
	ErrPasswordTooShort      = credentialError("password too short")
	ErrUsernameAlreadyExists = credentialError("username already exists")
	ErrEmailAlreadyExists    = credentialError("email already exists")
	ErrInvalidEmail          = credentialError("invalid email")
)

type credErr struct{ msg string }

func credentialError(msg string) error { return &credErr{msg: msg} }

func (e *credErr) Error() string { return e.msg }
func (e *credErr) Unwrap() error { return ErrCredential }
