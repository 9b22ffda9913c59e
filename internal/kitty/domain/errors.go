package domain

import "errors"

var (
	// ErrInvalidInput indicates caller-supplied arguments violate a precondition.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAccountNotFound indicates the referenced account does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountExists indicates the account name is already taken.
	ErrAccountExists = errors.New("account already exists")
)
