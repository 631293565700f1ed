package entities

import "errors"

var (
	// ErrUserExists signals a username collision.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidArgument signals failed input validation.
	ErrInvalidArgument = errors.New("invalid argument")
)
