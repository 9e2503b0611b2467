package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by username or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameAlreadyExists is returned when registering a username that is taken.
	ErrUsernameAlreadyExists = errors.New("username already in use")

	// ErrInvalidRegistration is returned when registration input is incomplete or too weak.
	ErrInvalidRegistration = errors.New("invalid registration")

	// ErrInvalidCredentials is returned when the username or password is wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
