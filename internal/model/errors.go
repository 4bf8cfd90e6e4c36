package model

import "errors"

var (
	// ErrNotFound is returned by stores when the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials covers both unknown username and wrong password.
	// Callers must not distinguish the two.
	ErrInvalidCredentials = errors.New("incorrect username or password")

	// ErrPrincipalNotFound means the token subject no longer exists.
	ErrPrincipalNotFound = errors.New("principal not found")

	// ErrInactiveAccount means the token subject is deactivated.
	ErrInactiveAccount = errors.New("inactive account")

	// ErrForbidden is an authorization denial, distinct from
	// authentication failures and from ErrNotFound.
	ErrForbidden = errors.New("permission denied")

	ErrUsernameTaken    = errors.New("username already taken")
	ErrEmailTaken       = errors.New("email already taken")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
)
