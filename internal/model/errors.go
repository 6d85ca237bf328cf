package model

import "errors"

var (
	// ErrNotFound means the requested record does not exist. A miss on the
	// existence check is a normal false result, not this error.
	ErrNotFound = errors.New("record not found")

	// ErrAccountExists is the normal "already registered" branch of the
	// registration flow, not a failure.
	ErrAccountExists = errors.New("account already exists")

	// ErrUnauthorized is the single outcome of session verification failure,
	// regardless of whether the token was missing, malformed or mis-signed.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited means the identity exceeded its request budget for the
	// current window.
	ErrRateLimited = errors.New("rate limited")

	// ErrStorageUnavailable means the backing store could not be reached.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
