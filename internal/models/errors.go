package models

import "errors"

var (
	// ErrNotAuthenticated is returned by admin calls issued before a
	// successful login or session restore.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNoActiveEdit is returned when a commit arrives with no field in
	// an editable state.
	ErrNoActiveEdit = errors.New("no active edit")

	// ErrInvalidPrice is returned for price input that does not parse to a
	// positive integer peso amount.
	ErrInvalidPrice = errors.New("invalid price")
)
