package models

import "errors"

var (
	// ErrNoRecord covers any referenced user, product, order or thread
	// entry that cannot be resolved.
	ErrNoRecord = errors.New("models: no matching record found")

	ErrInvalidCredentials = errors.New("models: invalid credentials")
	ErrDuplicateEmail     = errors.New("models: email address already in use")

	// Benign conflicts, surfaced to the client but not logged as faults.
	ErrDuplicateRating   = errors.New("models: user already rated this product")
	ErrDuplicateReply    = errors.New("models: user already replied to this comment")
	ErrAlreadyWishlisted = errors.New("models: product already wishlisted")
)
