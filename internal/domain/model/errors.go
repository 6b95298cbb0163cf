package model

import "errors"

var (
	// ErrDuplicateSameDay rejects a second collection against the same loan
	// on the same calendar day.
	ErrDuplicateSameDay = errors.New("a collection for this loan already exists today")

	// ErrOutsideWindow rejects a collection captured outside the route's
	// working hours.
	ErrOutsideWindow = errors.New("collection captured outside the route working window")

	// ErrLoanNotActive rejects payment operations on loans that are not in
	// ACTIVE status.
	ErrLoanNotActive = errors.New("loan is not active")

	// ErrCollectionResolved rejects a review of an already resolved
	// collection.
	ErrCollectionResolved = errors.New("collection has already been resolved")
)
