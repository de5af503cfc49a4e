package db

import "errors"

// Stores translate only the two engine errors that callers branch on.
// Anything else (constraint violations other than duplicate keys,
// connectivity failures) propagates unchanged.
var (
	// ErrNotFound: the targeted row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict: a unique key already holds the inserted value.
	ErrConflict = errors.New("record already exists")
)
