package repository

import "errors"

var (
	// ErrNotFound is returned when a requested key doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrClosed is returned when a store is used after Close
	ErrClosed = errors.New("store closed")
)
