package repository

import "errors"

var (
	// ErrObjectNotFound is returned when a requested object key is absent
	// from the store.
	ErrObjectNotFound = errors.New("object not found")

	// ErrRecipeNotFound is returned when a recipe's HTML body cannot be
	// found in the listing snapshot.
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrBucketNotFound is returned when the configured bucket does not exist.
	ErrBucketNotFound = errors.New("bucket not found")
)
