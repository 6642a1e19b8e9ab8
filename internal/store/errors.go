package store

import "errors"

var (
	// ErrNotFound is returned when a referenced meal, group or product id
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmptyField rejects a mutation whose required text field is blank.
	// Nothing is written when it is returned.
	ErrEmptyField = errors.New("required field is empty")

	// ErrAisleExists rejects renaming an aisle onto a different existing one.
	ErrAisleExists = errors.New("aisle already exists")

	// ErrAisleInUse rejects deleting an aisle still referenced by catalog
	// products.
	ErrAisleInUse = errors.New("aisle still has products")
)
