package repository

import "errors"

// ErrNotFound indicates an entity was not located.
var ErrNotFound = errors.New("repository: not found")

// ErrConflict indicates an insert collided with a uniqueness constraint.
var ErrConflict = errors.New("repository: conflict")
