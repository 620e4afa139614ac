// Package store holds what the record backends share.
package store

import (
	"errors"

	"github.com/google/uuid"
)

// DefaultNamespace is the collection every backend writes to unless told otherwise.
const DefaultNamespace = "todos-react"

// ErrNotFound is returned when an id is not present in the namespace.
var ErrNotFound = errors.New("store: record not found")

// NewID returns a fresh record id.
func NewID() string { return uuid.NewString() }
