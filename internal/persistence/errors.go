package persistence

import (
	"errors"
	"fmt"
)

// ErrAuthRequired is returned when a load or save is attempted without a user.
var ErrAuthRequired = errors.New("sign in required")

// ErrDocumentNotFound is returned when no row matches (id, user).
var ErrDocumentNotFound = errors.New("document not found")

// ErrConflict is returned when the stored row changed since the snapshot being
// saved was loaded, e.g. an edit from another tab.
var ErrConflict = errors.New("document was changed elsewhere")

// StoreError wraps a failure of the underlying row store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("failed to %s document: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
