package mutation

import (
	"errors"
	"fmt"
)

// ErrNotFound matches every *NotFoundError via errors.Is.
var ErrNotFound = errors.New("entity not found")

// ErrImmovable is returned by reorder operations at a boundary or on the pinned
// first section. The document is returned unchanged.
var ErrImmovable = errors.New("item cannot move in that direction")

// NotFoundError reports an update or remove that matched no entity. The
// operation that returns it also returns the input document unchanged.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// Is lets errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

func bulletNotFound(kind, id string, index int) error {
	return &NotFoundError{Kind: kind + " bullet", ID: fmt.Sprintf("%s[%d]", id, index)}
}

// CommandError reports a malformed or unknown wire command.
type CommandError struct {
	Op      string
	Message string
	Cause   error
}

func (e *CommandError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid command %q: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid command %q: %s", e.Op, e.Message)
}

func (e *CommandError) Unwrap() error {
	return e.Cause
}
