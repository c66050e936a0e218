package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/folio-builder/internal/autosave"
	"github.com/jonathan/folio-builder/internal/editor"
	"github.com/jonathan/folio-builder/internal/importer"
	"github.com/jonathan/folio-builder/internal/mutation"
	"github.com/jonathan/folio-builder/internal/persistence"
	"github.com/jonathan/folio-builder/internal/rendering"
	"github.com/jonathan/folio-builder/internal/schemas"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrPasswordMismatch indicates current password is incorrect
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string {
	return "current password is incorrect"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrSessionNotFound is returned for unknown sessions and for sessions owned
// by another user.
var ErrSessionNotFound = errors.New("session not found")

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrEmailAlreadyExists:
		return http.StatusConflict
	case *ErrInvalidCredentials, *ErrPasswordMismatch:
		return http.StatusUnauthorized
	case *ErrUserNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	}

	var (
		cmdErr      *mutation.CommandError
		settingsErr *editor.SettingsError
		schemaErr   *schemas.ValidationError
		templateErr *rendering.TemplateError
		renderErr   *rendering.RenderError
		storeErr    *persistence.StoreError
	)
	switch {
	case errors.Is(err, persistence.ErrAuthRequired):
		return http.StatusUnauthorized
	case errors.Is(err, persistence.ErrDocumentNotFound),
		errors.Is(err, ErrSessionNotFound),
		errors.Is(err, mutation.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, persistence.ErrConflict),
		errors.Is(err, mutation.ErrImmovable):
		return http.StatusConflict
	case errors.Is(err, autosave.ErrClosed):
		return http.StatusGone
	case errors.Is(err, importer.ErrInvalidDocument):
		return http.StatusBadRequest
	case errors.As(err, &cmdErr), errors.As(err, &settingsErr):
		return http.StatusBadRequest
	case errors.As(err, &schemaErr), errors.As(err, &templateErr), errors.As(err, &renderErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &storeErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
