package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CreateUserRequest represents the request to create a new user with password authentication.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdatePasswordRequest changes the password of the signed-in user.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// User represents a user profile for API responses (password hash excluded).
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResponse represents the login/register response with user data and authentication token.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// CreateDocumentRequest creates a new persisted document.
type CreateDocumentRequest struct {
	Kind     Kind   `json:"kind" validate:"required,oneof=resume portfolio"`
	Name     string `json:"name" validate:"max=200"`
	Template string `json:"template" validate:"omitempty,max=64"`
	// Sample seeds the document with example content instead of empty defaults.
	Sample bool `json:"sample,omitempty"`
}

// OpenSessionRequest opens an editing session. An empty DocumentID opens the
// most recently updated document of Kind, or a fresh one if none exists.
type OpenSessionRequest struct {
	Kind       Kind   `json:"kind" validate:"required,oneof=resume portfolio"`
	DocumentID string `json:"document_id,omitempty" validate:"omitempty,uuid"`
}

// Validate validates the CreateUserRequest using the validator.
func (r *CreateUserRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the UpdatePasswordRequest using the validator.
func (r *UpdatePasswordRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the CreateDocumentRequest using the validator.
func (r *CreateDocumentRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the OpenSessionRequest using the validator.
func (r *OpenSessionRequest) Validate() error {
	return validator.New().Struct(r)
}
