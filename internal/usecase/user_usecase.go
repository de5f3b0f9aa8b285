// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"time"
)

// --- Input DTOs ---

// RegisterUserInput defines the data required to register a new user.
type RegisterUserInput struct {
	Username        string `json:"username" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
}

// CreateUserInput defines the data for staff-initiated account
// creation. Unlike self-registration it may grant the staff role.
type CreateUserInput struct {
	RegisterUserInput
	IsStaff bool `json:"is_staff"`
}

// UpdateUserInput defines a partial update to a user's profile fields.
// Nil pointers leave the corresponding field unchanged. The ID comes
// from the URL, never from the payload.
type UpdateUserInput struct {
	ID       string  `json:"-"`
	Username *string `json:"username"`
	Email    *string `json:"email" validate:"omitempty,email"`
}

// SetPasswordInput defines the data required to change a user's password.
type SetPasswordInput struct {
	UserID          string `json:"-"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
}

// ListUsersInput defines the query parameters for the user listing.
type ListUsersInput struct {
	ListInput
}

// --- Output DTOs ---

// UserOutput is the external representation of a user. The password
// hash never leaves the application layer.
type UserOutput struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsStaff   bool      `json:"is_staff"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserUsecase defines the interface for user account operations.
// This is the contract that the delivery layer depends on.
type UserUsecase interface {
	// Register creates a new active user account.
	Register(ctx context.Context, input *RegisterUserInput) (*UserOutput, error)

	// CreateUser creates an account on behalf of staff, optionally
	// granting the staff role.
	CreateUser(ctx context.Context, input *CreateUserInput) (*UserOutput, error)

	// GetUser retrieves a user by id, active or not.
	GetUser(ctx context.Context, id string) (*UserOutput, error)

	// ListUsers returns one page of users.
	ListUsers(ctx context.Context, input *ListUsersInput) (*PageOutput[*UserOutput], error)

	// UpdateUser applies a partial update to a user's profile fields.
	UpdateUser(ctx context.Context, input *UpdateUserInput) (*UserOutput, error)

	// SetPassword validates and replaces a user's password.
	SetPassword(ctx context.Context, input *SetPasswordInput) error

	// DeleteUser soft-deletes the account and ends all its sessions.
	DeleteUser(ctx context.Context, id string) error

	// RestoreUser reactivates a soft-deleted account.
	RestoreUser(ctx context.Context, id string) error
}
