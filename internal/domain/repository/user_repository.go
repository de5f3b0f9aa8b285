// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"agenda/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// ErrUserDuplicate is returned when a username or email is already taken.
var ErrUserDuplicate = errors.New("username or email already exists")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete
// implementation.
type UserRepository interface {
	// Create persists a new user. The password hash must already be set.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a user by id across all records, active or not.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindActiveByUsername retrieves an active user by their unique username.
	FindActiveByUsername(ctx context.Context, username string) (*entity.User, error)

	// List returns one page of users under the given scope.
	List(ctx context.Context, scope Scope, query ListQuery) (*Page[*entity.User], error)

	// Update persists changes to an existing user.
	Update(ctx context.Context, user *entity.User) error

	// SetActive flips the soft-delete flag. Idempotent.
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}
