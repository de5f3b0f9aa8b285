// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"agenda/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for refresh token persistence.
var (
	// ErrRefreshTokenNotFound is returned when a refresh token is not found.
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	// ErrRefreshTokenExpired is returned when a refresh token has expired.
	ErrRefreshTokenExpired = errors.New("refresh token has expired")
)

// RefreshTokenRepository defines the interface for refresh token and
// session management operations. Deleting a stored hash is what
// invalidates a refresh token on logout.
type RefreshTokenRepository interface {
	// Create persists a new refresh token, representing a user session.
	Create(ctx context.Context, token *entity.RefreshToken) error

	// FindByHash retrieves a refresh token record by its stored hash.
	FindByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)

	// DeleteByHash removes a refresh token by its hash, ending the session.
	DeleteByHash(ctx context.Context, tokenHash string) error

	// DeleteByUserID removes all refresh tokens for a user
	// ("logout from all devices").
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error

	// DeleteExpired removes all expired refresh tokens. Periodic cleanup.
	DeleteExpired(ctx context.Context) error
}
