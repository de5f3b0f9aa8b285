// Package usecase contains the application-specific business rules.
package usecase

import "context"

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         *UserOutput `json:"user"`
}

// TokenPairOutput returns a freshly rotated token pair.
type TokenPairOutput struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// SessionUsecase defines the interface for authentication sessions.
type SessionUsecase interface {
	// Login verifies credentials and opens a new session.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// Refresh rotates a valid refresh token into a new token pair.
	// The presented token is invalidated in the same step.
	Refresh(ctx context.Context, refreshToken string) (*TokenPairOutput, error)

	// Logout ends the session identified by the refresh token.
	Logout(ctx context.Context, refreshToken string) error

	// LogoutAll ends every session of the given user.
	LogoutAll(ctx context.Context, userID string) error
}
