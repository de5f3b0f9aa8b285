// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	deliverycontext "agenda/internal/delivery/context"
	"agenda/internal/domain/entity"
	domainerrors "agenda/internal/domain/errors"
	"agenda/internal/domain/repository"
	"agenda/internal/domain/service"
	"agenda/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Role names carried in access token claims.
const (
	RoleUser  = "user"
	RoleStaff = "staff"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	txManager        repository.TransactionManager
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	hasher           service.PasswordHasher
	tokenService     service.TokenService
	logger           *slog.Logger
}

// SessionServiceParams holds dependencies for sessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	UserRepo         repository.UserRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	Hasher           service.PasswordHasher
	TokenService     service.TokenService
	Logger           *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		txManager:        params.TxManager,
		userRepo:         params.UserRepo,
		refreshTokenRepo: params.RefreshTokenRepo,
		hasher:           params.Hasher,
		tokenService:     params.TokenService,
		logger:           params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login verifies credentials and opens a new session. Unknown
// usernames and wrong passwords produce the same error.
func (srv *sessionService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := srv.userRepo.FindActiveByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to look up user for login")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login rejected", slog.String("username", input.Username))

		return nil, domainerrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.ID, userRoles(user))
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	if err := srv.storeSession(ctx, srv.refreshTokenRepo, user.ID, refreshToken); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Login succeeded", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         toUserOutput(user),
	}, nil
}

// Refresh rotates a valid refresh token into a new token pair. The
// presented token is deleted in the same transaction that stores the
// replacement, so a token can never be redeemed twice.
func (srv *sessionService) Refresh(ctx context.Context, refreshToken string) (*usecase.TokenPairOutput, error) {
	claims, err := srv.tokenService.ValidateToken(refreshToken, service.TokenTypeRefresh)
	if err != nil {
		return nil, domainerrors.ErrRefreshTokenInvalid
	}

	var output *usecase.TokenPairOutput
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		tokenRepo := repoFactory.RefreshTokenRepo()

		stored, err := tokenRepo.FindByHash(ctx, hashToken(refreshToken))
		if err != nil {
			if errors.Is(err, repository.ErrRefreshTokenNotFound) || errors.Is(err, repository.ErrRefreshTokenExpired) {
				return domainerrors.ErrRefreshTokenInvalid
			}

			return errors.Wrap(err, "failed to look up refresh token")
		}
		if stored.UserID != claims.UserID {
			return domainerrors.ErrRefreshTokenInvalid
		}

		user, err := repoFactory.UserRepo().FindByID(ctx, stored.UserID)
		if err != nil || !user.IsActive() {
			// A deactivated account keeps its stored sessions but can
			// no longer redeem them.
			return domainerrors.ErrRefreshTokenInvalid
		}

		if err := tokenRepo.DeleteByHash(ctx, stored.TokenHash); err != nil {
			return errors.Wrap(err, "failed to invalidate redeemed refresh token")
		}

		accessToken, newRefreshToken, err := srv.tokenService.GenerateTokens(user.ID, userRoles(user))
		if err != nil {
			return errors.Wrap(err, "failed to generate rotated tokens")
		}

		if err := srv.storeSession(ctx, tokenRepo, user.ID, newRefreshToken); err != nil {
			return err
		}

		output = &usecase.TokenPairOutput{
			AccessToken:  accessToken,
			RefreshToken: newRefreshToken,
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Refresh token rotated", slog.Any("userID", claims.UserID))

	return output, nil
}

// Logout ends the session identified by the refresh token.
func (srv *sessionService) Logout(ctx context.Context, refreshToken string) error {
	err := srv.refreshTokenRepo.DeleteByHash(ctx, hashToken(refreshToken))
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return domainerrors.ErrRefreshTokenInvalid
		}

		return errors.Wrap(err, "failed to delete refresh token")
	}

	return nil
}

// LogoutAll ends every session of the given user.
func (srv *sessionService) LogoutAll(ctx context.Context, userID string) error {
	id, err := parseID(userID, domainerrors.ErrUserNotFound)
	if err != nil {
		return err
	}

	if err := srv.refreshTokenRepo.DeleteByUserID(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete user sessions")
	}

	srv.log(ctx).Info("All sessions ended", slog.Any("userID", id))

	return nil
}

// storeSession persists the hash of a freshly issued refresh token.
func (srv *sessionService) storeSession(ctx context.Context, tokenRepo repository.RefreshTokenRepository, userID uuid.UUID, refreshToken string) error {
	session := &entity.RefreshToken{
		UserID:    userID,
		TokenHash: hashToken(refreshToken),
		ExpiresAt: time.Now().Add(srv.tokenService.RefreshTokenDuration()),
	}
	if err := tokenRepo.Create(ctx, session); err != nil {
		return errors.Wrap(err, "failed to store refresh token")
	}

	return nil
}

// hashToken stores only a digest of the refresh token; a database leak
// does not leak redeemable tokens.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}

// userRoles derives the access token role claims for a user.
func userRoles(user *entity.User) []string {
	roles := []string{RoleUser}
	if user.IsStaff {
		roles = append(roles, RoleStaff)
	}

	return roles
}
