// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	"agenda/config"
	deliverycontext "agenda/internal/delivery/context"
	"agenda/internal/domain/entity"
	domainerrors "agenda/internal/domain/errors"
	"agenda/internal/domain/repository"
	"agenda/internal/domain/service"
	"agenda/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager  repository.TransactionManager
	userRepo   repository.UserRepository
	hasher     service.PasswordHasher
	pagination paginationDefaults
	logger     *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	Hasher    service.PasswordHasher
	Config    *config.Config
	Logger    *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:  params.TxManager,
		userRepo:   params.UserRepo,
		hasher:     params.Hasher,
		pagination: newPaginationDefaults(params.Config),
		logger:     params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new active user account after validating the
// password pair.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterUserInput) (*usecase.UserOutput, error) {
	return srv.createUser(ctx, input, false)
}

// CreateUser creates an account on behalf of staff. This is the only
// path that can grant the staff role.
func (srv *userService) CreateUser(ctx context.Context, input *usecase.CreateUserInput) (*usecase.UserOutput, error) {
	return srv.createUser(ctx, &input.RegisterUserInput, input.IsStaff)
}

func (srv *userService) createUser(ctx context.Context, input *usecase.RegisterUserInput, isStaff bool) (*usecase.UserOutput, error) {
	srv.log(ctx).Info("Registering user", slog.String("username", input.Username), slog.Bool("isStaff", isStaff))

	hash, err := srv.preparePasswordHash(input.Password, input.PasswordConfirm)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		IsStaff:      isStaff,
	}
	user.Restore()

	if err := srv.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserDuplicate) {
			return nil, domainerrors.ErrUserAlreadyExists
		}
		srv.log(ctx).Error("Failed to create user", slog.String("username", input.Username), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create user")
	}

	srv.log(ctx).Debug("User registered", slog.Any("userID", user.ID))

	return toUserOutput(user), nil
}

// GetUser retrieves a user by id, active or not.
func (srv *userService) GetUser(ctx context.Context, id string) (*usecase.UserOutput, error) {
	userID, err := parseID(id, domainerrors.ErrUserNotFound)
	if err != nil {
		return nil, err
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return toUserOutput(user), nil
}

// ListUsers returns one page of users.
func (srv *userService) ListUsers(ctx context.Context, input *usecase.ListUsersInput) (*usecase.PageOutput[*usecase.UserOutput], error) {
	query := srv.pagination.normalizeListQuery(&input.ListInput)

	page, err := srv.userRepo.List(ctx, listScope(input.IncludeInactive), query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	items := make([]*usecase.UserOutput, 0, len(page.Items))
	for _, user := range page.Items {
		items = append(items, toUserOutput(user))
	}

	return &usecase.PageOutput[*usecase.UserOutput]{
		Items:    items,
		Total:    page.Total,
		Page:     query.Page,
		PageSize: query.PageSize,
	}, nil
}

// UpdateUser applies a partial update to a user's profile fields.
func (srv *userService) UpdateUser(ctx context.Context, input *usecase.UpdateUserInput) (*usecase.UserOutput, error) {
	userID, err := parseID(input.ID, domainerrors.ErrUserNotFound)
	if err != nil {
		return nil, err
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user for update")
	}

	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.Email != nil {
		user.Email = *input.Email
	}

	if err := srv.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserDuplicate) {
			return nil, domainerrors.ErrUserAlreadyExists
		}
		srv.log(ctx).Error("Failed to update user", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update user")
	}

	return toUserOutput(user), nil
}

// SetPassword validates and replaces a user's password, then ends all
// of the user's sessions so stolen refresh tokens stop working.
func (srv *userService) SetPassword(ctx context.Context, input *usecase.SetPasswordInput) error {
	userID, err := parseID(input.UserID, domainerrors.ErrUserNotFound)
	if err != nil {
		return err
	}

	hash, err := srv.preparePasswordHash(input.Password, input.PasswordConfirm)
	if err != nil {
		return err
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to find user for password change")
		}

		user.PasswordHash = hash
		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to store new password hash")
		}

		return repoFactory.RefreshTokenRepo().DeleteByUserID(ctx, userID)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to set password", slog.Any("userID", userID), slog.Any("error", err))

		return err
	}

	srv.log(ctx).Info("Password changed", slog.Any("userID", userID))

	return nil
}

// DeleteUser soft-deletes the account and ends all its sessions. The
// row and the user's contacts stay in the database.
func (srv *userService) DeleteUser(ctx context.Context, id string) error {
	userID, err := parseID(id, domainerrors.ErrUserNotFound)
	if err != nil {
		return err
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.UserRepo().SetActive(ctx, userID, false); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to deactivate user")
		}

		return repoFactory.RefreshTokenRepo().DeleteByUserID(ctx, userID)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to delete user", slog.Any("userID", userID), slog.Any("error", err))

		return err
	}

	srv.log(ctx).Info("User soft-deleted", slog.Any("userID", userID))

	return nil
}

// RestoreUser reactivates a soft-deleted account.
func (srv *userService) RestoreUser(ctx context.Context, id string) error {
	userID, err := parseID(id, domainerrors.ErrUserNotFound)
	if err != nil {
		return err
	}

	if err := srv.userRepo.SetActive(ctx, userID, true); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to restore user")
	}

	srv.log(ctx).Info("User restored", slog.Any("userID", userID))

	return nil
}

// preparePasswordHash runs the shared password pipeline: confirmation
// match, strength check, then hashing.
func (srv *userService) preparePasswordHash(password, confirm string) (string, error) {
	if password != confirm {
		return "", domainerrors.ErrPasswordMismatch
	}
	if err := srv.hasher.ValidateStrength(password); err != nil {
		return "", err
	}

	hash, err := srv.hasher.Hash(password)
	if err != nil {
		return "", domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	return hash, nil
}

// toUserOutput maps a domain user to its external representation.
func toUserOutput(user *entity.User) *usecase.UserOutput {
	return &usecase.UserOutput{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		IsStaff:   user.IsStaff,
		Active:    user.Active,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
