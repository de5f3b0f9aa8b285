package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"agenda/internal/domain/entity"
	domainerrors "agenda/internal/domain/errors"
	"agenda/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newUserServiceForTest(t *testing.T) (usecase.UserUsecase, *fakeRepoFactory) {
	t.Helper()
	factory := newFakeRepoFactory()
	svc := NewUserService(UserServiceParams{
		TxManager: &fakeTxManager{factory: factory},
		UserRepo:  factory.userRepo,
		Hasher:    fakeHasher{},
		Logger:    discardLogger(),
	})

	return svc, factory
}

func registerTestUser(t *testing.T, svc usecase.UserUsecase, username string) *usecase.UserOutput {
	t.Helper()
	output, err := svc.Register(context.Background(), &usecase.RegisterUserInput{
		Username:        username,
		Email:           username + "@example.com",
		Password:        "correct horse",
		PasswordConfirm: "correct horse",
	})
	require.NoError(t, err)

	return output
}

func TestUserService_Register_Success(t *testing.T) {
	svc, factory := newUserServiceForTest(t)

	output := registerTestUser(t, svc, "alice")

	assert.Equal(t, "alice", output.Username)
	assert.Equal(t, "alice@example.com", output.Email)
	assert.True(t, output.Active)
	assert.False(t, output.IsStaff)

	stored, err := factory.userRepo.FindByID(context.Background(), uuid.MustParse(output.ID))
	require.NoError(t, err)
	assert.Equal(t, "hashed:correct horse", stored.PasswordHash)
}

func TestUserService_Register_PasswordMismatch(t *testing.T) {
	svc, _ := newUserServiceForTest(t)

	_, err := svc.Register(context.Background(), &usecase.RegisterUserInput{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "correct horse",
		PasswordConfirm: "wrong horse",
	})

	assert.ErrorIs(t, err, domainerrors.ErrPasswordMismatch)
}

func TestUserService_Register_PasswordTooShort(t *testing.T) {
	svc, _ := newUserServiceForTest(t)

	_, err := svc.Register(context.Background(), &usecase.RegisterUserInput{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "short",
		PasswordConfirm: "short",
	})

	assert.ErrorIs(t, err, domainerrors.ErrPasswordTooShort)
}

func TestUserService_Register_Duplicate(t *testing.T) {
	svc, _ := newUserServiceForTest(t)
	registerTestUser(t, svc, "alice")

	_, err := svc.Register(context.Background(), &usecase.RegisterUserInput{
		Username:        "alice",
		Email:           "other@example.com",
		Password:        "correct horse",
		PasswordConfirm: "correct horse",
	})

	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestUserService_GetUser_MalformedID(t *testing.T) {
	svc, _ := newUserServiceForTest(t)

	_, err := svc.GetUser(context.Background(), "not-a-uuid")

	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_UpdateUser_PartialFields(t *testing.T) {
	svc, _ := newUserServiceForTest(t)
	created := registerTestUser(t, svc, "alice")

	newUsername := "alice2"
	output, err := svc.UpdateUser(context.Background(), &usecase.UpdateUserInput{
		ID:       created.ID,
		Username: &newUsername,
	})

	require.NoError(t, err)
	assert.Equal(t, "alice2", output.Username)
	assert.Equal(t, "alice@example.com", output.Email, "nil pointer must leave the field unchanged")
}

func TestUserService_SetPassword_EndsSessions(t *testing.T) {
	svc, factory := newUserServiceForTest(t)
	created := registerTestUser(t, svc, "alice")
	userID := uuid.MustParse(created.ID)

	require.NoError(t, factory.refreshTokenRepo.Create(context.Background(), &entity.RefreshToken{
		UserID:    userID,
		TokenHash: "stale-session",
	}))

	err := svc.SetPassword(context.Background(), &usecase.SetPasswordInput{
		UserID:          created.ID,
		Password:        "brand new pass",
		PasswordConfirm: "brand new pass",
	})
	require.NoError(t, err)

	stored, err := factory.userRepo.FindByID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "hashed:brand new pass", stored.PasswordHash)
	assert.Empty(t, factory.refreshTokenRepo.tokens, "password change must end all sessions")
}

func TestUserService_SetPassword_Mismatch(t *testing.T) {
	svc, _ := newUserServiceForTest(t)
	created := registerTestUser(t, svc, "alice")

	err := svc.SetPassword(context.Background(), &usecase.SetPasswordInput{
		UserID:          created.ID,
		Password:        "brand new pass",
		PasswordConfirm: "different pass",
	})

	assert.ErrorIs(t, err, domainerrors.ErrPasswordMismatch)
}

func TestUserService_DeleteUser_SoftDeletesAndEndsSessions(t *testing.T) {
	svc, factory := newUserServiceForTest(t)
	created := registerTestUser(t, svc, "alice")
	userID := uuid.MustParse(created.ID)

	require.NoError(t, factory.refreshTokenRepo.Create(context.Background(), &entity.RefreshToken{
		UserID:    userID,
		TokenHash: "live-session",
	}))

	require.NoError(t, svc.DeleteUser(context.Background(), created.ID))

	stored, err := factory.userRepo.FindByID(context.Background(), userID)
	require.NoError(t, err, "soft-deleted user must stay retrievable by id")
	assert.False(t, stored.IsActive())
	assert.Empty(t, factory.refreshTokenRepo.tokens)
}

func TestUserService_ListUsers_ScopeFiltersInactive(t *testing.T) {
	svc, _ := newUserServiceForTest(t)
	registerTestUser(t, svc, "alice")
	deleted := registerTestUser(t, svc, "bob")
	require.NoError(t, svc.DeleteUser(context.Background(), deleted.ID))

	active, err := svc.ListUsers(context.Background(), &usecase.ListUsersInput{})
	require.NoError(t, err)
	assert.Len(t, active.Items, 1)

	all, err := svc.ListUsers(context.Background(), &usecase.ListUsersInput{
		ListInput: usecase.ListInput{IncludeInactive: true},
	})
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)
}

func TestUserService_RestoreUser(t *testing.T) {
	svc, _ := newUserServiceForTest(t)
	created := registerTestUser(t, svc, "alice")

	require.NoError(t, svc.DeleteUser(context.Background(), created.ID))
	require.NoError(t, svc.RestoreUser(context.Background(), created.ID))

	output, err := svc.GetUser(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, output.Active)
}

func TestUserService_CreateUser_GrantsStaff(t *testing.T) {
	svc, factory := newUserServiceForTest(t)

	output, err := svc.CreateUser(context.Background(), &usecase.CreateUserInput{
		RegisterUserInput: usecase.RegisterUserInput{
			Username:        "admin",
			Email:           "admin@example.com",
			Password:        "correct horse",
			PasswordConfirm: "correct horse",
		},
		IsStaff: true,
	})

	require.NoError(t, err)
	assert.True(t, output.IsStaff)

	stored := factory.userRepo.users[uuid.MustParse(output.ID)]
	require.NotNil(t, stored)
	assert.True(t, stored.IsStaff)
	assert.True(t, stored.IsActive())
}

func TestUserService_Register_NeverGrantsStaff(t *testing.T) {
	svc, factory := newUserServiceForTest(t)

	output := registerTestUser(t, svc, "alice")

	assert.False(t, output.IsStaff)
	assert.False(t, factory.userRepo.users[uuid.MustParse(output.ID)].IsStaff)
}
