package impl

import (
	"context"
	"testing"

	"agenda/internal/domain/entity"
	domainerrors "agenda/internal/domain/errors"
	"agenda/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionServiceForTest(t *testing.T) (usecase.SessionUsecase, *fakeRepoFactory, *fakeTokenService) {
	t.Helper()
	factory := newFakeRepoFactory()
	tokens := newFakeTokenService()
	svc := NewSessionService(SessionServiceParams{
		TxManager:        &fakeTxManager{factory: factory},
		UserRepo:         factory.userRepo,
		RefreshTokenRepo: factory.refreshTokenRepo,
		Hasher:           fakeHasher{},
		TokenService:     tokens,
		Logger:           discardLogger(),
	})

	return svc, factory, tokens
}

func seedActiveUser(t *testing.T, factory *fakeRepoFactory, username string) *entity.User {
	t.Helper()
	user := &entity.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashed:correct horse",
	}
	user.Restore()
	require.NoError(t, factory.userRepo.Create(context.Background(), user))

	return user
}

func TestSessionService_Login_Success(t *testing.T) {
	svc, factory, _ := newSessionServiceForTest(t)
	seedActiveUser(t, factory, "alice")

	output, err := svc.Login(context.Background(), &usecase.LoginInput{
		Username: "alice",
		Password: "correct horse",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, output.AccessToken)
	assert.NotEmpty(t, output.RefreshToken)
	assert.Equal(t, "alice", output.User.Username)
	assert.Len(t, factory.refreshTokenRepo.tokens, 1, "login must store the session")
}

func TestSessionService_Login_WrongPassword(t *testing.T) {
	svc, factory, _ := newSessionServiceForTest(t)
	seedActiveUser(t, factory, "alice")

	_, err := svc.Login(context.Background(), &usecase.LoginInput{
		Username: "alice",
		Password: "wrong horse",
	})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestSessionService_Login_UnknownUser(t *testing.T) {
	svc, _, _ := newSessionServiceForTest(t)

	_, err := svc.Login(context.Background(), &usecase.LoginInput{
		Username: "nobody",
		Password: "correct horse",
	})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestSessionService_Login_InactiveUser(t *testing.T) {
	svc, factory, _ := newSessionServiceForTest(t)
	user := seedActiveUser(t, factory, "alice")
	require.NoError(t, factory.userRepo.SetActive(context.Background(), user.ID, false))

	_, err := svc.Login(context.Background(), &usecase.LoginInput{
		Username: "alice",
		Password: "correct horse",
	})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestSessionService_Refresh_RotatesToken(t *testing.T) {
	svc, factory, _ := newSessionServiceForTest(t)
	seedActiveUser(t, factory, "alice")

	login, err := svc.Login(context.Background(), &usecase.LoginInput{
		Username: "alice",
		Password: "correct horse",
	})
	require.NoError(t, err)

	rotated, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, rotated.RefreshToken)
	assert.Len(t, factory.refreshTokenRepo.tokens, 1, "rotation must replace the stored session")

	// The redeemed token must not work a second time.
	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestSessionService_Refresh_RejectsAccessToken(t *testing.T) {
	svc, factory, _ := newSessionServiceForTest(t)
	seedActiveUser(t, factory, "alice")

	login, err := svc.Login(context.Background(), &usecase.LoginInput{
		Username: "alice",
		Password: "correct horse",
	})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), login.AccessToken)
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestSessionService_Refresh_InactiveUser(t *testing.T) {
	svc, factory, _ := newSessionServiceForTest(t)
	user := seedActiveUser(t, factory, "alice")

	login, err := svc.Login(context.Background(), &usecase.LoginInput{
		Username: "alice",
		Password: "correct horse",
	})
	require.NoError(t, err)

	require.NoError(t, factory.userRepo.SetActive(context.Background(), user.ID, false))

	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestSessionService_Logout_EndsSession(t *testing.T) {
	svc, factory, _ := newSessionServiceForTest(t)
	seedActiveUser(t, factory, "alice")

	login, err := svc.Login(context.Background(), &usecase.LoginInput{
		Username: "alice",
		Password: "correct horse",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), login.RefreshToken))
	assert.Empty(t, factory.refreshTokenRepo.tokens)

	// Logging out twice reports the token as invalid.
	err = svc.Logout(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestSessionService_LogoutAll(t *testing.T) {
	svc, factory, _ := newSessionServiceForTest(t)
	user := seedActiveUser(t, factory, "alice")

	for range 3 {
		_, err := svc.Login(context.Background(), &usecase.LoginInput{
			Username: "alice",
			Password: "correct horse",
		})
		require.NoError(t, err)
	}
	require.Len(t, factory.refreshTokenRepo.tokens, 3)

	require.NoError(t, svc.LogoutAll(context.Background(), user.ID.String()))
	assert.Empty(t, factory.refreshTokenRepo.tokens)
}

func TestSessionService_Login_StaffGetsStaffRole(t *testing.T) {
	svc, factory, tokens := newSessionServiceForTest(t)
	admin := seedActiveUser(t, factory, "admin")
	admin.IsStaff = true

	output, err := svc.Login(context.Background(), &usecase.LoginInput{
		Username: "admin",
		Password: "correct horse",
	})

	require.NoError(t, err)
	claims := tokens.issued[output.AccessToken]
	require.NotNil(t, claims)
	assert.Contains(t, claims.Roles, RoleStaff)
}

func TestSessionService_Login_RegularUserHasNoStaffRole(t *testing.T) {
	svc, factory, tokens := newSessionServiceForTest(t)
	seedActiveUser(t, factory, "alice")

	output, err := svc.Login(context.Background(), &usecase.LoginInput{
		Username: "alice",
		Password: "correct horse",
	})

	require.NoError(t, err)
	claims := tokens.issued[output.AccessToken]
	require.NotNil(t, claims)
	assert.Equal(t, []string{RoleUser}, claims.Roles)
}
