package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"agenda/internal/delivery/http/validator"
	domainerrors "agenda/internal/domain/errors"
	"agenda/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubUserUsecase records the inputs it receives and returns canned
// outputs, so the tests can focus on the HTTP layer.
type stubUserUsecase struct {
	registerInput *usecase.RegisterUserInput
	createInput   *usecase.CreateUserInput
}

func (s *stubUserUsecase) Register(_ context.Context, input *usecase.RegisterUserInput) (*usecase.UserOutput, error) {
	s.registerInput = input

	return &usecase.UserOutput{ID: uuid.NewString(), Username: input.Username, Active: true}, nil
}

func (s *stubUserUsecase) CreateUser(_ context.Context, input *usecase.CreateUserInput) (*usecase.UserOutput, error) {
	s.createInput = input

	return &usecase.UserOutput{
		ID:       uuid.NewString(),
		Username: input.Username,
		IsStaff:  input.IsStaff,
		Active:   true,
	}, nil
}

func (s *stubUserUsecase) GetUser(_ context.Context, _ string) (*usecase.UserOutput, error) {
	return nil, domainerrors.ErrUserNotFound
}

func (s *stubUserUsecase) ListUsers(_ context.Context, _ *usecase.ListUsersInput) (*usecase.PageOutput[*usecase.UserOutput], error) {
	return &usecase.PageOutput[*usecase.UserOutput]{}, nil
}

func (s *stubUserUsecase) UpdateUser(_ context.Context, _ *usecase.UpdateUserInput) (*usecase.UserOutput, error) {
	return nil, domainerrors.ErrUserNotFound
}

func (s *stubUserUsecase) SetPassword(_ context.Context, _ *usecase.SetPasswordInput) error {
	return nil
}

func (s *stubUserUsecase) DeleteUser(_ context.Context, _ string) error {
	return nil
}

func (s *stubUserUsecase) RestoreUser(_ context.Context, _ string) error {
	return nil
}

func newUserTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func newUserHandlerForTest() (*UserHandler, *stubUserUsecase) {
	uc := &stubUserUsecase{}

	return NewUserHandler(uc, slog.Default()), uc
}

func TestUserHandler_Create_GrantsStaff(t *testing.T) {
	h, uc := newUserHandlerForTest()

	body := `{"username":"admin","email":"admin@example.com","password":"correct horse","password_confirm":"correct horse","is_staff":true}`
	c, rec := newUserTestContext(t, http.MethodPost, "/users", body)

	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.createInput)
	assert.True(t, uc.createInput.IsStaff)
	assert.Contains(t, rec.Body.String(), `"is_staff":true`)
}

func TestUserHandler_Register_IgnoresStaffFlag(t *testing.T) {
	h, uc := newUserHandlerForTest()

	// Self-registration has no staff field to bind, so a smuggled
	// is_staff in the payload must not reach the usecase.
	body := `{"username":"mallory","email":"mallory@example.com","password":"correct horse","password_confirm":"correct horse","is_staff":true}`
	c, rec := newUserTestContext(t, http.MethodPost, "/auth/register", body)

	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.registerInput)
	assert.Nil(t, uc.createInput, "self-registration must never use the staff creation path")
	assert.Contains(t, rec.Body.String(), `"is_staff":false`)
}

func TestUserHandler_Create_MissingFields(t *testing.T) {
	h, uc := newUserHandlerForTest()

	c, _ := newUserTestContext(t, http.MethodPost, "/users", `{"username":"admin"}`)
	err := h.Create(c)

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	assert.Nil(t, uc.createInput)
}
