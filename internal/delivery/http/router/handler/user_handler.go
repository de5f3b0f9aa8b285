package handler

import (
	"log/slog"
	"net/http"

	"agenda/internal/delivery/http/response"
	"agenda/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for user account handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{uc: uc, logger: logger}
}

// Register handles the user registration request.
func (h *UserHandler) Register(c echo.Context) error {
	input := new(usecase.RegisterUserInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Register(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "User registered successfully")
}

// Create provisions an account on behalf of staff. Unlike Register it
// may grant the staff role; the route enforces staff-only access.
func (h *UserHandler) Create(c echo.Context) error {
	input := new(usecase.CreateUserInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.CreateUser(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "User created successfully")
}

// Get returns one user. Callers may read their own account; staff may
// read anyone's.
func (h *UserHandler) Get(c echo.Context) error {
	id := c.Param("id")
	if err := requireSelfOrStaff(c, id); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.GetUser(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}

// List returns one page of users. Staff only; the route enforces it.
func (h *UserHandler) List(c echo.Context) error {
	input := &usecase.ListUsersInput{ListInput: bindListInput(c)}

	output, err := h.uc.ListUsers(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}

// Update applies a partial update to a user's profile fields.
func (h *UserHandler) Update(c echo.Context) error {
	id := c.Param("id")
	if err := requireSelfOrStaff(c, id); err != nil {
		return errors.WithStack(err)
	}

	input := new(usecase.UpdateUserInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user update input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}
	input.ID = id

	output, err := h.uc.UpdateUser(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "User updated successfully")
}

// SetPassword replaces a user's password.
func (h *UserHandler) SetPassword(c echo.Context) error {
	id := c.Param("id")
	if err := requireSelfOrStaff(c, id); err != nil {
		return errors.WithStack(err)
	}

	input := new(usecase.SetPasswordInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}
	input.UserID = id

	if err := h.uc.SetPassword(c.Request().Context(), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password changed successfully")
}

// Delete soft-deletes a user account.
func (h *UserHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := requireSelfOrStaff(c, id); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.DeleteUser(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "User deleted successfully")
}

// Restore reactivates a soft-deleted account. Staff only; the route
// enforces it.
func (h *UserHandler) Restore(c echo.Context) error {
	if err := h.uc.RestoreUser(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "User restored successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
