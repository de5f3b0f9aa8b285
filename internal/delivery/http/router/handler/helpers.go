// Package handler contains the HTTP handlers for the application.
package handler

import (
	"slices"
	"strconv"

	"agenda/internal/delivery/http/middleware"
	domainerrors "agenda/internal/domain/errors"
	"agenda/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// callerID returns the authenticated user's id set by the auth middleware.
func callerID(c echo.Context) (string, error) {
	id, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return "", domainerrors.ErrUnauthenticated
	}

	return id.String(), nil
}

// callerIsStaff reports whether the authenticated user carries the
// staff role.
func callerIsStaff(c echo.Context) bool {
	roles, ok := c.Get(middleware.ContextKeyRoles).([]string)

	return ok && slices.Contains(roles, "staff")
}

// requireSelfOrStaff allows a request to proceed when it targets the
// caller's own resource or the caller is staff.
func requireSelfOrStaff(c echo.Context, targetID string) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	if caller != targetID && !callerIsStaff(c) {
		return domainerrors.ErrForbidden
	}

	return nil
}

// bindListInput reads the common list query parameters. The unscoped
// switch is only honored for staff callers.
func bindListInput(c echo.Context) usecase.ListInput {
	input := usecase.ListInput{
		Search:   c.QueryParam("search"),
		Ordering: c.QueryParam("ordering"),
	}
	if page, err := strconv.Atoi(c.QueryParam("page")); err == nil {
		input.Page = page
	}
	if pageSize, err := strconv.Atoi(c.QueryParam("page_size")); err == nil {
		input.PageSize = pageSize
	}
	if includeInactive, err := strconv.ParseBool(c.QueryParam("include_inactive")); err == nil {
		input.IncludeInactive = includeInactive && callerIsStaff(c)
	}

	return input
}
