package handler

import (
	"log/slog"
	"net/http"

	"agenda/internal/delivery/http/response"
	"agenda/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ContactHandler holds dependencies for contact aggregate handlers.
type ContactHandler struct {
	uc     usecase.ContactUsecase
	logger *slog.Logger
}

// NewContactHandler is the constructor for ContactHandler, injected by Fx.
func NewContactHandler(uc usecase.ContactUsecase, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{uc: uc, logger: logger}
}

// Create handles the nested contact creation request. The whole payload,
// collections included, is persisted in one step.
func (h *ContactHandler) Create(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	input := new(usecase.CreateContactInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid contact input")
	}
	input.OwnerID = caller
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.CreateContact(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Contact created successfully")
}

// Get returns one of the caller's active contacts in full.
func (h *ContactHandler) Get(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.GetContact(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Contact retrieved successfully")
}

// List returns one page of the caller's active contacts in the
// flattened list shape.
func (h *ContactHandler) List(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	input := &usecase.ListContactsInput{
		ListInput: bindListInput(c),
		OwnerID:   caller,
	}

	output, err := h.uc.ListContacts(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Contacts retrieved successfully")
}

// Update applies a partial update to one of the caller's contacts.
// Collection entries in the payload are appended, never removed.
func (h *ContactHandler) Update(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	input := new(usecase.UpdateContactInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid contact input")
	}
	input.ID = c.Param("id")
	input.OwnerID = caller
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.UpdateContact(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Contact updated successfully")
}

// Delete soft-deletes one of the caller's contacts.
func (h *ContactHandler) Delete(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.DeleteContact(c.Request().Context(), caller, c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Contact deleted successfully")
}

// Restore reactivates one of the caller's soft-deleted contacts.
func (h *ContactHandler) Restore(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.RestoreContact(c.Request().Context(), caller, c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Contact restored successfully")
}

// VCardQR renders one of the caller's contacts as a vCard QR code.
func (h *ContactHandler) VCardQR(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	png, err := h.uc.ContactVCardQR(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
