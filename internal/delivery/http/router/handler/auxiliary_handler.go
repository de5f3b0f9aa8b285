package handler

import (
	"log/slog"
	"net/http"

	"agenda/internal/delivery/http/response"
	"agenda/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuxiliaryHandler serves the six auxiliary collections through one
// uniform set of handlers. The route registration binds each handler
// to its collection name.
type AuxiliaryHandler struct {
	uc     usecase.AuxiliaryUsecase
	logger *slog.Logger
}

// NewAuxiliaryHandler is the constructor for AuxiliaryHandler, injected by Fx.
func NewAuxiliaryHandler(uc usecase.AuxiliaryUsecase, logger *slog.Logger) *AuxiliaryHandler {
	return &AuxiliaryHandler{uc: uc, logger: logger}
}

// Create handles item creation for the given collection.
func (h *AuxiliaryHandler) Create(collection string) echo.HandlerFunc {
	return func(c echo.Context) error {
		input := new(usecase.AuxiliaryItemInput)
		if err := c.Bind(input); err != nil {
			return response.BindingError(c, "INVALID_INPUT", "Invalid item input")
		}
		if err := c.Validate(input); err != nil {
			return errors.WithStack(err)
		}

		output, err := h.uc.Create(c.Request().Context(), collection, input)
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusCreated, output, "Item created successfully")
	}
}

// Get retrieves one item by id, active or not.
func (h *AuxiliaryHandler) Get(collection string) echo.HandlerFunc {
	return func(c echo.Context) error {
		output, err := h.uc.Get(c.Request().Context(), collection, c.Param("id"))
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, output, "Item retrieved successfully")
	}
}

// List returns one page of items from the given collection.
func (h *AuxiliaryHandler) List(collection string) echo.HandlerFunc {
	return func(c echo.Context) error {
		input := bindListInput(c)

		output, err := h.uc.List(c.Request().Context(), collection, &input)
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, output, "Items retrieved successfully")
	}
}

// Update replaces an item's value and kind.
func (h *AuxiliaryHandler) Update(collection string) echo.HandlerFunc {
	return func(c echo.Context) error {
		input := new(usecase.AuxiliaryItemInput)
		if err := c.Bind(input); err != nil {
			return response.BindingError(c, "INVALID_INPUT", "Invalid item input")
		}
		if err := c.Validate(input); err != nil {
			return errors.WithStack(err)
		}

		output, err := h.uc.Update(c.Request().Context(), collection, c.Param("id"), input)
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, output, "Item updated successfully")
	}
}

// Delete soft-deletes an item.
func (h *AuxiliaryHandler) Delete(collection string) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := h.uc.Delete(c.Request().Context(), collection, c.Param("id")); err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, nil, "Item deleted successfully")
	}
}

// Restore reactivates a soft-deleted item.
func (h *AuxiliaryHandler) Restore(collection string) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := h.uc.Restore(c.Request().Context(), collection, c.Param("id")); err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, nil, "Item restored successfully")
	}
}
