// Package handler contains the HTTP layer: request DTOs, binding and
// validation, and the mapping from domain errors to status codes.
package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartcampus/hub/internal/domain"
)

// fail translates a service error into the JSON error response for its
// domain kind.  Unrecognised errors become opaque 500s; their details
// stay in the server log, not the response.
func fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidArgument):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidState):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
	}
	c.Logger().Errorf("internal error: %v", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

// pathID parses a numeric path parameter, 0 when malformed.
func pathID(c echo.Context, name string) uint64 {
	var id uint64
	if err := echo.PathParamsBinder(c).Uint64(name, &id).BindError(); err != nil {
		return 0
	}
	return id
}
