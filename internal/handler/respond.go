package handler

import (
	"errors"
	"net/http"

	"hfrat-service/internal/model"
	"hfrat-service/internal/service"

	"github.com/labstack/echo/v4"
)

// respondError maps the service error taxonomy onto HTTP responses:
// validation and conflicts are 400 with field-keyed messages, unknown
// records are 404, everything else is a 500 with a generic body.
func respondError(c echo.Context, err error) error {
	if ve, ok := service.AsValidationError(err); ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": ve.Fields})
	}
	switch {
	case errors.Is(err, service.ErrSelfDelete):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "You cannot delete your own account."})
	case errors.Is(err, model.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, model.ErrDuplicate):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "duplicate record"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
}
