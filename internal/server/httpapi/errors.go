package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/dogcatalog/internal/common"
	"github.com/labstack/echo/v4"
)

type messageResponse struct {
	Message string `json:"message"`
}

func message(m string) messageResponse {
	return messageResponse{Message: m}
}

// writeError is the single place where service errors become statuses.
// Anything unrecognised is logged with its cause and reported as a bare 500.
func (s *Server) writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorBadRequest):
		return c.JSON(http.StatusBadRequest, message(err.Error()))
	case errors.Is(err, common.ErrorNotFound):
		return c.JSON(http.StatusNotFound, message("Dog not found"))
	case errors.Is(err, common.ErrorUnauthorized):
		return c.JSON(http.StatusUnauthorized, message("Unauthorized"))
	case errors.Is(err, common.ErrorConflict):
		s.logger.Warn(c.Request().Context(), "registration conflict", "error", err)
		if s.conflictStatus == http.StatusConflict {
			return c.JSON(http.StatusConflict, message("Username already exists"))
		}
	default:
		s.logger.Error(c.Request().Context(), "request failed", "path", c.Path(), "error", err)
	}
	return c.JSON(http.StatusInternalServerError, message("Internal Server Error"))
}
