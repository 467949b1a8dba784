package http

import (
	"errors"
	"net/http"

	"auto-loan-contracts/internal/domain/apperr"
	"auto-loan-contracts/internal/platform/logger"

	"github.com/labstack/echo/v4"
)

// statusOf maps domain errors to HTTP codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrIDMismatch),
		errors.Is(err, apperr.ErrInvalidScheduleInput),
		errors.Is(err, apperr.ErrInvalidNote):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrDuplicateContract),
		errors.Is(err, apperr.ErrDuplicateSchedule),
		errors.Is(err, apperr.ErrInvalidTransition),
		errors.Is(err, apperr.ErrAlreadyCancelled),
		errors.Is(err, apperr.ErrAlreadyInactive),
		errors.Is(err, apperr.ErrConcurrentModification),
		errors.Is(err, apperr.ErrScheduleIncomplete):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeError(c echo.Context, log *logger.Logger, err error) error {
	code := statusOf(err)
	if code == http.StatusInternalServerError {
		log.Error("request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			"err", err)
		return c.JSON(code, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(code, ErrorResponse{Error: err.Error()})
}
