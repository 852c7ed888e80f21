package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"toiletfinder/internal/errors"
)

// apiError converts a service error into the JSON error response.
func apiError(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func badRequest(message string) error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: message,
		Code:  "INVALID_REQUEST",
	})
}
