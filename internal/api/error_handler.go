package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mkx/community/internal/api/handler"
	"github.com/mkx/community/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain errors to their HTTP status codes by reason, then by class.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders every failure as a notice: {"notice": {"ok": false, ...}}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg, redirect := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, handler.NewErrorResponse(msg, redirect))
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, string) {
	// Echo's own errors (bind failures, 404 from router, validator, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), ""
	}

	var de *domain.Error
	if errors.As(err, &de) {
		switch {
		case errors.Is(err, domain.ErrUsernameTaken), errors.Is(err, domain.ErrEmailTaken):
			return http.StatusConflict, de.Error(), ""
		case errors.Is(err, domain.ErrNotAuthenticated):
			return http.StatusUnauthorized, de.Error(), "login.html"
		case errors.Is(err, domain.ErrValidation):
			return http.StatusBadRequest, de.Error(), ""
		case errors.Is(err, domain.ErrAuthentication):
			return http.StatusUnauthorized, de.Error(), ""
		case errors.Is(err, domain.ErrAuthorization):
			return http.StatusForbidden, de.Error(), ""
		case errors.Is(err, domain.ErrNotFound):
			return http.StatusNotFound, de.Error(), ""
		}
	}

	// The client went away before its turn on the executor.
	if errors.Is(err, context.Canceled) {
		return http.StatusServiceUnavailable, "request cancelled", ""
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error", ""
}
