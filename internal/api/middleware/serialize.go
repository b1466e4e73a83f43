package middleware

import (
	"context"

	"github.com/labstack/echo/v4"
)

// Runner executes operations one at a time.
type Runner interface {
	Do(ctx context.Context, fn func(context.Context) error) error
}

// Serialize runs the rest of the chain on the runner, so the whole request,
// from session load to the last store write, executes without interleaving
// with any other serialized request.
func Serialize(r Runner) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return r.Do(c.Request().Context(), func(ctx context.Context) error {
				c.SetRequest(c.Request().WithContext(ctx))
				return next(c)
			})
		}
	}
}
