package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/mkx/community/internal/core/domain"
)

// SessionKey is the echo context key holding the *domain.Session of the
// request; nil means anonymous.
const SessionKey = "session"

// SessionLoader reads the persisted session.
type SessionLoader interface {
	CurrentSession(ctx context.Context) (*domain.Session, error)
}

// Session loads the active session and injects it into the context. It must
// run inside Serialize so the session cannot change under the handler.
func Session(loader SessionLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, err := loader.CurrentSession(c.Request().Context())
			if err != nil {
				return err
			}
			c.Set(SessionKey, session)
			return next(c)
		}
	}
}

// RequireSession rejects anonymous visitors before the handler runs.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, _ := c.Get(SessionKey).(*domain.Session)
			if session.Anonymous() {
				return domain.ErrNotAuthenticated
			}
			return next(c)
		}
	}
}
