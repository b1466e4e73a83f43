package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/mkx/community/internal/api/middleware"
	"github.com/mkx/community/internal/core/domain"
)

// ctxSession returns the session injected by the Session middleware, or nil
// for an anonymous visitor.
func ctxSession(c echo.Context) *domain.Session {
	s, _ := c.Get(middleware.SessionKey).(*domain.Session)
	return s
}
