package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mkx/community/internal/core/domain"
)

type stubLoader struct {
	session *domain.Session
	err     error
}

func (s stubLoader) CurrentSession(context.Context) (*domain.Session, error) {
	return s.session, s.err
}

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSession_InjectsSession(t *testing.T) {
	c, rec := newContext()
	loader := stubLoader{session: domain.NewSession(domain.Account{ID: "1", Username: "张三"})}

	called := false
	handler := Session(loader)(func(c echo.Context) error {
		called = true
		s, _ := c.Get(SessionKey).(*domain.Session)
		if s == nil || s.ID != "1" {
			t.Fatalf("session not set: %+v", s)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSession_Anonymous(t *testing.T) {
	c, _ := newContext()

	handler := Session(stubLoader{})(func(c echo.Context) error {
		s, _ := c.Get(SessionKey).(*domain.Session)
		if !s.Anonymous() {
			t.Fatalf("expected anonymous")
		}
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestSession_LoadError(t *testing.T) {
	c, _ := newContext()
	boom := errors.New("store down")

	handler := Session(stubLoader{err: boom})(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != boom {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestRequireSession_Allows(t *testing.T) {
	c, _ := newContext()
	c.Set(SessionKey, domain.NewSession(domain.Account{ID: "1"}))

	called := false
	handler := RequireSession()(func(c echo.Context) error {
		called = true
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestRequireSession_RejectsAnonymous(t *testing.T) {
	c, _ := newContext()
	c.Set(SessionKey, (*domain.Session)(nil))

	handler := RequireSession()(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != domain.ErrNotAuthenticated {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}
