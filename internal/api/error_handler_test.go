package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mkx/community/internal/core/domain"
)

func TestHTTPErrorHandler_StatusMapping(t *testing.T) {
	cases := []struct {
		err      error
		code     int
		message  string
		redirect string
	}{
		{domain.ErrMissingFields, http.StatusBadRequest, domain.ErrMissingFields.Error(), ""},
		{domain.ErrMissingAvatar, http.StatusBadRequest, domain.ErrMissingAvatar.Error(), ""},
		{domain.ErrUsernameTaken, http.StatusConflict, domain.ErrUsernameTaken.Error(), ""},
		{domain.ErrEmailTaken, http.StatusConflict, domain.ErrEmailTaken.Error(), ""},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "incorrect email or password", ""},
		{domain.ErrNotAuthenticated, http.StatusUnauthorized, "please log in first", "login.html"},
		{domain.ErrForbidden, http.StatusForbidden, "you can only delete your own posts", ""},
		{domain.ErrPostNotFound, http.StatusNotFound, domain.ErrPostNotFound.Error(), ""},
		{fmt.Errorf("delete post: %w", domain.ErrPostNotFound), http.StatusNotFound, domain.ErrPostNotFound.Error(), ""},
		{echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload", ""},
		{errors.New("redis: connection refused"), http.StatusInternalServerError, "internal server error", ""},
	}

	h := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		h(tc.err, c)

		if rec.Code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
		var resp struct {
			Notice struct {
				OK       bool   `json:"ok"`
				Level    string `json:"level"`
				Message  string `json:"message"`
				Redirect string `json:"redirect"`
			} `json:"notice"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if resp.Notice.OK || resp.Notice.Level != "error" {
			t.Fatalf("%v: expected failure notice, got %+v", tc.err, resp.Notice)
		}
		if resp.Notice.Message != tc.message || resp.Notice.Redirect != tc.redirect {
			t.Fatalf("%v: unexpected notice %+v", tc.err, resp.Notice)
		}
	}
}
