package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mkx/community/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new account. The user still has to log in afterwards.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration form"
// @Success      201   {object}  accountEnvelope
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	acc, err := h.authService.Register(c.Request().Context(), toRegisterInput(req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, accountEnvelope{
		Notice: notice{
			OK:              true,
			Level:           levelSuccess,
			Message:         "registration successful, please log in",
			Redirect:        "login.html",
			RedirectAfterMS: redirectDelayMS,
		},
		Account: toAccountResponse(*acc),
	})
}

// Login makes the matching account the active session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionEnvelope
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	session, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sessionEnvelope{
		Notice: notice{
			OK:              true,
			Level:           levelSuccess,
			Message:         "login successful, welcome back " + session.Username,
			Redirect:        "index.html",
			RedirectAfterMS: redirectDelayMS,
			PromptAvatar:    session.Avatar == "",
		},
		Session: toSessionResponse(session),
	})
}

// Logout ends the session. Logging out while anonymous is harmless.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionEnvelope
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context()); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sessionEnvelope{
		Notice: notice{
			OK:       true,
			Level:    levelInfo,
			Message:  "logged out",
			Redirect: "index.html",
		},
		Anonymous: true,
	})
}

// Session reports who is logged in.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionEnvelope
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	session := ctxSession(c)

	msg := "not logged in"
	if !session.Anonymous() {
		msg = "logged in as " + session.Username
	}
	return c.JSON(http.StatusOK, sessionEnvelope{
		Notice:    notice{OK: true, Level: levelInfo, Message: msg},
		Anonymous: session.Anonymous(),
		Session:   toSessionResponse(session),
	})
}
