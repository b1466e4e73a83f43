package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mkx/community/internal/core/ports"
)

type AvatarHandler struct {
	service ports.AvatarService
}

func NewAvatarHandler(service ports.AvatarService) *AvatarHandler {
	return &AvatarHandler{service: service}
}

// Set replaces the session user's avatar and rewrites it on their posts.
//
// @Summary      Set avatar
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        body  body      avatarRequest  true  "Image as data URI or URL"
// @Success      200   {object}  avatarEnvelope
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /account/avatar [put]
func (h *AvatarHandler) Set(c echo.Context) error {
	var req avatarRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.service.SetAvatar(c.Request().Context(), ctxSession(c), req.Image)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, avatarEnvelope{
		Notice: notice{
			OK:      true,
			Level:   levelSuccess,
			Message: "avatar updated",
			Refresh: true,
		},
		Account:        toSessionResponse(res.Session),
		AccountUpdated: res.AccountUpdated,
		PostsUpdated:   res.PostsUpdated,
	})
}
