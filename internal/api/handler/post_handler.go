package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mkx/community/internal/core/ports"
)

// PostHandler handles HTTP requests for the feed.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// List returns the feed, newest first.
//
// @Summary      List posts
// @Tags         posts
// @Produce      json
// @Param        limit  query     int  false  "Maximum number of posts, 0 for all"
// @Success      200    {object}  postListEnvelope
// @Failure      400    {object}  ErrorResponse
// @Router       /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	var q listPostsQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	posts, err := h.service.ListPosts(c.Request().Context(), q.Limit)
	if err != nil {
		return err
	}

	msg := ""
	if len(posts) == 0 {
		msg = "no posts yet"
	}
	return c.JSON(http.StatusOK, postListEnvelope{
		Notice: notice{OK: true, Level: levelInfo, Message: msg},
		Posts:  toPostResponses(posts),
		Count:  len(posts),
	})
}

// Create publishes a post as the session user.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        body  body      createPostRequest  true  "Post fields; links is comma separated"
// @Success      201   {object}  postEnvelope
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	post, err := h.service.CreatePost(c.Request().Context(), ctxSession(c), toCreatePostInput(req))
	if err != nil {
		return err
	}

	resp := toPostResponse(*post)
	return c.JSON(http.StatusCreated, postEnvelope{
		Notice: notice{
			OK:              true,
			Level:           levelSuccess,
			Message:         "post published",
			Redirect:        "index.html",
			RedirectAfterMS: redirectDelayMS,
		},
		Post: &resp,
	})
}

// Get returns a single post.
//
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  postEnvelope
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	post, err := h.service.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	resp := toPostResponse(*post)
	return c.JSON(http.StatusOK, postEnvelope{
		Notice: notice{OK: true, Level: levelInfo},
		Post:   &resp,
	})
}

// Delete removes a post owned by the session user.
//
// @Summary      Delete a post
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  postEnvelope
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	if err := h.service.DeletePost(c.Request().Context(), ctxSession(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, postEnvelope{
		Notice: notice{
			OK:      true,
			Level:   levelSuccess,
			Message: "post deleted",
			Refresh: true,
		},
	})
}

// View counts a view of the post.
//
// @Summary      Record a view
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  postEnvelope
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id}/view [post]
func (h *PostHandler) View(c echo.Context) error {
	post, err := h.service.RecordView(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	resp := toPostResponse(*post)
	return c.JSON(http.StatusOK, postEnvelope{
		Notice: notice{OK: true, Level: levelInfo},
		Post:   &resp,
	})
}

// Like toggles the session user's like on the post.
//
// @Summary      Toggle like
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  postEnvelope
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id}/like [post]
func (h *PostHandler) Like(c echo.Context) error {
	session := ctxSession(c)
	post, err := h.service.ToggleLike(c.Request().Context(), session, c.Param("id"))
	if err != nil {
		return err
	}

	msg := "like removed"
	if post.LikedByAccount(session.ID) {
		msg = "liked"
	}
	resp := toPostResponse(*post)
	return c.JSON(http.StatusOK, postEnvelope{
		Notice: notice{OK: true, Level: levelSuccess, Message: msg},
		Post:   &resp,
	})
}
