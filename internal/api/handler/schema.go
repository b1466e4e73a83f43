package handler

import "time"

// notice tells the page what to show after an action: a toast, a delayed
// redirect, a feed re-render or the avatar picker.
type notice struct {
	OK              bool   `json:"ok"`
	Level           string `json:"level"`
	Message         string `json:"message"`
	Redirect        string `json:"redirect,omitempty"`
	RedirectAfterMS int    `json:"redirect_after_ms,omitempty"`
	Refresh         bool   `json:"refresh,omitempty"`
	PromptAvatar    bool   `json:"prompt_avatar,omitempty"`
}

// Notice levels.
const (
	levelSuccess = "success"
	levelInfo    = "info"
	levelError   = "error"
)

// Redirect delays used by the site pages.
const (
	redirectDelayMS = 1500
)

// ErrorResponse is the envelope returned on all 4xx/5xx responses.
type ErrorResponse struct {
	Notice notice `json:"notice"`
}

// NewErrorResponse builds a failure notice with an optional redirect target.
func NewErrorResponse(message, redirect string) ErrorResponse {
	return ErrorResponse{Notice: notice{
		OK:       false,
		Level:    levelError,
		Message:  message,
		Redirect: redirect,
	}}
}

// --- Request types ---

type registerRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type avatarRequest struct {
	// Image is a data: URI or an http(s) URL. Empty is left to the service.
	Image string `json:"image" validate:"omitempty,datauri|url"`
}

type createPostRequest struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Content     string `json:"content"`
	Links       string `json:"links"`
	ContentType string `json:"content_type"`
}

type listPostsQuery struct {
	Limit int `query:"limit" validate:"min=0"`
}

// --- Response types ---

type accountResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type authorResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

type commentResponse struct {
	ID        string         `json:"id"`
	Author    authorResponse `json:"author"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"created_at"`
}

type postResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Category    string            `json:"category"`
	Content     string            `json:"content"`
	Links       []string          `json:"links"`
	ContentType string            `json:"content_type"`
	Author      authorResponse    `json:"author"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Views       int               `json:"views"`
	Likes       int               `json:"likes"`
	LikedBy     []string          `json:"liked_by"`
	Comments    []commentResponse `json:"comments"`
}

type accountEnvelope struct {
	Notice  notice           `json:"notice"`
	Account *accountResponse `json:"account,omitempty"`
}

type sessionEnvelope struct {
	Notice    notice           `json:"notice"`
	Anonymous bool             `json:"anonymous"`
	Session   *accountResponse `json:"session"`
}

type postEnvelope struct {
	Notice notice        `json:"notice"`
	Post   *postResponse `json:"post,omitempty"`
}

type postListEnvelope struct {
	Notice notice         `json:"notice"`
	Posts  []postResponse `json:"posts"`
	Count  int            `json:"count"`
}

type avatarEnvelope struct {
	Notice         notice           `json:"notice"`
	Account        *accountResponse `json:"account"`
	AccountUpdated bool             `json:"account_updated"`
	PostsUpdated   int              `json:"posts_updated"`
}
