package ports

import (
	"context"

	"github.com/mkx/community/internal/core/domain"
)

// CreatePostInput carries the submission form. Links is the raw
// comma-delimited field.
type CreatePostInput struct {
	Title       string
	Category    string
	Content     string
	Links       string
	ContentType string
}

// PostService owns the posts collection.
type PostService interface {
	CreatePost(ctx context.Context, session *domain.Session, in CreatePostInput) (*domain.Post, error)
	DeletePost(ctx context.Context, session *domain.Session, postID string) error
	// ListPosts returns posts newest first; limit <= 0 returns all of them.
	ListPosts(ctx context.Context, limit int) ([]domain.Post, error)
	GetPost(ctx context.Context, postID string) (*domain.Post, error)
	RecordView(ctx context.Context, postID string) (*domain.Post, error)
	ToggleLike(ctx context.Context, session *domain.Session, postID string) (*domain.Post, error)
}

// AvatarResult reports the outcome of an avatar change.
type AvatarResult struct {
	Session *domain.Session
	// AccountUpdated is false when the session's account was no longer in
	// the users collection.
	AccountUpdated bool
	// PostsUpdated counts posts whose author snapshot was rewritten.
	PostsUpdated int
}

// AvatarService changes the session user's avatar everywhere it is copied.
type AvatarService interface {
	SetAvatar(ctx context.Context, session *domain.Session, image string) (*AvatarResult, error)
}
