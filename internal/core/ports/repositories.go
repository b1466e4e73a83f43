package ports

import (
	"context"

	"github.com/mkx/community/internal/core/domain"
)

// AccountRepository reads and rewrites the whole users collection.
type AccountRepository interface {
	List(ctx context.Context) ([]domain.Account, error)
	SaveAll(ctx context.Context, accounts []domain.Account) error
}

// SessionRepository persists the single active session.
type SessionRepository interface {
	// Load returns nil when nobody is logged in.
	Load(ctx context.Context) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Clear(ctx context.Context) error
}

// PostRepository reads and rewrites the whole posts collection, newest first.
type PostRepository interface {
	List(ctx context.Context) ([]domain.Post, error)
	SaveAll(ctx context.Context, posts []domain.Post) error
}
