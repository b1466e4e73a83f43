package records

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mkx/community/internal/core/domain"
	"github.com/mkx/community/internal/core/ports"
)

// postsEnvelope is the stored shape of the posts record.
type postsEnvelope struct {
	Posts []domain.Post `json:"posts"`
}

// Posts is the posts record, newest first.
type Posts struct {
	codec
}

func NewPosts(store ports.Store, logger zerolog.Logger) *Posts {
	return &Posts{codec{store: store, logger: logger.With().Str("record", KeyPosts).Logger()}}
}

// List never returns nil.
func (r *Posts) List(ctx context.Context) ([]domain.Post, error) {
	var env postsEnvelope
	ok, err := r.load(ctx, KeyPosts, &env)
	if err != nil {
		return nil, err
	}
	if !ok || env.Posts == nil {
		return []domain.Post{}, nil
	}
	return env.Posts, nil
}

func (r *Posts) SaveAll(ctx context.Context, posts []domain.Post) error {
	if posts == nil {
		posts = []domain.Post{}
	}
	return r.save(ctx, KeyPosts, postsEnvelope{Posts: posts})
}
