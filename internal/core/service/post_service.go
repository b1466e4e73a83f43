package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mkx/community/internal/core/domain"
	"github.com/mkx/community/internal/core/ports"
	"github.com/mkx/community/internal/pkg/metrics"
)

type PostService struct {
	posts    ports.PostRepository
	accounts ports.AccountRepository
	ids      ports.IDGenerator
	now      func() time.Time
	logger   zerolog.Logger
}

func NewPostService(posts ports.PostRepository, accounts ports.AccountRepository, ids ports.IDGenerator, logger zerolog.Logger) *PostService {
	return &PostService{posts: posts, accounts: accounts, ids: ids, now: time.Now, logger: logger}
}

// CreatePost builds a post authored by the session and puts it at the front
// of the collection. The author fields are a snapshot of the session.
func (s *PostService) CreatePost(ctx context.Context, session *domain.Session, in ports.CreatePostInput) (*domain.Post, error) {
	if session.Anonymous() {
		return nil, domain.ErrNotAuthenticated
	}
	if in.Title == "" || in.Category == "" || in.Content == "" {
		return nil, domain.ErrMissingPostFields
	}

	// The author must be a live account, not just a leftover session copy.
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	if !hasAccount(accounts, session.ID) {
		s.logger.Warn().Str("account_id", session.ID).Msg("session account no longer exists")
		return nil, domain.ErrNotAuthenticated
	}

	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	now := s.now().UTC().Truncate(time.Millisecond)
	post := domain.Post{
		ID:          s.ids.Next(),
		Title:       in.Title,
		Category:    in.Category,
		Content:     in.Content,
		Links:       domain.ParseLinks(in.Links),
		ContentType: in.ContentType,
		Author:      session.Author(),
		CreatedAt:   now,
		UpdatedAt:   now,
		LikedBy:     []string{},
		Comments:    []domain.Comment{},
	}

	updated := make([]domain.Post, 0, len(posts)+1)
	updated = append(updated, post)
	updated = append(updated, posts...)
	if err := s.posts.SaveAll(ctx, updated); err != nil {
		s.logger.Error().Err(err).Msg("failed to save posts")
		return nil, fmt.Errorf("create post: %w", err)
	}

	metrics.PostsCreatedTotal.WithLabelValues(post.ContentType).Inc()
	s.logger.Info().Str("post_id", post.ID).Str("account_id", session.ID).Msg("post created")
	return &post, nil
}

// DeletePost removes the post for good. Only its author may do so.
func (s *PostService) DeletePost(ctx context.Context, session *domain.Session, postID string) error {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	idx := indexOfPost(posts, postID)
	if idx < 0 {
		return domain.ErrPostNotFound
	}
	if session.Anonymous() || session.ID != posts[idx].Author.ID {
		return domain.ErrForbidden
	}

	posts = append(posts[:idx], posts[idx+1:]...)
	if err := s.posts.SaveAll(ctx, posts); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	metrics.PostsDeletedTotal.Inc()
	s.logger.Info().Str("post_id", postID).Str("account_id", session.ID).Msg("post deleted")
	return nil
}

// ListPosts returns the collection in stored order.
func (s *PostService) ListPosts(ctx context.Context, limit int) ([]domain.Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func (s *PostService) GetPost(ctx context.Context, postID string) (*domain.Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	idx := indexOfPost(posts, postID)
	if idx < 0 {
		return nil, domain.ErrPostNotFound
	}
	return &posts[idx], nil
}

// RecordView increments the view counter of a post.
func (s *PostService) RecordView(ctx context.Context, postID string) (*domain.Post, error) {
	return s.mutate(ctx, postID, func(p *domain.Post) {
		p.Views++
	})
}

// ToggleLike likes the post for the session, or takes the like back.
func (s *PostService) ToggleLike(ctx context.Context, session *domain.Session, postID string) (*domain.Post, error) {
	if session.Anonymous() {
		return nil, domain.ErrNotAuthenticated
	}
	return s.mutate(ctx, postID, func(p *domain.Post) {
		p.ToggleLike(session.ID)
	})
}

func (s *PostService) mutate(ctx context.Context, postID string, fn func(*domain.Post)) (*domain.Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	idx := indexOfPost(posts, postID)
	if idx < 0 {
		return nil, domain.ErrPostNotFound
	}

	fn(&posts[idx])
	if err := s.posts.SaveAll(ctx, posts); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	post := posts[idx]
	return &post, nil
}

func indexOfPost(posts []domain.Post, id string) int {
	for i := range posts {
		if posts[i].ID == id {
			return i
		}
	}
	return -1
}

func hasAccount(accounts []domain.Account, id string) bool {
	for _, a := range accounts {
		if a.ID == id {
			return true
		}
	}
	return false
}
