package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mkx/community/internal/core/domain"
	"github.com/mkx/community/internal/core/ports"
	"github.com/mkx/community/internal/pkg/metrics"
)

// AvatarService pushes a new avatar into every place the user is copied:
// the session, the users record and the author snapshot of their posts.
//
// The three writes are separate store calls. A reader that runs between
// them may see the new avatar on the session while posts still carry the
// old one; the last write brings everything back in line.
type AvatarService struct {
	sessions ports.SessionRepository
	accounts ports.AccountRepository
	posts    ports.PostRepository
	logger   zerolog.Logger
}

func NewAvatarService(sessions ports.SessionRepository, accounts ports.AccountRepository, posts ports.PostRepository, logger zerolog.Logger) *AvatarService {
	return &AvatarService{sessions: sessions, accounts: accounts, posts: posts, logger: logger}
}

func (s *AvatarService) SetAvatar(ctx context.Context, session *domain.Session, image string) (*ports.AvatarResult, error) {
	if session.Anonymous() {
		return nil, domain.ErrNotAuthenticated
	}
	if image == "" {
		return nil, domain.ErrMissingAvatar
	}

	// 1. Session copy.
	updated := domain.NewSession(session.Account)
	updated.Avatar = image
	if err := s.sessions.Save(ctx, updated); err != nil {
		return nil, fmt.Errorf("set avatar: save session: %w", err)
	}

	// 2. Matching account, only rewritten when it still exists.
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("set avatar: %w", err)
	}
	accountUpdated := false
	for i := range accounts {
		if accounts[i].ID == updated.ID {
			accounts[i].Avatar = image
			accountUpdated = true
			break
		}
	}
	if accountUpdated {
		if err := s.accounts.SaveAll(ctx, accounts); err != nil {
			return nil, fmt.Errorf("set avatar: save accounts: %w", err)
		}
	} else {
		s.logger.Warn().Str("account_id", updated.ID).Msg("avatar set on session without a stored account")
	}

	// 3. Propagation sweep over the author snapshots.
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("set avatar: %w", err)
	}
	swept := 0
	for i := range posts {
		if posts[i].Author.ID == updated.ID {
			posts[i].Author.Avatar = image
			swept++
		}
	}
	if err := s.posts.SaveAll(ctx, posts); err != nil {
		return nil, fmt.Errorf("set avatar: save posts: %w", err)
	}

	metrics.AvatarUpdatesTotal.Inc()
	metrics.AvatarPropagatedPostsTotal.Add(float64(swept))
	s.logger.Info().Str("account_id", updated.ID).Int("posts", swept).Msg("avatar updated")

	return &ports.AvatarResult{
		Session:        updated,
		AccountUpdated: accountUpdated,
		PostsUpdated:   swept,
	}, nil
}
