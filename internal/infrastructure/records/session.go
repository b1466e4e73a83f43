package records

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mkx/community/internal/core/domain"
	"github.com/mkx/community/internal/core/ports"
)

// Sessions is the currentUser record: a JSON account, absent when nobody is
// logged in.
type Sessions struct {
	codec
}

func NewSessions(store ports.Store, logger zerolog.Logger) *Sessions {
	return &Sessions{codec{store: store, logger: logger.With().Str("record", KeySession).Logger()}}
}

func (r *Sessions) Load(ctx context.Context) (*domain.Session, error) {
	var acc *domain.Account
	ok, err := r.load(ctx, KeySession, &acc)
	if err != nil || !ok {
		return nil, err
	}
	// A literal null or an account without id is not a login.
	if acc == nil || acc.ID == "" {
		return nil, r.discard(ctx, KeySession, errors.New("session without account id"))
	}
	return domain.NewSession(*acc), nil
}

func (r *Sessions) Save(ctx context.Context, session *domain.Session) error {
	if session.Anonymous() {
		return r.Clear(ctx)
	}
	return r.save(ctx, KeySession, session.Account)
}

func (r *Sessions) Clear(ctx context.Context) error {
	if err := r.store.Remove(ctx, KeySession); err != nil {
		return fmt.Errorf("remove %s: %w", KeySession, err)
	}
	return nil
}
