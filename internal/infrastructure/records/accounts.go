package records

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mkx/community/internal/core/domain"
	"github.com/mkx/community/internal/core/ports"
)

// Accounts is the users record: a JSON array of accounts.
type Accounts struct {
	codec
}

func NewAccounts(store ports.Store, logger zerolog.Logger) *Accounts {
	return &Accounts{codec{store: store, logger: logger.With().Str("record", KeyUsers).Logger()}}
}

// List never returns nil.
func (r *Accounts) List(ctx context.Context) ([]domain.Account, error) {
	var accounts []domain.Account
	ok, err := r.load(ctx, KeyUsers, &accounts)
	if err != nil {
		return nil, err
	}
	if !ok || accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}

func (r *Accounts) SaveAll(ctx context.Context, accounts []domain.Account) error {
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return r.save(ctx, KeyUsers, accounts)
}
