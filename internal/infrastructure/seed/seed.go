// Package seed fills an empty store with demo accounts from a YAML file.
package seed

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/mkx/community/internal/core/domain"
	"github.com/mkx/community/internal/core/ports"
	"github.com/mkx/community/internal/infrastructure/records"
)

// File is the YAML layout of a seed file.
type File struct {
	Accounts []domain.Account `yaml:"accounts"`
}

// Load reads and parses the seed file at path.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return &f, nil
}

// Seeder writes seed accounts into a store that has never held users.
type Seeder struct {
	store    ports.Store
	accounts ports.AccountRepository
	sessions ports.SessionRepository
	log      zerolog.Logger
	now      func() time.Time
}

func NewSeeder(store ports.Store, accounts ports.AccountRepository, sessions ports.SessionRepository, log zerolog.Logger) *Seeder {
	return &Seeder{store: store, accounts: accounts, sessions: sessions, log: log, now: time.Now}
}

// Apply stores f's accounts unless a users record already exists, even an
// empty one. Seed accounts are taken as-is, without registration checks.
// Accounts without a createdAt are stamped with the current time. With
// autoLogin the first account becomes the session. It reports whether
// anything was written.
func (s *Seeder) Apply(ctx context.Context, f *File, autoLogin bool) (bool, error) {
	if f == nil || len(f.Accounts) == 0 {
		return false, nil
	}

	_, exists, err := s.store.Get(ctx, records.KeyUsers)
	if err != nil {
		return false, fmt.Errorf("seed: %w", err)
	}
	if exists {
		s.log.Info().Msg("users already present, skipping seed")
		return false, nil
	}

	now := s.now().UTC().Truncate(time.Millisecond)
	accounts := make([]domain.Account, len(f.Accounts))
	for i, a := range f.Accounts {
		if a.CreatedAt.IsZero() {
			a.CreatedAt = now
		}
		accounts[i] = a
	}

	if err := s.accounts.SaveAll(ctx, accounts); err != nil {
		return false, fmt.Errorf("seed: %w", err)
	}
	s.log.Info().Int("accounts", len(accounts)).Msg("seeded accounts")

	if autoLogin {
		first := accounts[0]
		if err := s.sessions.Save(ctx, domain.NewSession(first)); err != nil {
			return true, fmt.Errorf("seed: auto login: %w", err)
		}
		s.log.Info().Str("account_id", first.ID).Str("username", first.Username).Msg("auto-logged in seed account")
	}
	return true, nil
}
