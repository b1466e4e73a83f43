package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkx/community/internal/core/domain"
	"github.com/mkx/community/internal/infrastructure/db/memory"
	"github.com/mkx/community/internal/infrastructure/records"
)

const seedYAML = `
accounts:
  - id: user-1
    username: 林克大师
    email: link@example.com
    password: password123
    avatar: "data:image/svg+xml;utf8,<svg/>"
  - id: user-2
    username: 枪神CS
    email: cs@example.com
    password: password123
`

func writeSeed(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o600))
	return path
}

func newSeeder(store *memory.Store) (*Seeder, *records.Accounts, *records.Sessions) {
	accounts := records.NewAccounts(store, zerolog.Nop())
	sessions := records.NewSessions(store, zerolog.Nop())
	return NewSeeder(store, accounts, sessions, zerolog.Nop()), accounts, sessions
}

func TestLoad(t *testing.T) {
	f, err := Load(writeSeed(t))
	require.NoError(t, err)
	require.Len(t, f.Accounts, 2)
	assert.Equal(t, "林克大师", f.Accounts[0].Username)
	assert.Equal(t, "data:image/svg+xml;utf8,<svg/>", f.Accounts[0].Avatar)
	assert.Empty(t, f.Accounts[1].Avatar)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestApply_EmptyStoreWithAutoLogin(t *testing.T) {
	store := memory.New()
	seeder, accounts, sessions := newSeeder(store)
	f, err := Load(writeSeed(t))
	require.NoError(t, err)

	wrote, err := seeder.Apply(context.Background(), f, true)
	require.NoError(t, err)
	assert.True(t, wrote)

	stored, err := accounts.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 2)

	session, err := sessions.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "user-1", session.ID)
}

func TestApply_SkipsWhenUsersExist(t *testing.T) {
	store := memory.New()
	require.NoError(t, store.Set(context.Background(), records.KeyUsers, "[]"))
	seeder, accounts, sessions := newSeeder(store)
	f, err := Load(writeSeed(t))
	require.NoError(t, err)

	wrote, err := seeder.Apply(context.Background(), f, true)
	require.NoError(t, err)
	assert.False(t, wrote)

	stored, _ := accounts.List(context.Background())
	assert.Empty(t, stored)
	session, _ := sessions.Load(context.Background())
	assert.Nil(t, session)
}

func TestApply_NoAutoLogin(t *testing.T) {
	store := memory.New()
	seeder, _, sessions := newSeeder(store)

	f, err := Load(writeSeed(t))
	require.NoError(t, err)
	_, err = seeder.Apply(context.Background(), f, false)
	require.NoError(t, err)

	session, _ := sessions.Load(context.Background())
	assert.Nil(t, session)
}

func TestApply_StampsMissingCreatedAt(t *testing.T) {
	store := memory.New()
	seeder, accounts, sessions := newSeeder(store)
	stamp := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)
	seeder.now = func() time.Time { return stamp }

	given := time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)
	f := &File{Accounts: []domain.Account{
		{ID: "user-1", Username: "林克大师", Email: "link@example.com", Password: "pw"},
		{ID: "user-2", Username: "枪神CS", Email: "cs@example.com", Password: "pw", CreatedAt: given},
	}}

	_, err := seeder.Apply(context.Background(), f, true)
	require.NoError(t, err)

	stored, err := accounts.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.True(t, stored[0].CreatedAt.Equal(stamp))
	assert.True(t, stored[1].CreatedAt.Equal(given))
	assert.True(t, f.Accounts[0].CreatedAt.IsZero(), "seed file must not be mutated")

	session, err := sessions.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.True(t, session.CreatedAt.Equal(stamp))

	raw, _, err := store.Get(context.Background(), records.KeyUsers)
	require.NoError(t, err)
	assert.NotContains(t, raw, "0001-01-01")
}
