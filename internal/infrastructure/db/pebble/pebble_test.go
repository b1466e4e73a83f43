package pebble

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_RoundTrip(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "users")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "users", "[]"))
	require.NoError(t, s.Set(ctx, "users", `[{"id":"1"}]`))

	v, ok, err := s.Get(ctx, "users")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"1"}]`, v)

	require.NoError(t, s.Remove(ctx, "users"))
	require.NoError(t, s.Remove(ctx, "users"))
	_, ok, err = s.Get(ctx, "users")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "currentUser", `{"id":"7"}`))
	require.NoError(t, s.Close())

	s, err = Open(dir)
	require.NoError(t, err)
	defer s.Close()

	v, ok, err := s.Get(ctx, "currentUser")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"id":"7"}`, v)
}
