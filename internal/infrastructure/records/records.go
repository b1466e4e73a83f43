// Package records maps the typed users, currentUser and posts records onto
// a text key-value Store.
//
// Values are JSON in the shape the site has always written. A value that no
// longer decodes is logged, counted, removed from the store and read as
// empty, so a damaged record never blocks the site.
package records

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mkx/community/internal/core/ports"
	"github.com/mkx/community/internal/pkg/metrics"
)

// Store keys.
const (
	KeyUsers   = "users"
	KeySession = "currentUser"
	KeyPosts   = "posts"
)

type codec struct {
	store  ports.Store
	logger zerolog.Logger
}

// load decodes the value under key into dst. It reports false when the key
// is absent or its value was discarded as corrupt; dst must not be used then.
func (c codec) load(ctx context.Context, key string, dst any) (bool, error) {
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, c.discard(ctx, key, err)
	}
	return true, nil
}

func (c codec) discard(ctx context.Context, key string, cause error) error {
	c.logger.Warn().Err(cause).Str("key", key).Msg("discarding corrupt record")
	metrics.CorruptRecordsTotal.WithLabelValues(key).Inc()
	if err := c.store.Remove(ctx, key); err != nil {
		return fmt.Errorf("remove corrupt %s: %w", key, err)
	}
	return nil
}

func (c codec) save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := c.store.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
