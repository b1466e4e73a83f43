// Package db opens the Store backend selected by configuration.
package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mkx/community/internal/core/ports"
	"github.com/mkx/community/internal/infrastructure/config"
	"github.com/mkx/community/internal/infrastructure/db/memory"
	"github.com/mkx/community/internal/infrastructure/db/mongo"
	"github.com/mkx/community/internal/infrastructure/db/pebble"
	"github.com/mkx/community/internal/infrastructure/db/redis"
	"github.com/mkx/community/internal/infrastructure/db/sqlite"
)

// CloseFunc releases the backend. It is never nil.
type CloseFunc func() error

func noopClose() error { return nil }

// Open connects to the configured backend.
func Open(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (ports.Store, CloseFunc, error) {
	log := logger.With().Str("driver", cfg.Store.Driver).Logger()

	switch cfg.Store.Driver {
	case config.DriverMemory:
		log.Warn().Msg("using in-memory store, data is lost on restart")
		return memory.New(), noopClose, nil

	case config.DriverRedis:
		client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("addr", cfg.Redis.Addr).Int("db", cfg.Redis.DB).Msg("connected to redis")
		s := redis.NewStore(client, cfg.Redis.Prefix)
		return s, s.Close, nil

	case config.DriverMongo:
		s, err := mongo.Open(ctx, mongo.Config{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("db", cfg.Mongo.Database).Str("collection", cfg.Mongo.Collection).Msg("connected to mongodb")
		return s, s.Close, nil

	case config.DriverSQLite:
		s, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("path", cfg.SQLite.Path).Msg("opened sqlite store")
		return s, s.Close, nil

	case config.DriverPebble:
		s, err := pebble.Open(cfg.Pebble.Path)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("path", cfg.Pebble.Path).Msg("opened pebble store")
		return s, s.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}
