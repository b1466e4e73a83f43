package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// Store drivers.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"
	DriverPebble = "pebble"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Store  StoreConfig
	Redis  RedisConfig
	Mongo  MongoConfig
	SQLite SQLiteConfig
	Pebble PebbleConfig
	Auth   AuthConfig
	Seed   SeedConfig
}

type StoreConfig struct {
	Driver string `env:"STORE_DRIVER, default=memory"`
}

type RedisConfig struct {
	Addr   string `env:"REDIS_ADDR,   default=localhost:6379"`
	DB     int    `env:"REDIS_DB,     default=0"`
	Prefix string `env:"REDIS_PREFIX, default=mkx:"`
}

type MongoConfig struct {
	URI        string `env:"MONGO_URI,        default=mongodb://localhost:27017"`
	Database   string `env:"MONGO_DB,         default=mkx"`
	Collection string `env:"MONGO_COLLECTION, default=local_storage"`
}

type SQLiteConfig struct {
	Path string `env:"SQLITE_PATH, default=mkx.db"`
}

type PebbleConfig struct {
	Path string `env:"PEBBLE_PATH, default=mkx-data"`
}

type AuthConfig struct {
	PasswordHashing string   `env:"AUTH_PASSWORD_HASHING, default=plain"`
	BcryptCost      int      `env:"AUTH_BCRYPT_COST,      default=10"`
	EmailDomains    []string `env:"AUTH_EMAIL_DOMAINS"`
}

type SeedConfig struct {
	File      string `env:"SEED_FILE"`
	AutoLogin bool   `env:"SEED_AUTO_LOGIN, default=false"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := load(envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

func load(l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings that cannot be wired.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory, DriverRedis, DriverMongo, DriverSQLite, DriverPebble:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}
	switch c.Auth.PasswordHashing {
	case "plain", "bcrypt":
	default:
		return fmt.Errorf("unknown AUTH_PASSWORD_HASHING %q", c.Auth.PasswordHashing)
	}

	domains := c.Auth.EmailDomains[:0]
	for _, d := range c.Auth.EmailDomains {
		if d = strings.TrimSpace(d); d != "" {
			domains = append(domains, d)
		}
	}
	c.Auth.EmailDomains = domains
	return nil
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}
