package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/classroom/pkg/db"
	"github.com/dmitrymomot/classroom/pkg/health"
	"github.com/dmitrymomot/classroom/pkg/logger"
	"github.com/dmitrymomot/classroom/pkg/redis"
	"github.com/dmitrymomot/classroom/pkg/store"
)

// Store backends selectable through CLASSROOM_STORE.
const (
	storeFile     = "file"
	storeMemory   = "memory"
	storeRedis    = "redis"
	storePostgres = "postgres"
)

var errUnknownStore = errors.New("classroom: unknown store backend")

// Config is read from the environment and an optional .env file.
type Config struct {
	Sentry      logger.SentryConfig
	DB          db.Config
	APIURL      string        `env:"CLASSROOM_API_URL" envDefault:"http://localhost:3000"`
	Store       string        `env:"CLASSROOM_STORE" envDefault:"file"`
	StorePath   string        `env:"CLASSROOM_STORE_PATH"`
	StorePrefix string        `env:"CLASSROOM_STORE_PREFIX" envDefault:"classroom"`
	RedisURL    string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	Lang        string        `env:"CLASSROOM_LANG"`
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"warn"`
	Timeout     time.Duration `env:"CLASSROOM_TIMEOUT" envDefault:"10s"`
}

func loadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Lang == "" {
		// POSIX locale, e.g. pt_BR.UTF-8
		lang, _, _ := strings.Cut(os.Getenv("LANG"), ".")
		cfg.Lang = strings.ReplaceAll(lang, "_", "-")
	}
	if cfg.StorePath == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir = "."
		}
		cfg.StorePath = filepath.Join(dir, "classroom", "session.json")
	}
	return cfg, nil
}

func newLogger(cfg Config) *slog.Logger {
	return logger.NewWithSentry(cfg.Sentry,
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithText(),
	)
}

// backend is the session store selected by CLASSROOM_STORE. check pings
// the connection behind it and is nil for local backends; release frees
// that connection.
type backend struct {
	kind    string
	store   store.Store
	check   health.CheckFunc
	release func(context.Context) error
}

// checks returns the connection check keyed by the backend kind.
func (b *backend) checks() health.Checks {
	if b.check == nil {
		return nil
	}
	return health.Checks{b.kind: b.check}
}

// openStore connects the configured backend.
func openStore(ctx context.Context, cfg Config, log *slog.Logger) (*backend, error) {
	noop := func(context.Context) error { return nil }

	switch strings.ToLower(cfg.Store) {
	case storeFile, "":
		return &backend{kind: storeFile, store: store.NewFile(cfg.StorePath), release: noop}, nil
	case storeMemory:
		return &backend{kind: storeMemory, store: store.NewMemory(), release: noop}, nil
	case storeRedis:
		client, err := redis.Open(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return &backend{
			kind:    storeRedis,
			store:   store.NewRedis(client, store.WithPrefix(cfg.StorePrefix)),
			check:   redis.Healthcheck(client),
			release: redis.Shutdown(client),
		}, nil
	case storePostgres:
		pool, err := db.Connect(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(ctx, pool, store.Migrations, "migrations", cfg.DB.MigrationsTable, log); err != nil {
			pool.Close()
			return nil, err
		}
		return &backend{
			kind:    storePostgres,
			store:   store.NewPostgres(pool, store.WithNamespace(cfg.StorePrefix)),
			check:   db.Healthcheck(pool),
			release: db.Shutdown(pool),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownStore, cfg.Store)
	}
}
