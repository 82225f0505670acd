package store

import (
	"context"
	"embed"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrations holds the goose migrations for the Postgres store schema.
// Apply them with pkg/db.Migrate(ctx, pool, store.Migrations, "migrations", ...).
//
//go:embed migrations/*.sql
var Migrations embed.FS

const defaultNamespace = "default"

// PostgresOption configures the Postgres store.
type PostgresOption func(*Postgres)

// WithNamespace isolates the keys of one client from others sharing
// the same table.
// Default: "default".
func WithNamespace(ns string) PostgresOption {
	return func(p *Postgres) {
		if ns != "" {
			p.namespace = ns
		}
	}
}

// Postgres stores keys in the kv_store table.
type Postgres struct {
	pool      *pgxpool.Pool
	namespace string
}

// NewPostgres creates a Postgres-backed store.
// The pool should be obtained from pkg/db.Connect and the schema applied
// with Migrations.
func NewPostgres(pool *pgxpool.Pool, opts ...PostgresOption) *Postgres {
	p := &Postgres{pool: pool, namespace: defaultNamespace}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Get retrieves a value by key.
func (p *Postgres) Get(ctx context.Context, key string) (string, error) {
	var v string
	err := p.pool.QueryRow(ctx,
		`SELECT value FROM kv_store WHERE namespace = $1 AND key = $2`,
		p.namespace, key,
	).Scan(&v)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return v, nil
}

// Set upserts a value.
func (p *Postgres) Set(ctx context.Context, key, value string) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO kv_store (namespace, key, value, updated_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (namespace, key)
		 DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		p.namespace, key, value,
	)
	return err
}

// Remove deletes a key.
func (p *Postgres) Remove(ctx context.Context, key string) error {
	_, err := p.pool.Exec(ctx,
		`DELETE FROM kv_store WHERE namespace = $1 AND key = $2`,
		p.namespace, key,
	)
	return err
}

// Clear deletes every key in the namespace.
func (p *Postgres) Clear(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM kv_store WHERE namespace = $1`, p.namespace)
	return err
}

// Ping checks connectivity to the database.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close is a no-op. The pool lifecycle is managed by the caller
// (via pkg/db.Shutdown).
func (p *Postgres) Close() error {
	return nil
}

var (
	_ Store  = (*Postgres)(nil)
	_ Pinger = (*Postgres)(nil)
)
