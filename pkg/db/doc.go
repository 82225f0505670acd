// Package db connects to PostgreSQL for the Postgres session store.
//
// It wraps [github.com/jackc/pgx/v5/pgxpool] with startup retries, a health
// check closure and schema migrations through [github.com/pressly/goose/v3].
//
// # Configuration
//
//	DATABASE_CONN_URL           - PostgreSQL connection URL
//	DATABASE_MAX_OPEN_CONNS     - Maximum open connections (default: 2)
//	DATABASE_MIN_CONNS          - Minimum idle connections (default: 0)
//	DATABASE_RETRY_ATTEMPTS     - Connection attempts (default: 2)
//	DATABASE_RETRY_INTERVAL     - Base retry interval (default: 1s)
//	DATABASE_MIGRATIONS_TABLE   - goose version table (default: schema_migrations)
//
// # Usage
//
//	pool, err := db.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := db.Migrate(ctx, pool, store.Migrations, "migrations", cfg.MigrationsTable, log); err != nil {
//		return err
//	}
package db
