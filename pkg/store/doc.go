// Package store provides a durable string key-value Store with in-memory,
// file, Redis and Postgres implementations.
//
// All implementations share the same [Store] interface, so the session
// layer can persist its token and user record the same way whether it
// runs in a test, on a workstation or on a shared server.
//
// # Interface
//
//   - Get(ctx, key) (string, error): retrieve a value, [ErrNotFound] if absent
//   - Set(ctx, key, value) error: store a value
//   - Remove(ctx, key) error: delete a key; missing keys are not an error
//   - Clear(ctx) error: delete every key owned by the store
//   - Close() error: release resources
//
// # Backends
//
// [NewMemory] keeps values in a map and loses them on restart:
//
//	s := store.NewMemory()
//
// [NewFile] keeps a single JSON document on disk, replaced atomically on
// every write:
//
//	s := store.NewFile(filepath.Join(dir, "session.json"))
//
// [NewRedis] uses a [github.com/redis/go-redis/v9.UniversalClient] from
// [github.com/dmitrymomot/classroom/pkg/redis]:
//
//	client, err := redis.Open(ctx, os.Getenv("REDIS_URL"))
//	s := store.NewRedis(client, store.WithPrefix("classroom"))
//
// [NewPostgres] uses a pgx pool from [github.com/dmitrymomot/classroom/pkg/db].
// The schema ships as goose migrations in [Migrations]:
//
//	pool, err := db.Connect(ctx, cfg)
//	err = db.Migrate(ctx, pool, store.Migrations, "migrations", "schema_migrations", log)
//	s := store.NewPostgres(pool, store.WithNamespace("device-42"))
//
// # Error Handling
//
//   - [ErrNotFound]: key does not exist
//   - [ErrClosed]: operation on a closed store
//   - [ErrCorrupted]: the file backend could not decode its data file
//   - [ErrHealthcheckFailed]: remote backend unreachable
//
// Use [Lookup] to fold absence into a boolean:
//
//	token, ok, err := store.Lookup(ctx, s, "auth_token")
package store
