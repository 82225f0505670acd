// Package redis opens go-redis clients for the Redis session store.
//
// This package wraps [github.com/redis/go-redis/v9] with URL validation,
// a PING check with retries at startup, a health check closure and a
// shutdown hook.
//
// # Configuration
//
//   - WithPoolSize(n int): maximum number of connections (default: 2)
//   - WithRetry(attempts int, interval time.Duration): startup retries (default: 2, 1s)
//   - WithTimeouts(read, write time.Duration): command timeouts (default: 2s, 2s)
//   - WithDialTimeout(d time.Duration): connection dial timeout (default: 3s)
//
// # Usage
//
//	client, err := redis.Open(ctx, os.Getenv("REDIS_URL"))
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	s := store.NewRedis(client)
//
// # Health Checks
//
// [Healthcheck] returns a func(context.Context) error suitable for pkg/health:
//
//	checks := health.Checks{"redis": redis.Healthcheck(client)}
package redis
