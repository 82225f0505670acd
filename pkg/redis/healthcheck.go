package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Healthcheck pings the server behind a session store. The classroom
// doctor command runs it next to the store and API checks.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if client == nil {
			return ErrHealthcheckFailed
		}
		err := client.Ping(ctx).Err()
		if err == nil {
			return nil
		}
		return errors.Join(ErrHealthcheckFailed, err)
	}
}
