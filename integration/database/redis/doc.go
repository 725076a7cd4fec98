// Package redis bootstraps a go-redis client with connection retries and
// exposes a readiness check.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	health.Check{Name: "redis", Fn: redis.Healthcheck(client)}
//
// Config.ConnectionURL accepts redis:// and rediss:// URLs. An empty URL
// means Redis is not configured; Connect then returns ErrNotConfigured
// and callers fall back to in-process state.
package redis
