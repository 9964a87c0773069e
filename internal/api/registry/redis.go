package registry

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisSetKey is the set holding all live refresh tokens.
const redisSetKey = "taskdeck:refresh_tokens"

// Redis is a Registry backed by a Redis set, for deployments where sessions
// should survive a service restart or be shared across replicas.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis returns a Registry backed by the given client. ttl bounds how long
// the whole set lives without activity so revoked deployments do not leak
// tokens forever; pass the refresh token lifetime.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Add(ctx context.Context, token string) error {
	pipe := r.client.TxPipeline()
	pipe.SAdd(ctx, redisSetKey, token)
	pipe.Expire(ctx, redisSetKey, r.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *Redis) Contains(ctx context.Context, token string) (bool, error) {
	return r.client.SIsMember(ctx, redisSetKey, token).Result()
}

func (r *Redis) Remove(ctx context.Context, token string) error {
	return r.client.SRem(ctx, redisSetKey, token).Err()
}

// Ping verifies the Redis connection is usable.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
