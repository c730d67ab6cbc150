package snapshot

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisBlob guarda snapshots como valores opacos no Redis, sem TTL:
// é store durável da autoridade, não cache.
type RedisBlob struct {
	Client *redis.Client
}

func NewRedisBlob(c *redis.Client) *RedisBlob { return &RedisBlob{Client: c} }

func key(k string) string { return "snapshot:" + k }

func (r *RedisBlob) Get(ctx context.Context, k string) ([]byte, bool, error) {
	b, err := r.Client.Get(ctx, key(k)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (r *RedisBlob) Set(ctx context.Context, k string, data []byte) error {
	return r.Client.Set(ctx, key(k), data, 0).Err()
}
