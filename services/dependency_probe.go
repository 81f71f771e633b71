package services

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// DependencyProbe checks connectivity to an external dependency.
// *pgxpool.Pool satisfies it directly.
type DependencyProbe interface {
	Ping(ctx context.Context) error
}

// RedisProbe adapts a redis client to DependencyProbe.
type RedisProbe struct {
	client redis.Cmdable
}

func NewRedisProbe(client redis.Cmdable) *RedisProbe {
	return &RedisProbe{client: client}
}

func (p *RedisProbe) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
