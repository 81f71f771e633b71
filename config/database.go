package config

import (
	"context"
	"crypto/tls"
	"time"

	apperrors "github.com/NomadCrew/trcs2-health/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// NewPgxPool builds a connection pool for the database startup probe. The pool
// connects lazily, so an unreachable database does not block server start.
func NewPgxPool(ctx context.Context, cfg DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ValidationError, "invalid database url")
	}
	poolConfig.MaxConns = cfg.MaxConnections
	poolConfig.MinConns = 0
	poolConfig.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.DependencyError, "failed to create database pool")
	}
	return pool, nil
}

// NewRedisClient builds the client used by the redis startup probe.
func NewRedisClient(cfg RedisConfig) *redis.Client {
	opts := &redis.Options{
		Addr:            cfg.Address,
		Password:        cfg.Password,
		DB:              cfg.DB,
		PoolSize:        2,
		ConnMaxLifetime: time.Hour,
	}

	if cfg.UseTLS {
		opts.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	return redis.NewClient(opts)
}
