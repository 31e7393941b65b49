// Package tokenstore keeps the admin access token across process restarts.
// Every implementation holds exactly one token under a fixed key; an empty
// Get result means no session.
package tokenstore

import (
	"context"
	"fmt"
	"os"

	"github.com/Arohance-KV/RoopJewelersAdmin/internal/config"
)

// DefaultKey is the name the token is stored under.
const DefaultKey = "accessToken"

type Store interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Remove(ctx context.Context) error
}

// Open builds the store selected by cfg.Session.Backend. The returned func
// releases any connection the store holds.
func Open(ctx context.Context, cfg *config.AppConfig) (Store, func(), error) {
	key := cfg.Session.Key
	if key == "" {
		key = DefaultKey
	}

	switch cfg.Session.Backend {
	case "", "file":
		return NewFileStore(os.ExpandEnv(cfg.Session.Path), key), func() {}, nil
	case "redis":
		client, err := connectRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisStore(client, key), func() { _ = client.Close() }, nil
	case "postgres":
		pool, err := connectPostgres(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		store := NewPostgresStore(pool, key)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil
	case "memory":
		return NewMemoryStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}
