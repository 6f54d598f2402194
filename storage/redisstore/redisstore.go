package redisstore

import (
	"context"

	"github.com/0xsonu/mlms/storage"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

var _ storage.Store = (*Store)(nil)

// Store is a storage.Store backed by Redis, for deployments where the
// session and tenant slots must survive process restarts. Keys are
// namespaced with a prefix so several instances can share one Redis.
type Store struct {
	client *redis.Client
	prefix string
}

func New(client *redis.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", storage.ErrNotFound
		}
		return "", errors.Wrap(err, "[redisstore.Get] client.Get")
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return errors.Wrap(err, "[redisstore.Set] client.Set")
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return errors.Wrap(err, "[redisstore.Delete] client.Del")
	}
	return nil
}
