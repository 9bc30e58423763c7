package repositories

import (
	"context"

	"golang-storefront/pkg/cache"
)

type redisStorage struct {
	cache *cache.RedisCache
}

// NewRedisStorage stores each item under "<prefix>:<profile>:<key>".
func NewRedisStorage(cache *cache.RedisCache) LocalStorage {
	return &redisStorage{cache: cache}
}

func (s *redisStorage) GetItem(ctx context.Context, profileID, key string) (string, bool, error) {
	if err := validateProfileID(profileID); err != nil {
		return "", false, err
	}
	return s.cache.GetString(ctx, profileID, key)
}

func (s *redisStorage) SetItem(ctx context.Context, profileID, key, value string) error {
	if err := validateProfileID(profileID); err != nil {
		return err
	}
	return s.cache.SetString(ctx, value, profileID, key)
}

func (s *redisStorage) RemoveItem(ctx context.Context, profileID, key string) error {
	if err := validateProfileID(profileID); err != nil {
		return err
	}
	return s.cache.Delete(ctx, profileID, key)
}
