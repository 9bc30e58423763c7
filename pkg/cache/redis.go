package cache

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

// Options configures the Redis connection and key layout.
type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	// TTL applies to every write; zero keeps values until they are removed.
	TTL time.Duration
}

// RedisCache stores plain string values under "<prefix>:<part>:<part>" keys.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisCache(opts Options) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	// Test connection
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		client.Close()
		return nil
	}

	log.Println("Connected to Redis successfully")
	return &RedisCache{client: client, prefix: opts.Prefix, ttl: opts.TTL}
}

func (r *RedisCache) key(parts ...string) string {
	if r.prefix == "" {
		return strings.Join(parts, ":")
	}
	return r.prefix + ":" + strings.Join(parts, ":")
}

// GetString returns the value and whether the key exists.
func (r *RedisCache) GetString(ctx context.Context, parts ...string) (string, bool, error) {
	val, err := r.client.Get(ctx, r.key(parts...)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (r *RedisCache) SetString(ctx context.Context, value string, parts ...string) error {
	return r.client.Set(ctx, r.key(parts...), value, r.ttl).Err()
}

func (r *RedisCache) Delete(ctx context.Context, parts ...string) error {
	return r.client.Del(ctx, r.key(parts...)).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
