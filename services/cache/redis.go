package cachesvc

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"github.com/trezcool/ujumbe/core"
)

type redisCache struct {
	client *redis.Client
}

var _ core.Cache = (*redisCache)(nil)

// NewRedisCache connects to redis and pings it.
func NewRedisCache(ctx context.Context, conf core.RedisConfig) (core.Cache, *redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, errors.Wrapf(err, "pinging redis at %s", conf.Addr)
	}
	return &redisCache{client: client}, client, nil
}

func (c *redisCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "getting %s", key)
	}
	return val, true, nil
}

func (c *redisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return errors.Wrapf(c.client.Set(ctx, key, value, ttl).Err(), "setting %s", key)
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return errors.Wrap(c.client.Del(ctx, keys...).Err(), "deleting keys")
}
