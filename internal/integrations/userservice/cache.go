package userservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// UserGetter источник данных пользователя
type UserGetter interface {
	GetUser(ctx context.Context, userID int64) (*User, error)
}

// CachedClient кеширует ответы UserService в Redis.
// Ошибки Redis не ломают запрос: данные берутся напрямую из UserService.
type CachedClient struct {
	next UserGetter
	rdb  redis.Cmdable
	ttl  time.Duration
	log  Logger
}

// NewCachedClient оборачивает клиент кешем; при rdb == nil или ttl <= 0 кеш отключен
func NewCachedClient(next UserGetter, rdb redis.Cmdable, ttl time.Duration, log Logger) *CachedClient {
	return &CachedClient{next: next, rdb: rdb, ttl: ttl, log: log}
}

// GetUser получает пользователя из кеша или из UserService
func (c *CachedClient) GetUser(ctx context.Context, userID int64) (*User, error) {
	if !c.enabled() {
		return c.next.GetUser(ctx, userID)
	}

	key := cacheKey(userID)

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var user User
		if err := json.Unmarshal(raw, &user); err == nil {
			return &user, nil
		}
		c.log.Warn("userservice cache: corrupted entry %s, refetching", key)
	case !errors.Is(err, redis.Nil):
		c.log.Warn("userservice cache: get %s failed: %v", key, err)
	}

	user, err := c.next.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.log.Warn("userservice cache: set %s failed: %v", key, err)
		}
	}

	return user, nil
}

// Invalidate удаляет пользователя из кеша
func (c *CachedClient) Invalidate(ctx context.Context, userID int64) error {
	if !c.enabled() {
		return nil
	}
	return c.rdb.Del(ctx, cacheKey(userID)).Err()
}

func (c *CachedClient) enabled() bool {
	return c.rdb != nil && c.ttl > 0
}

func cacheKey(userID int64) string {
	return fmt.Sprintf("bikerepair:user:%d", userID)
}
