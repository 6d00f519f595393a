package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SharmaTechie/video-stream-platform/internal/logger"
	"github.com/SharmaTechie/video-stream-platform/internal/model"
	"github.com/SharmaTechie/video-stream-platform/internal/port"
	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
	"github.com/redis/go-redis/v9"
)

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// compile-time check: *Cache must satisfy port.ObjectCache
var _ port.ObjectCache = (*Cache)(nil)

func NewCache(addr, password string, ttl time.Duration) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &Cache{client: rdb, ttl: ttl}
}

func (c *Cache) GetObject(ctx context.Context, id uuid.UUID) (*model.StoredObject, error) {
	logger.Debugf(ctx, "getting entry in cache for object #%s...", id)

	val, err := c.client.Get(ctx, getCacheKey(id.String())).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var obj model.StoredObject
	if err := json.Unmarshal(val, &obj); err != nil {
		return nil, fmt.Errorf("unmarshal failed: %w", err)
	}
	return &obj, nil
}

// SetObject is best effort: failures are logged and otherwise ignored.
func (c *Cache) SetObject(ctx context.Context, obj *model.StoredObject) {
	logger.Debugf(ctx, "creating entry in cache for object #%s, valid for %s...", obj.ID, c.ttl)

	data, err := json.Marshal(obj)
	if err != nil {
		logger.Warnf(ctx, "failed to marshal object #%s for cache: %v", obj.ID, err)
		return
	}
	if err := c.client.Set(ctx, getCacheKey(obj.ID.String()), data, c.ttl).Err(); err != nil {
		logger.Warnf(ctx, "redis set for object #%s failed: %v", obj.ID, err)
	}
}

func (c *Cache) DeleteObject(ctx context.Context, id uuid.UUID) error {
	logger.Debugf(ctx, "deleting entry in cache for object #%s...", id)

	if err := c.client.Del(ctx, getCacheKey(id.String())).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}

func getCacheKey(id string) string {
	return "object:" + id
}
