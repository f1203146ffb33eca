package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/developia-II/tacticalgear-backend/internal/models"
	"github.com/redis/go-redis/v9"
)

const productTTL = 24 * time.Hour

// ProductCache is a read-through cache for single-product lookups.
// Get reports a miss with ok=false and a nil error.
type ProductCache interface {
	Get(ctx context.Context, id string) (product models.Product, ok bool, err error)
	Set(ctx context.Context, product models.Product) error
	Delete(ctx context.Context, id string) error
	Flush(ctx context.Context) error
}

func productKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}

func NewRedisClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
		Protocol: 2,
	})
}

type RedisProductCache struct {
	client *redis.Client
}

func NewRedisProductCache(client *redis.Client) *RedisProductCache {
	return &RedisProductCache{client: client}
}

func (c *RedisProductCache) Get(ctx context.Context, id string) (models.Product, bool, error) {
	raw, err := c.client.Get(ctx, productKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Product{}, false, nil
	}
	if err != nil {
		return models.Product{}, false, err
	}

	var product models.Product
	if err := json.Unmarshal(raw, &product); err != nil {
		return models.Product{}, false, fmt.Errorf("failed to unmarshal product %s: %w", id, err)
	}
	return product, true, nil
}

func (c *RedisProductCache) Set(ctx context.Context, product models.Product) error {
	raw, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product %s: %w", product.ID, err)
	}
	return c.client.Set(ctx, productKey(product.ID), raw, productTTL).Err()
}

func (c *RedisProductCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, productKey(id)).Err()
}

// Flush drops every product key. Other keys in the database are untouched.
func (c *RedisProductCache) Flush(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, productKey("*"), 100).Iterator()
	pipe := c.client.TxPipeline()
	queued := 0
	for iter.Next(ctx) {
		pipe.Del(ctx, iter.Val())
		queued++
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan product keys: %w", err)
	}
	if queued == 0 {
		return nil
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to flush product cache: %w", err)
	}
	return nil
}

// Noop is used when Redis is not configured; every Get is a miss.
type Noop struct{}

func (Noop) Get(context.Context, string) (models.Product, bool, error) {
	return models.Product{}, false, nil
}

func (Noop) Set(context.Context, models.Product) error { return nil }

func (Noop) Delete(context.Context, string) error { return nil }

func (Noop) Flush(context.Context) error { return nil }
