package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/fjod/go_cart/storefront-service/domain"
	"github.com/redis/go-redis/v9"
)

const itemsKey = "keranjang_items"

func NewRedisCache(client *redis.Client, baseTTL time.Duration) *RedisCache {
	if baseTTL <= 0 {
		baseTTL = 15 * time.Minute
	}
	return &RedisCache{
		client:  client,
		baseTTL: baseTTL,
	}
}

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r RedisCache) Get(ctx context.Context, client domain.Handle) ([]domain.CartItem, error) {
	data, err := r.client.Get(ctx, cacheKey(client)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var items []domain.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal cart items failed: %w", err)
	}
	return items, nil
}

// Set stores the items with the base TTL plus up to a fifth of it as jitter, so entries written together do not expire together
func (r RedisCache) Set(ctx context.Context, client domain.Handle, items []domain.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart items failed: %w", err)
	}

	jitter := time.Duration(rand.Int63n(int64(r.baseTTL)/5 + 1))
	if err := r.client.Set(ctx, cacheKey(client), data, r.baseTTL+jitter).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r RedisCache) Delete(ctx context.Context, client domain.Handle) error {
	if err := r.client.Del(ctx, cacheKey(client)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func cacheKey(client domain.Handle) string {
	return "cache:" + client.Key(itemsKey)
}
