package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vidshare/internal/domain/category"

	goredis "github.com/redis/go-redis/v9"
)

// Cache key patterns:
// - category:name:{name} - 5m TTL, category-by-name cache backing the upload gate

// CacheConfig contains configuration for caching
type CacheConfig struct {
	CategoryTTL time.Duration // TTL for category cache (default 5m)
}

// DefaultCacheConfig returns sensible defaults
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		CategoryTTL: 5 * time.Minute,
	}
}

// CategoryCache is a read-through cache for category-by-name lookups. The
// upload gate hits that lookup on every create request.
type CategoryCache struct {
	client *goredis.Client
	config CacheConfig
}

func NewCategoryCache(client *goredis.Client, config CacheConfig) *CategoryCache {
	return &CategoryCache{client: client, config: config}
}

func categoryNameKey(name string) string {
	return fmt.Sprintf("category:name:%s", name)
}

// GetByName returns the cached category, or ok=false on a miss. Cache
// errors degrade to a miss; the caller falls through to the repository.
func (c *CategoryCache) GetByName(ctx context.Context, name string) (category.Category, bool) {
	data, err := c.client.Get(ctx, categoryNameKey(name)).Bytes()
	if err != nil {
		return category.Category{}, false
	}
	var cat category.Category
	if err := json.Unmarshal(data, &cat); err != nil {
		return category.Category{}, false
	}
	return cat, true
}

func (c *CategoryCache) SetByName(ctx context.Context, cat category.Category) {
	data, err := json.Marshal(cat)
	if err != nil {
		return
	}
	c.client.Set(ctx, categoryNameKey(cat.Name), data, c.config.CategoryTTL)
}

func (c *CategoryCache) Invalidate(ctx context.Context, name string) {
	c.client.Del(ctx, categoryNameKey(name))
}
