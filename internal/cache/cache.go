package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"velora_back_end/internal/models"
)

const ProductCacheTTL = 10 * time.Minute

// ProductCache met en cache les pages publiques du catalogue (sans filtre
// keyword). Toutes les méthodes tolèrent un receveur nil : sans Redis, le
// cache est simplement transparent.
type ProductCache struct {
	rdb *redis.Client
}

func NewProductCache(rdb *redis.Client) *ProductCache {
	if rdb == nil {
		return nil
	}
	return &ProductCache{rdb: rdb}
}

func pageKey(page int) string {
	return fmt.Sprintf("products:list:%d", page)
}

func (c *ProductCache) GetPage(ctx context.Context, page int) (*models.ProductPage, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, pageKey(page)).Result()
	if err != nil {
		return nil, false
	}
	var cached models.ProductPage
	if err := json.Unmarshal([]byte(data), &cached); err != nil {
		return nil, false
	}
	return &cached, true
}

func (c *ProductCache) SetPage(ctx context.Context, page int, p *models.ProductPage) {
	if c == nil {
		return
	}
	if data, err := json.Marshal(p); err == nil {
		c.rdb.Set(ctx, pageKey(page), data, ProductCacheTTL)
	}
}

// Invalidate purge toutes les pages en cache après une écriture admin.
func (c *ProductCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	iter := c.rdb.Scan(ctx, 0, "products:list:*", 0).Iterator()
	for iter.Next(ctx) {
		c.rdb.Del(ctx, iter.Val())
	}
}
