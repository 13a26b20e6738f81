package redis

import (
	"context"
	"fmt"
	"time"
)

// Cache provides byte-oriented caching for rendered documents.
// Sitemap pages are cached as the exact bytes served, so a hit skips
// both enumeration and XML encoding.
type Cache struct {
	client *Client
	prefix string
}

// NewCache creates a new cache helper.
func NewCache(client *Client, prefix string) *Cache {
	return &Cache{
		client: client,
		prefix: prefix,
	}
}

// GetBytes retrieves a cached document. A miss (or disabled Redis)
// returns found=false with no error.
func (c *Cache) GetBytes(ctx context.Context, key string) ([]byte, bool, error) {
	if !c.client.Enabled() {
		return nil, false, nil
	}

	fullKey := fmt.Sprintf("%s:cache:%s", c.prefix, key)
	data, err := c.client.Redis().Get(ctx, fullKey).Bytes()
	if err != nil {
		// Key not found is not an error
		return nil, false, nil
	}

	return data, true, nil
}

// SetBytes stores a document in cache with TTL.
func (c *Cache) SetBytes(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if !c.client.Enabled() {
		return nil
	}

	fullKey := fmt.Sprintf("%s:cache:%s", c.prefix, key)
	return c.client.Redis().Set(ctx, fullKey, data, ttl).Err()
}

// Delete removes a cached document.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if !c.client.Enabled() {
		return nil
	}

	fullKey := fmt.Sprintf("%s:cache:%s", c.prefix, key)
	return c.client.Redis().Del(ctx, fullKey).Err()
}

// SitemapPageKey builds the cache key for one rendered sitemap page.
// The date component rolls the key daily so lastmod stays current
// without explicit invalidation.
func SitemapPageKey(variant string, page int, date string) string {
	return fmt.Sprintf("sitemap:%s:%d:%s", variant, page, date)
}
