// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"customblog/internal/blog"
)

const (
	// listingKeyPrefix is the Valkey key prefix for cached article pages.
	listingKeyPrefix = "listing:"

	// DefaultListingTTL is how long an article page stays cached.
	DefaultListingTTL = 5 * time.Minute
)

// ListingCache stores article pages in Valkey as JSON. Every blog has a
// generation counter that is part of each of its page keys; bumping the
// counter retires all of the blog's pages at once, and a page computed
// before the bump can only ever be written under a retired key. Retired
// pages expire with the TTL. A nil *ListingCache is valid and caches nothing.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewListingCache creates a listing cache backed by the given Valkey client.
func NewListingCache(client *redis.Client, ttl time.Duration) *ListingCache {
	if ttl == 0 {
		ttl = DefaultListingTTL
	}
	return &ListingCache{client: client, ttl: ttl}
}

// Listing identifies one page of a blog's articles, or of a category's
// articles when CategoryID is set.
type Listing struct {
	BlogID     uuid.UUID
	CategoryID *uuid.UUID
	Page       int
}

// key returns the cache key of l at generation gen.
func (l Listing) key(gen int64) string {
	if l.CategoryID != nil {
		return CategoryKey(l.BlogID, gen, *l.CategoryID, l.Page)
	}
	return BlogKey(l.BlogID, gen, l.Page)
}

// generationKey returns the key of a blog's generation counter.
func generationKey(blogID uuid.UUID) string {
	return fmt.Sprintf("%s%s:gen", listingKeyPrefix, blogID)
}

// BlogKey returns the cache key for one page of a blog's articles.
func BlogKey(blogID uuid.UUID, gen int64, page int) string {
	return fmt.Sprintf("%s%s:%d:all:%d", listingKeyPrefix, blogID, gen, page)
}

// CategoryKey returns the cache key for one page of a category's articles.
func CategoryKey(blogID uuid.UUID, gen int64, categoryID uuid.UUID, page int) string {
	return fmt.Sprintf("%s%s:%d:cat:%s:%d", listingKeyPrefix, blogID, gen, categoryID, page)
}

// Fetch returns the page described by l from the cache, calling load on a
// miss and caching what it returns. The blog's generation is read before
// load runs, so a page loaded concurrently with InvalidateBlog is stored
// under the retired generation. Loaded pages are cached under the page
// number the listing was clamped to, so out-of-range requests never add
// keys. Cache failures fall back to load.
func (lc *ListingCache) Fetch(ctx context.Context, l Listing, load func(context.Context) (*blog.ArticlePage, error)) (*blog.ArticlePage, error) {
	if lc == nil {
		return load(ctx)
	}

	gen, err := lc.generation(ctx, l.BlogID)
	if err != nil {
		slog.Warn("listing cache generation error", "blog_id", l.BlogID, "error", err)
		return load(ctx)
	}

	if l.Page < 1 {
		l.Page = 1
	}
	if page, ok := lc.get(ctx, l.key(gen)); ok {
		return page, nil
	}

	page, err := load(ctx)
	if err != nil {
		return nil, err
	}
	l.Page = page.Pagination.Page
	lc.set(ctx, l.key(gen), page)
	return page, nil
}

// generation returns the blog's current generation, 0 if never bumped.
func (lc *ListingCache) generation(ctx context.Context, blogID uuid.UUID) (int64, error) {
	gen, err := lc.client.Get(ctx, generationKey(blogID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return gen, err
}

func (lc *ListingCache) get(ctx context.Context, key string) (*blog.ArticlePage, bool) {
	val, err := lc.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("listing cache get error", "key", key, "error", err)
		return nil, false
	}

	var page blog.ArticlePage
	if err := json.Unmarshal(val, &page); err != nil {
		slog.Warn("listing cache decode error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("listing cache hit", "key", key)
	return &page, true
}

func (lc *ListingCache) set(ctx context.Context, key string, page *blog.ArticlePage) {
	val, err := json.Marshal(page)
	if err != nil {
		slog.Warn("listing cache encode error", "key", key, "error", err)
		return
	}
	if err := lc.client.Set(ctx, key, val, lc.ttl).Err(); err != nil {
		slog.Warn("listing cache set error", "key", key, "error", err)
	}
}

// InvalidateBlog retires every cached page of a blog by bumping its
// generation. Call it after the write has committed.
func (lc *ListingCache) InvalidateBlog(ctx context.Context, blogID uuid.UUID) {
	if lc == nil {
		return
	}
	gen, err := lc.client.Incr(ctx, generationKey(blogID)).Result()
	if err != nil {
		slog.Warn("listing cache invalidate error", "blog_id", blogID, "error", err)
		return
	}
	slog.Debug("listing cache invalidated", "blog_id", blogID, "generation", gen)
}
