package news

import (
	"sync"
	"time"

	"matchday-backend/internal/domain"
)

// Cache holds the last scraped feed with its fetch timestamp. It is an
// explicit value owned by the feed, not package state.
type Cache struct {
	mu        sync.Mutex
	articles  []domain.NewsArticle
	fetchedAt time.Time
	ttl       time.Duration
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl}
}

// Fresh is the freshness predicate: a payload fetched at fetchedAt is
// served until ttl has elapsed. A zero fetchedAt is never fresh.
func Fresh(fetchedAt time.Time, ttl time.Duration, now time.Time) bool {
	if fetchedAt.IsZero() {
		return false
	}
	return now.Sub(fetchedAt) < ttl
}

// Get returns the cached articles if they are still fresh at now.
func (c *Cache) Get(now time.Time) ([]domain.NewsArticle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.articles) == 0 || !Fresh(c.fetchedAt, c.ttl, now) {
		return nil, false
	}
	return c.articles, true
}

// Put replaces the cached payload and restarts the freshness window.
func (c *Cache) Put(articles []domain.NewsArticle, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.articles = articles
	c.fetchedAt = now
}
