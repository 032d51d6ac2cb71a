package news

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"matchday-backend/internal/domain"
)

func TestFreshPredicate(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	ttl := 10 * time.Minute

	assert.False(t, Fresh(time.Time{}, ttl, now), "zero fetch time is never fresh")
	assert.True(t, Fresh(now.Add(-5*time.Minute), ttl, now))
	assert.False(t, Fresh(now.Add(-10*time.Minute), ttl, now), "exactly at TTL is stale")
	assert.False(t, Fresh(now.Add(-time.Hour), ttl, now))
}

func TestCacheRoundTrip(t *testing.T) {
	c := NewCache(10 * time.Minute)
	now := time.Now()

	_, ok := c.Get(now)
	assert.False(t, ok, "empty cache misses")

	articles := []domain.NewsArticle{{Title: "a", Link: "l", Source: "s"}}
	c.Put(articles, now)

	got, ok := c.Get(now.Add(9 * time.Minute))
	assert.True(t, ok)
	assert.Equal(t, articles, got)

	_, ok = c.Get(now.Add(11 * time.Minute))
	assert.False(t, ok, "cache expires after TTL")
}
