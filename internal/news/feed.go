package news

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"matchday-backend/internal/domain"
	"matchday-backend/internal/logger"
)

// Source is one scrapable news site.
type Source struct {
	Name  string
	Fetch func(ctx context.Context) ([]domain.NewsArticle, error)
}

// Feed aggregates all sources behind a TTL cache. A source that fails
// contributes nothing; the feed only errors when every source came back
// empty.
type Feed struct {
	sources []Source
	cache   *Cache
}

func NewFeed(sources []Source, cache *Cache) *Feed {
	return &Feed{sources: sources, cache: cache}
}

// Latest returns the cached feed when fresh, otherwise re-scrapes.
func (f *Feed) Latest(ctx context.Context) ([]domain.NewsArticle, error) {
	if articles, ok := f.cache.Get(time.Now()); ok {
		logger.Debug("Serving sports news from cache", "articles", len(articles))
		return articles, nil
	}
	logger.Info("News cache stale, re-scraping sources")
	return f.Refresh(ctx)
}

// Refresh scrapes every source in parallel and replaces the cache.
func (f *Feed) Refresh(ctx context.Context) ([]domain.NewsArticle, error) {
	results := make([][]domain.NewsArticle, len(f.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range f.sources {
		i, src := i, src
		g.Go(func() error {
			logger.ExternalServiceCall(src.Name, "scrape")
			articles, err := src.Fetch(gctx)
			logger.ExternalServiceResult(src.Name, "scrape", err, "articles", len(articles))
			if err != nil {
				// One dead source must not sink the aggregate.
				return nil
			}
			results[i] = articles
			return nil
		})
	}
	_ = g.Wait()

	var all []domain.NewsArticle
	for _, r := range results {
		all = append(all, r...)
	}
	if len(all) == 0 {
		return nil, errors.New("no news could be collected from any source")
	}

	f.cache.Put(all, time.Now())
	logger.Info("News cache refreshed", "articles", len(all))
	return all, nil
}
