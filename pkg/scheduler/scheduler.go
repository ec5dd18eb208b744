// Package scheduler refreshes feeds, adds new subscriptions and sweeps old articles
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/umputun/flowreader/pkg/content"
	"github.com/umputun/flowreader/pkg/domain"
)

//go:generate moq -out mocks/feed_manager.go -pkg mocks -skip-ensure -fmt goimports . FeedManager
//go:generate moq -out mocks/article_manager.go -pkg mocks -skip-ensure -fmt goimports . ArticleManager
//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/parser.go -pkg mocks -skip-ensure -fmt goimports . Parser

// errors returned by AddFeed
var (
	ErrInvalidURL  = errors.New("invalid feed url")
	ErrFeedExists  = errors.New("feed already added")
	ErrFeedFailure = errors.New("could not add feed")
)

// FeedManager handles feed persistence
type FeedManager interface {
	GetFeeds(ctx context.Context) ([]domain.Feed, error)
	CreateFeed(ctx context.Context, feed *domain.Feed) (bool, error)
	UpdateUnreadCount(ctx context.Context, feedID int64) error
	UpdateUnreadCounts(ctx context.Context) error
}

// ArticleManager handles article persistence
type ArticleManager interface {
	InsertArticles(ctx context.Context, articles []domain.Article) (int, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Fetcher downloads raw feed documents
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Parser turns feed documents into article stubs and feed metadata
type Parser interface {
	Parse(data []byte) ([]domain.ParsedItem, error)
	Discover(data []byte, feedURL string) (domain.Feed, error)
}

// Params holds scheduler dependencies and configuration
type Params struct {
	FeedManager    FeedManager
	ArticleManager ArticleManager
	Fetcher        Fetcher
	Parser         Parser

	UpdateInterval  time.Duration // periodic refresh, 0 disables the refresh worker
	CleanupInterval time.Duration // periodic retention sweep, 0 disables the cleanup worker
	Retention       time.Duration // unbookmarked articles older than this are deleted, 0 keeps everything
	MaxWorkers      int
}

// RefreshStats summarizes one batch refresh
type RefreshStats struct {
	Feeds       int   `json:"feeds"`
	Failed      int   `json:"failed"`
	NewArticles int   `json:"new_articles"`
	Deleted     int64 `json:"deleted"`
}

// Scheduler runs feed refreshes on demand and periodically
type Scheduler struct {
	feedManager    FeedManager
	articleManager ArticleManager
	fetcher        Fetcher
	parser         Parser

	updateInterval  time.Duration
	cleanupInterval time.Duration
	retention       time.Duration
	maxWorkers      int

	refreshGroup singleflight.Group
	wg           sync.WaitGroup
	cancel       context.CancelFunc
	now          func() time.Time
}

// NewScheduler creates a new scheduler instance
func NewScheduler(params Params) *Scheduler {
	if params.MaxWorkers <= 0 {
		params.MaxWorkers = 5
	}
	return &Scheduler{
		feedManager:     params.FeedManager,
		articleManager:  params.ArticleManager,
		fetcher:         params.Fetcher,
		parser:          params.Parser,
		updateInterval:  params.UpdateInterval,
		cleanupInterval: params.CleanupInterval,
		retention:       params.Retention,
		maxWorkers:      params.MaxWorkers,
		now:             time.Now,
	}
}

// Start begins the background workers
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	if s.updateInterval > 0 {
		s.wg.Add(1)
		go s.worker(ctx, s.updateInterval, true, func(ctx context.Context) {
			if _, err := s.Refresh(ctx); err != nil {
				lgr.Printf("[WARN] periodic refresh failed: %v", err)
			}
		})
	}

	if s.cleanupInterval > 0 && s.retention > 0 {
		s.wg.Add(1)
		go s.worker(ctx, s.cleanupInterval, false, func(ctx context.Context) {
			if _, err := s.Cleanup(ctx); err != nil {
				lgr.Printf("[WARN] periodic cleanup failed: %v", err)
			}
		})
	}

	lgr.Printf("[INFO] scheduler started with update interval %v, cleanup interval %v, retention %v",
		s.updateInterval, s.cleanupInterval, s.retention)
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

func (s *Scheduler) worker(ctx context.Context, interval time.Duration, immediate bool, fn func(ctx context.Context)) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if immediate {
		fn(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(ctx)
		}
	}
}

// Refresh fetches all feeds concurrently and stores new articles. A failing feed
// contributes nothing and never fails the batch. Concurrent calls share one run
func (s *Scheduler) Refresh(ctx context.Context) (RefreshStats, error) {
	v, err, _ := s.refreshGroup.Do("refresh", func() (any, error) {
		return s.refresh(ctx)
	})
	if err != nil {
		return RefreshStats{}, err
	}
	return v.(RefreshStats), nil
}

func (s *Scheduler) refresh(ctx context.Context) (RefreshStats, error) {
	feeds, err := s.feedManager.GetFeeds(ctx)
	if err != nil {
		return RefreshStats{}, fmt.Errorf("get feeds: %w", err)
	}

	lgr.Printf("[INFO] updating %d feeds", len(feeds))
	stats := RefreshStats{Feeds: len(feeds)}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxWorkers)
	for _, f := range feeds {
		g.Go(func() error {
			n, err := s.updateFeed(gctx, f)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				lgr.Printf("[WARN] failed to update feed %s: %v", f.URL, err)
				stats.Failed++
				return nil
			}
			stats.NewArticles += n
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	if err := s.feedManager.UpdateUnreadCounts(ctx); err != nil {
		lgr.Printf("[WARN] failed to update unread counts: %v", err)
	}

	if stats.Deleted, err = s.Cleanup(ctx); err != nil {
		lgr.Printf("[WARN] retention cleanup failed: %v", err)
	}

	lgr.Printf("[INFO] feed update completed, %d new articles, %d failed feeds, %d deleted",
		stats.NewArticles, stats.Failed, stats.Deleted)
	return stats, nil
}

// updateFeed fetches one feed and inserts its articles, returns the number of new ones
func (s *Scheduler) updateFeed(ctx context.Context, f domain.Feed) (int, error) {
	lgr.Printf("[DEBUG] updating feed: %s", f.URL)
	data, err := s.fetcher.Fetch(ctx, f.URL)
	if err != nil {
		return 0, fmt.Errorf("fetch: %w", err)
	}
	return s.storeItems(ctx, f.ID, data)
}

func (s *Scheduler) storeItems(ctx context.Context, feedID int64, data []byte) (int, error) {
	items, err := s.parser.Parse(data)
	if err != nil {
		return 0, fmt.Errorf("parse: %w", err)
	}

	n, err := s.articleManager.InsertArticles(ctx, toArticles(feedID, items))
	if err != nil {
		return 0, fmt.Errorf("insert articles: %w", err)
	}
	if n > 0 {
		lgr.Printf("[DEBUG] added %d new articles to feed %d", n, feedID)
	}
	return n, nil
}

// AddFeed subscribes to a feed url, storing its metadata and first articles
func (s *Scheduler) AddFeed(ctx context.Context, rawURL string) (*domain.Feed, error) {
	feedURL, err := normalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	data, err := s.fetcher.Fetch(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedFailure, err)
	}

	f, err := s.parser.Discover(data, feedURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedFailure, err)
	}

	created, err := s.feedManager.CreateFeed(ctx, &f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedFailure, err)
	}
	if !created {
		return nil, ErrFeedExists
	}
	lgr.Printf("[INFO] added feed %q, %s", f.Title, f.URL)

	// the feed is stored even if its first articles can't be
	if _, err := s.storeItems(ctx, f.ID, data); err != nil {
		lgr.Printf("[WARN] failed to store articles of new feed %s: %v", f.URL, err)
	}
	if err := s.feedManager.UpdateUnreadCount(ctx, f.ID); err != nil {
		lgr.Printf("[WARN] failed to update unread count of feed %d: %v", f.ID, err)
	}
	return &f, nil
}

// Cleanup deletes unbookmarked articles older than the retention period
func (s *Scheduler) Cleanup(ctx context.Context) (int64, error) {
	if s.retention <= 0 {
		return 0, nil
	}
	deleted, err := s.articleManager.DeleteOlderThan(ctx, s.now().Add(-s.retention))
	if err != nil {
		return 0, fmt.Errorf("delete old articles: %w", err)
	}
	if deleted > 0 {
		lgr.Printf("[INFO] deleted %d articles older than %v", deleted, s.retention)
	}
	return deleted, nil
}

// normalizeURL accepts http(s) urls, a missing scheme defaults to https
func normalizeURL(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", ErrInvalidURL
	}
	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", ErrInvalidURL
	}
	return u.String(), nil
}

// toArticles converts parsed stubs, reading time is estimated from the feed text
func toArticles(feedID int64, items []domain.ParsedItem) []domain.Article {
	res := make([]domain.Article, 0, len(items))
	for _, it := range items {
		res = append(res, domain.Article{
			FeedID:      feedID,
			Title:       it.Title,
			URL:         it.Link,
			Thumbnail:   it.Thumbnail,
			Excerpt:     it.Excerpt,
			Author:      it.Author,
			Published:   it.Published,
			ReadingTime: content.ReadingTime(it.WordCount),
		})
	}
	return res
}
