package server

import (
	"context"
	"net/url"
	"strings"

	"github.com/umputun/flowreader/pkg/domain"
	"github.com/umputun/flowreader/pkg/repository"
)

// RepositoryAdapter adapts repositories to server.Database interface
type RepositoryAdapter struct {
	repos *repository.Repositories
}

// NewRepositoryAdapter creates a new repository adapter
func NewRepositoryAdapter(repos *repository.Repositories) *RepositoryAdapter {
	return &RepositoryAdapter{repos: repos}
}

// GetFeeds returns all feeds, feeds without a title are named by their host
func (r *RepositoryAdapter) GetFeeds(ctx context.Context) ([]domain.Feed, error) {
	feeds, err := r.repos.Feed.GetFeeds(ctx)
	if err != nil {
		return nil, err
	}
	for i := range feeds {
		feeds[i].Title = getFeedDisplayName(feeds[i].Title, feeds[i].URL)
	}
	return feeds, nil
}

// DeleteFeed removes a feed, its articles go with it
func (r *RepositoryAdapter) DeleteFeed(ctx context.Context, id int64) error {
	return r.repos.Feed.DeleteFeed(ctx, id)
}

// GetArticle returns a single article with feed display data
func (r *RepositoryAdapter) GetArticle(ctx context.Context, id int64) (*domain.Article, error) {
	article, err := r.repos.Article.GetArticle(ctx, id)
	if err != nil {
		return nil, err
	}
	article.FeedTitle = getFeedDisplayName(article.FeedTitle, article.URL)
	return article, nil
}

// GetArticles returns articles matching the filter, newest first
func (r *RepositoryAdapter) GetArticles(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error) {
	articles, err := r.repos.Article.GetArticles(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range articles {
		articles[i].FeedTitle = getFeedDisplayName(articles[i].FeedTitle, articles[i].URL)
	}
	return articles, nil
}

// SetRead changes read state of an article
func (r *RepositoryAdapter) SetRead(ctx context.Context, id int64, read bool) error {
	return r.repos.Article.SetRead(ctx, id, read)
}

// MarkAllRead marks articles of a feed as read, feedID 0 means all feeds
func (r *RepositoryAdapter) MarkAllRead(ctx context.Context, feedID int64) (int64, error) {
	if feedID > 0 {
		// unknown feed is reported instead of marking nothing
		if _, err := r.repos.Feed.GetFeed(ctx, feedID); err != nil {
			return 0, err
		}
	}
	return r.repos.Article.MarkAllRead(ctx, feedID)
}

// ToggleBookmark flips the bookmark flag
func (r *RepositoryAdapter) ToggleBookmark(ctx context.Context, id int64) (bool, error) {
	return r.repos.Article.ToggleBookmark(ctx, id)
}

// SaveScroll stores reading position
func (r *RepositoryAdapter) SaveScroll(ctx context.Context, id int64, offset int) error {
	return r.repos.Article.SaveScroll(ctx, id, offset)
}

// SaveSummary caches an ai summary
func (r *RepositoryAdapter) SaveSummary(ctx context.Context, id int64, summary string) error {
	return r.repos.Article.SaveSummary(ctx, id, summary)
}

// UnreadCount returns the number of unread articles
func (r *RepositoryAdapter) UnreadCount(ctx context.Context) (int, error) {
	return r.repos.Article.UnreadCount(ctx)
}

// getFeedDisplayName returns feed title or hostname from url if title is empty
func getFeedDisplayName(title, feedURL string) string {
	if title != "" {
		return title
	}

	// try to extract hostname from URL
	if u, err := url.Parse(feedURL); err == nil && u.Hostname() != "" {
		// remove www. prefix if present
		return strings.TrimPrefix(u.Hostname(), "www.")
	}

	// fallback to the full URL
	return feedURL
}
