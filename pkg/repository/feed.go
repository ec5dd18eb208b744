package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/flowreader/pkg/domain"
)

// FeedRepository handles feed-related database operations
type FeedRepository struct {
	db *sqlx.DB
}

// feedSQL represents a feed for SQL operations
type feedSQL struct {
	ID          int64     `db:"id"`
	URL         string    `db:"url"`
	Title       string    `db:"title"`
	SiteURL     string    `db:"site_url"`
	IconURL     string    `db:"icon_url"`
	UnreadCount int       `db:"unread_count"`
	CreatedAt   time.Time `db:"created_at"`
}

// NewFeedRepository creates a new feed repository
func NewFeedRepository(database *sqlx.DB) *FeedRepository {
	return &FeedRepository{db: database}
}

// CreateFeed inserts a feed unless one with the same url exists. Returns false for
// a duplicate, in that case feed.ID is set to the existing feed
func (r *FeedRepository) CreateFeed(ctx context.Context, feed *domain.Feed) (bool, error) {
	if feed.CreatedAt.IsZero() {
		feed.CreatedAt = time.Now().UTC()
	}
	sqlFeed := &feedSQL{
		URL:       feed.URL,
		Title:     feed.Title,
		SiteURL:   feed.SiteURL,
		IconURL:   feed.IconURL,
		CreatedAt: feed.CreatedAt,
	}

	var created bool
	err := withRetry(ctx, "create feed", func() error {
		query := `
			INSERT OR IGNORE INTO feeds (url, title, site_url, icon_url, created_at)
			VALUES (:url, :title, :site_url, :icon_url, :created_at)
		`
		res, err := r.db.NamedExecContext(ctx, query, sqlFeed)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		created = n > 0
		return nil
	})
	if err != nil {
		return false, err
	}

	if err := r.db.GetContext(ctx, &feed.ID, "SELECT id FROM feeds WHERE url = ?", feed.URL); err != nil {
		return false, notFound("get feed id", err)
	}
	return created, nil
}

// GetFeed retrieves a feed by ID
func (r *FeedRepository) GetFeed(ctx context.Context, id int64) (*domain.Feed, error) {
	var sqlFeed feedSQL
	if err := r.db.GetContext(ctx, &sqlFeed, "SELECT * FROM feeds WHERE id = ?", id); err != nil {
		return nil, notFound("get feed", err)
	}
	return sqlFeed.toDomain(), nil
}

// GetFeeds returns all feeds ordered by title
func (r *FeedRepository) GetFeeds(ctx context.Context) ([]domain.Feed, error) {
	var sqlFeeds []feedSQL
	if err := r.db.SelectContext(ctx, &sqlFeeds, "SELECT * FROM feeds ORDER BY title COLLATE NOCASE, id"); err != nil {
		return nil, fmt.Errorf("get feeds: %w", err)
	}

	feeds := make([]domain.Feed, len(sqlFeeds))
	for i := range sqlFeeds {
		feeds[i] = *sqlFeeds[i].toDomain()
	}
	return feeds, nil
}

// DeleteFeed removes a feed and, by cascade, all its articles
func (r *FeedRepository) DeleteFeed(ctx context.Context, id int64) error {
	return withRetry(ctx, "delete feed", func() error {
		res, err := r.db.ExecContext(ctx, "DELETE FROM feeds WHERE id = ?", id)
		if err != nil {
			return err
		}
		return checkAffected(res)
	})
}

// UpdateUnreadCount recomputes the cached unread counter of one feed
func (r *FeedRepository) UpdateUnreadCount(ctx context.Context, feedID int64) error {
	return withRetry(ctx, "update unread count", func() error {
		_, err := r.db.ExecContext(ctx, recountUnreadSQL+" WHERE id = ?", feedID)
		return err
	})
}

// UpdateUnreadCounts recomputes unread counters of all feeds
func (r *FeedRepository) UpdateUnreadCounts(ctx context.Context) error {
	return withRetry(ctx, "update unread counts", func() error {
		_, err := r.db.ExecContext(ctx, recountUnreadSQL)
		return err
	})
}

// toDomain converts feedSQL to domain.Feed
func (f *feedSQL) toDomain() *domain.Feed {
	return &domain.Feed{
		ID:          f.ID,
		Title:       f.Title,
		URL:         f.URL,
		SiteURL:     f.SiteURL,
		IconURL:     f.IconURL,
		UnreadCount: f.UnreadCount,
		CreatedAt:   f.CreatedAt,
	}
}
