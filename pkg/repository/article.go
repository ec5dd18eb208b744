package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/flowreader/pkg/domain"
)

const articleColumns = `a.*, f.title AS feed_title, f.icon_url AS feed_icon
	FROM articles a JOIN feeds f ON f.id = a.feed_id`

// ArticleRepository handles article-related database operations
type ArticleRepository struct {
	db *sqlx.DB
}

// articleSQL represents an article for SQL operations
type articleSQL struct {
	ID           int64     `db:"id"`
	FeedID       int64     `db:"feed_id"`
	FeedTitle    string    `db:"feed_title"`
	FeedIcon     string    `db:"feed_icon"`
	URL          string    `db:"url"`
	Title        string    `db:"title"`
	Thumbnail    string    `db:"thumbnail"`
	Excerpt      string    `db:"excerpt"`
	Content      string    `db:"content"`
	Author       string    `db:"author"`
	Summary      string    `db:"summary"`
	Published    time.Time `db:"published"`
	ReadingTime  int       `db:"reading_time"`
	Read         bool      `db:"is_read"`
	Bookmarked   bool      `db:"is_bookmarked"`
	ScrollOffset int       `db:"scroll_offset"`
	FetchedAt    time.Time `db:"fetched_at"`
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(database *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: database}
}

// InsertArticles stores new articles in one transaction, skipping urls already known.
// Returns the number of articles actually inserted
func (r *ArticleRepository) InsertArticles(ctx context.Context, articles []domain.Article) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	var inserted int
	err := withRetry(ctx, "insert articles", func() error {
		inserted = 0
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

		stmt, err := tx.PrepareNamedContext(ctx, `
			INSERT OR IGNORE INTO articles
				(feed_id, url, title, thumbnail, excerpt, author, published, reading_time, fetched_at)
			VALUES
				(:feed_id, :url, :title, :thumbnail, :excerpt, :author, :published, :reading_time, :fetched_at)
		`)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()

		for i := range articles {
			a := fromDomainArticle(&articles[i])
			if a.FetchedAt.IsZero() {
				a.FetchedAt = now
			}
			res, err := stmt.ExecContext(ctx, a)
			if err != nil {
				return fmt.Errorf("insert %s: %w", a.URL, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("rows affected: %w", err)
			}
			inserted += int(n)
		}
		return tx.Commit()
	})
	return inserted, err
}

// GetArticle retrieves an article with its feed title and icon
func (r *ArticleRepository) GetArticle(ctx context.Context, id int64) (*domain.Article, error) {
	var a articleSQL
	if err := r.db.GetContext(ctx, &a, "SELECT "+articleColumns+" WHERE a.id = ?", id); err != nil {
		return nil, notFound("get article", err)
	}
	return a.toDomain(), nil
}

// GetArticles lists articles newest first
func (r *ArticleRepository) GetArticles(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error) {
	var where []string
	var args []any
	if filter.FeedID > 0 {
		where = append(where, "a.feed_id = ?")
		args = append(args, filter.FeedID)
	}
	if filter.OnlyBookmarked {
		where = append(where, "a.is_bookmarked = 1")
	}
	if filter.OnlyUnread {
		where = append(where, "a.is_read = 0")
	}

	query := "SELECT " + articleColumns
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY a.published DESC, a.id DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = -1 // no limit in sqlite
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, max(filter.Offset, 0))

	var rows []articleSQL
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("get articles: %w", err)
	}

	articles := make([]domain.Article, len(rows))
	for i := range rows {
		articles[i] = *rows[i].toDomain()
	}
	return articles, nil
}

// SaveContent stores extracted html and replaces the excerpt based reading time
func (r *ArticleRepository) SaveContent(ctx context.Context, id int64, html string, readingTime int) error {
	return withRetry(ctx, "save content", func() error {
		res, err := r.db.ExecContext(ctx, "UPDATE articles SET content = ?, reading_time = ? WHERE id = ?",
			html, max(readingTime, 1), id)
		if err != nil {
			return err
		}
		return checkAffected(res)
	})
}

// SaveSummary caches ai summary of an article
func (r *ArticleRepository) SaveSummary(ctx context.Context, id int64, summary string) error {
	return withRetry(ctx, "save summary", func() error {
		res, err := r.db.ExecContext(ctx, "UPDATE articles SET summary = ? WHERE id = ?", summary, id)
		if err != nil {
			return err
		}
		return checkAffected(res)
	})
}

// SetRead changes read state and recounts unread articles of the article's feed
func (r *ArticleRepository) SetRead(ctx context.Context, id int64, read bool) error {
	return withRetry(ctx, "set read", func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

		res, err := tx.ExecContext(ctx, "UPDATE articles SET is_read = ? WHERE id = ?", read, id)
		if err != nil {
			return err
		}
		if err := checkAffected(res); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, recountUnreadSQL+" WHERE id = (SELECT feed_id FROM articles WHERE id = ?)", id); err != nil {
			return fmt.Errorf("recount: %w", err)
		}
		return tx.Commit()
	})
}

// MarkAllRead marks every unread article of a feed as read, feedID 0 means all feeds.
// Returns the number of articles changed
func (r *ArticleRepository) MarkAllRead(ctx context.Context, feedID int64) (int64, error) {
	var changed int64
	err := withRetry(ctx, "mark all read", func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

		query, recount := "UPDATE articles SET is_read = 1 WHERE is_read = 0", recountUnreadSQL
		var args []any
		if feedID > 0 {
			query += " AND feed_id = ?"
			recount += " WHERE id = ?"
			args = append(args, feedID)
		}

		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		if changed, err = res.RowsAffected(); err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if _, err := tx.ExecContext(ctx, recount, args...); err != nil {
			return fmt.Errorf("recount: %w", err)
		}
		return tx.Commit()
	})
	return changed, err
}

// ToggleBookmark flips the bookmark flag and returns the new value
func (r *ArticleRepository) ToggleBookmark(ctx context.Context, id int64) (bool, error) {
	var bookmarked bool
	err := withRetry(ctx, "toggle bookmark", func() error {
		res, err := r.db.ExecContext(ctx, "UPDATE articles SET is_bookmarked = 1 - is_bookmarked WHERE id = ?", id)
		if err != nil {
			return err
		}
		if err := checkAffected(res); err != nil {
			return err
		}
		return r.db.GetContext(ctx, &bookmarked, "SELECT is_bookmarked FROM articles WHERE id = ?", id)
	})
	return bookmarked, err
}

// SaveScroll remembers the reading position of an article
func (r *ArticleRepository) SaveScroll(ctx context.Context, id int64, offset int) error {
	return withRetry(ctx, "save scroll", func() error {
		res, err := r.db.ExecContext(ctx, "UPDATE articles SET scroll_offset = ? WHERE id = ?", max(offset, 0), id)
		if err != nil {
			return err
		}
		return checkAffected(res)
	})
}

// DeleteOlderThan removes articles fetched before the cutoff, bookmarked articles are kept.
// Returns the number of deleted articles
func (r *ArticleRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	err := withRetry(ctx, "delete old articles", func() error {
		res, err := r.db.ExecContext(ctx, "DELETE FROM articles WHERE is_bookmarked = 0 AND fetched_at < ?", cutoff.UTC())
		if err != nil {
			return err
		}
		deleted, err = res.RowsAffected()
		return err
	})
	return deleted, err
}

// UnreadCount returns the number of unread articles across all feeds
func (r *ArticleRepository) UnreadCount(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM articles WHERE is_read = 0"); err != nil {
		return 0, fmt.Errorf("unread count: %w", err)
	}
	return count, nil
}

// fromDomainArticle converts domain.Article to articleSQL
func fromDomainArticle(a *domain.Article) *articleSQL {
	return &articleSQL{
		ID:           a.ID,
		FeedID:       a.FeedID,
		URL:          a.URL,
		Title:        a.Title,
		Thumbnail:    a.Thumbnail,
		Excerpt:      a.Excerpt,
		Content:      a.Content,
		Author:       a.Author,
		Summary:      a.Summary,
		Published:    a.Published.UTC(),
		ReadingTime:  max(a.ReadingTime, 1),
		Read:         a.Read,
		Bookmarked:   a.Bookmarked,
		ScrollOffset: a.ScrollOffset,
		FetchedAt:    a.FetchedAt.UTC(),
	}
}

// toDomain converts articleSQL to domain.Article
func (a *articleSQL) toDomain() *domain.Article {
	return &domain.Article{
		ID:           a.ID,
		FeedID:       a.FeedID,
		FeedTitle:    a.FeedTitle,
		FeedIcon:     a.FeedIcon,
		Title:        a.Title,
		URL:          a.URL,
		Thumbnail:    a.Thumbnail,
		Excerpt:      a.Excerpt,
		Content:      a.Content,
		Author:       a.Author,
		Summary:      a.Summary,
		Published:    a.Published,
		ReadingTime:  a.ReadingTime,
		Read:         a.Read,
		Bookmarked:   a.Bookmarked,
		ScrollOffset: a.ScrollOffset,
		FetchedAt:    a.FetchedAt,
	}
}
