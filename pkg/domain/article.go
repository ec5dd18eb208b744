package domain

import (
	"strings"
	"time"
)

// Article represents a stored feed entry with its lazily extracted content
type Article struct {
	ID           int64     `json:"id"`
	FeedID       int64     `json:"feed_id"`
	FeedTitle    string    `json:"feed_title"`
	FeedIcon     string    `json:"feed_icon"`
	Title        string    `json:"title"`
	URL          string    `json:"url"`
	Thumbnail    string    `json:"thumbnail,omitempty"`
	Excerpt      string    `json:"excerpt"`
	Content      string    `json:"content,omitempty"` // cleaned html, empty until first read
	Author       string    `json:"author,omitempty"`
	Summary      string    `json:"summary,omitempty"` // cached ai summary
	Published    time.Time `json:"published"`
	ReadingTime  int       `json:"reading_time"` // minutes
	Read         bool      `json:"read"`
	Bookmarked   bool      `json:"bookmarked"`
	ScrollOffset int       `json:"scroll_offset"`
	FetchedAt    time.Time `json:"fetched_at"`
}

// HasContent reports whether full content was already extracted and stored
func (a *Article) HasContent() bool {
	return strings.TrimSpace(a.Content) != ""
}

// ArticleFilter narrows article listing
type ArticleFilter struct {
	FeedID         int64
	OnlyBookmarked bool
	OnlyUnread     bool
	Limit          int
	Offset         int
}

// ExtractionResult is the transient output of an extraction tier
type ExtractionResult struct {
	Title   string
	Content string // html
	Author  string
	Success bool
}
