package domain

import "time"

// Feed represents a subscribed RSS/Atom source
type Feed struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	SiteURL     string    `json:"site_url"`
	IconURL     string    `json:"icon_url"`
	UnreadCount int       `json:"unread_count"` // derived, recomputed after read-state changes
	CreatedAt   time.Time `json:"created_at"`
}

// ParsedItem is an article stub produced by the feed parser
type ParsedItem struct {
	Title     string
	Link      string
	Excerpt   string
	Thumbnail string
	Author    string
	Published time.Time
	WordCount int
}
