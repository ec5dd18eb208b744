package feed

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/umputun/flowreader/pkg/domain"
)

// Discover reads feed-level metadata of a newly added feed. It fails when
// data is not a recognizable RSS or Atom document
func Discover(data []byte, feedURL string) (domain.Feed, error) {
	if gofeed.DetectFeedType(bytes.NewReader(data)) == gofeed.FeedTypeUnknown {
		return domain.Feed{}, fmt.Errorf("not a rss or atom feed")
	}

	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil {
		return domain.Feed{}, fmt.Errorf("parse feed: %w", err)
	}

	u, err := url.Parse(feedURL)
	if err != nil {
		return domain.Feed{}, fmt.Errorf("parse feed url: %w", err)
	}

	res := domain.Feed{
		URL:     feedURL,
		Title:   cleanText(parsed.Title),
		SiteURL: strings.TrimSpace(parsed.Link),
	}
	if res.SiteURL == "" {
		res.SiteURL = u.Scheme + "://" + u.Host
	}
	if res.Title == "" {
		res.Title = strings.TrimPrefix(u.Hostname(), "www.")
	}

	host := u.Hostname()
	if site, err := url.Parse(res.SiteURL); err == nil && site.Hostname() != "" {
		host = site.Hostname()
	}
	res.IconURL = FaviconURL(host)
	return res, nil
}

// Discover is Discover bound to the parser, for callers holding a parser interface
func (p *Parser) Discover(data []byte, feedURL string) (domain.Feed, error) {
	return Discover(data, feedURL)
}

// FaviconURL returns the favicon service url for a domain
func FaviconURL(domainName string) string {
	return "https://www.google.com/s2/favicons?domain=" + url.QueryEscape(domainName) + "&sz=64"
}
