package feed

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"

	"github.com/umputun/flowreader/pkg/content"
)

const excerptLength = 250

// date layouts tried in order before the generic parser
var dateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	time.RFC822Z,
	time.RFC822,
}

// parseDate never fails, unparsable or missing dates become now
func parseDate(s string, now func() time.Time) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return now()
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	if t, err := dateparse.ParseIn(s, time.UTC); err == nil {
		return t
	}
	return now()
}

// cleanText strips markup, unescapes entities and collapses whitespace
func cleanText(s string) string {
	if s == "" {
		return ""
	}
	return content.PlainText(s)
}

// truncate cuts s to at most n runes
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n]))
}

// firstImage returns the first absolute image source found in an html fragment
func firstImage(fragment string) string {
	if !strings.Contains(fragment, "<img") {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	var src string
	doc.Find("img[src]").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		v := strings.TrimSpace(img.AttrOr("src", ""))
		if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
			src = v
			return false
		}
		return true
	})
	return src
}
