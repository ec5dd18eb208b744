package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/umputun/flowreader/pkg/domain"
)

type opmlOutline struct {
	Text     string        `xml:"text,attr"`
	Title    string        `xml:"title,attr,omitempty"`
	Type     string        `xml:"type,attr,omitempty"`
	XMLURL   string        `xml:"xmlUrl,attr,omitempty"`
	HTMLURL  string        `xml:"htmlUrl,attr,omitempty"`
	Outlines []opmlOutline `xml:"outline"` // folders nest outlines
}

type opmlDoc struct {
	XMLName xml.Name `xml:"opml"`
	Version string   `xml:"version,attr"`
	Head    struct {
		Title       string `xml:"title"`
		DateCreated string `xml:"dateCreated,omitempty"`
	} `xml:"head"`
	Body struct {
		Outlines []opmlOutline `xml:"outline"`
	} `xml:"body"`
}

// ExportOPML writes feed subscriptions as an OPML 2.0 document
func ExportOPML(feeds []domain.Feed, created time.Time) ([]byte, error) {
	doc := opmlDoc{Version: "2.0"}
	doc.Head.Title = "FlowReader subscriptions"
	doc.Head.DateCreated = created.UTC().Format(time.RFC1123Z)

	doc.Body.Outlines = make([]opmlOutline, 0, len(feeds))
	for _, f := range feeds {
		title := f.Title
		if title == "" {
			title = f.URL
		}
		doc.Body.Outlines = append(doc.Body.Outlines, opmlOutline{
			Text:    title,
			Title:   title,
			Type:    "rss",
			XMLURL:  f.URL,
			HTMLURL: f.SiteURL,
		})
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal OPML: %w", err)
	}
	return append([]byte(xml.Header), output...), nil
}

// ImportOPML returns feed urls of an OPML document in document order, folders are flattened
// and repeated urls are returned once
func ImportOPML(data []byte) ([]string, error) {
	var doc opmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse OPML: %w", err)
	}

	seen := map[string]bool{}
	var urls []string
	var walk func(outlines []opmlOutline)
	walk = func(outlines []opmlOutline) {
		for _, o := range outlines {
			if u := strings.TrimSpace(o.XMLURL); u != "" && !seen[u] {
				seen[u] = true
				urls = append(urls, u)
			}
			walk(o.Outlines)
		}
	}
	walk(doc.Body.Outlines)
	return urls, nil
}
