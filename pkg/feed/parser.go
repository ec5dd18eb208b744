package feed

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	xpp "github.com/mmcdole/goxpp"
	"golang.org/x/net/html/charset"

	"github.com/umputun/flowreader/pkg/domain"
)

// known namespaces mapped back to their conventional prefixes,
// atom and rss 1.0 default namespaces have no prefix
var namespaces = map[string]string{
	"http://purl.org/rss/1.0/modules/content/":    "content",
	"http://purl.org/dc/elements/1.1/":            "dc",
	"http://purl.org/dc/terms/":                   "dcterms",
	"http://search.yahoo.com/mrss/":               "media",
	"http://search.yahoo.com/mrss":                "media",
	"http://www.w3.org/2005/Atom":                 "",
	"http://purl.org/rss/1.0/":                    "",
	"http://www.w3.org/1999/02/22-rdf-syntax-ns#": "rdf",
}

// field tags recognized inside an item or entry
var fields = map[string]string{
	"title":           "title",
	"link":            "link",
	"description":     "body",
	"summary":         "body",
	"content":         "body",
	"content:encoded": "body",
	"pubdate":         "date",
	"published":       "date",
	"updated":         "date",
	"dc:date":         "date",
	"author":          "author",
	"dc:creator":      "author",
	"name":            "author",
}

// Parser converts RSS 2.0 and Atom documents into article stubs with a
// streaming tag scan. Fields take the first non-empty value in an item
type Parser struct {
	now func() time.Time
}

// NewParser makes a feed parser
func NewParser() *Parser {
	return &Parser{now: time.Now}
}

// itemState accumulates fields of the item being scanned
type itemState struct {
	title, link, body, date, author, thumbnail string
}

// Parse scans data and returns stubs for items having both title and link, in document order
func (p *Parser) Parse(data []byte) ([]domain.ParsedItem, error) {
	xp := xpp.NewXMLPullParser(bytes.NewReader(data), false, charset.NewReaderLabel)

	var (
		items []domain.ParsedItem
		cur   *itemState
		field string // field being collected
		depth int    // markup nested inside the collected field
		skip  int    // depth inside an ignored subtree
		buf   strings.Builder
	)

	for {
		ev, err := xp.Next()
		if err != nil {
			return nil, fmt.Errorf("parse feed xml: %w", err)
		}

		switch ev {
		case xpp.EndDocument:
			return items, nil

		case xpp.StartTag:
			name := tagName(xp)
			switch {
			case name == "item" || name == "entry":
				cur, field, depth, skip = &itemState{}, "", 0, 0
			case cur == nil:
			case skip > 0 || name == "source":
				skip++
			case field == "author" && (name == "email" || name == "uri"):
				skip++
			case field != "":
				depth++
				buf.WriteByte(' ')
			default:
				cur.fromAttrs(name, xp.Attrs)
				if _, ok := fields[name]; ok {
					field, depth = name, 0
					buf.Reset()
				}
			}

		case xpp.Text:
			if cur != nil && field != "" && skip == 0 {
				buf.WriteString(xp.Text)
			}

		case xpp.EndTag:
			name := tagName(xp)
			switch {
			case cur == nil:
			case skip > 0:
				skip--
			case field != "" && depth > 0:
				depth--
				buf.WriteByte(' ')
			case field != "":
				cur.set(fields[field], buf.String())
				field = ""
			case name == "item" || name == "entry":
				if item, ok := cur.stub(p.now); ok {
					items = append(items, item)
				}
				cur = nil
			}
		}
	}
}

// set stores v into kind unless a non-empty value is already there
func (s *itemState) set(kind, v string) {
	v = strings.TrimSpace(v)
	if v == "" {
		return
	}
	var dst *string
	switch kind {
	case "title":
		dst = &s.title
	case "link":
		dst = &s.link
	case "body":
		dst = &s.body
	case "date":
		dst = &s.date
	case "author":
		dst = &s.author
	default:
		return
	}
	if *dst == "" {
		*dst = v
	}
}

// fromAttrs picks link and thumbnail values carried in attributes
func (s *itemState) fromAttrs(name string, attrs []xml.Attr) {
	switch name {
	case "link":
		rel := attrValue(attrs, "rel")
		if rel == "" || rel == "alternate" {
			s.set("link", attrValue(attrs, "href"))
		}
	case "media:thumbnail":
		s.setThumbnail(attrValue(attrs, "url"))
	case "media:content", "enclosure":
		typ, medium := attrValue(attrs, "type"), attrValue(attrs, "medium")
		if medium == "image" || strings.HasPrefix(typ, "image/") || (typ == "" && medium == "") {
			s.setThumbnail(attrValue(attrs, "url"))
		}
	}
}

func (s *itemState) setThumbnail(v string) {
	if v = strings.TrimSpace(v); v != "" && s.thumbnail == "" {
		s.thumbnail = v
	}
}

// stub builds the article stub, ok is false when title or link is missing
func (s *itemState) stub(now func() time.Time) (domain.ParsedItem, bool) {
	title := cleanText(s.title)
	if title == "" || s.link == "" {
		return domain.ParsedItem{}, false
	}
	text := cleanText(s.body)
	item := domain.ParsedItem{
		Title:     title,
		Link:      s.link,
		Excerpt:   truncate(text, excerptLength),
		Thumbnail: s.thumbnail,
		Author:    cleanText(s.author),
		Published: parseDate(s.date, now),
		WordCount: len(strings.Fields(text)),
	}
	if item.Thumbnail == "" {
		item.Thumbnail = firstImage(s.body)
	}
	return item, true
}

// tagName returns lower-cased name with the conventional namespace prefix
func tagName(xp *xpp.XMLPullParser) string {
	name := strings.ToLower(xp.Name)
	space := strings.TrimSpace(xp.Space)
	if space == "" {
		return name
	}
	prefix, ok := namespaces[space]
	if !ok {
		if strings.Contains(space, "/") {
			return "?:" + name // unknown namespace, never a recognized field
		}
		prefix = strings.ToLower(space) // undeclared prefix
	}
	if prefix == "" {
		return name
	}
	return prefix + ":" + name
}

func attrValue(attrs []xml.Attr, name string) string {
	for _, a := range attrs {
		if strings.EqualFold(a.Name.Local, name) {
			return strings.TrimSpace(a.Value)
		}
	}
	return ""
}
