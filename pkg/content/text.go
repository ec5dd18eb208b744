package content

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicy = bluemonday.StrictPolicy().AddSpaceWhenStrippingTag(true)
	htmlPolicy = newHTMLPolicy()
)

func newHTMLPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("loading").OnElements("img")
	p.RequireNoReferrerOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// PlainText strips all markup from html and collapses whitespace
func PlainText(s string) string {
	return strings.Join(strings.Fields(html.UnescapeString(textPolicy.Sanitize(s))), " ")
}

// Sanitize keeps safe article markup only, cleaned content passes through it before it is stored
func Sanitize(s string) string {
	return strings.TrimSpace(htmlPolicy.Sanitize(s))
}
