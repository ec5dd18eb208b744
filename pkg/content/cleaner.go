package content

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"
)

var (
	priceRe   = regexp.MustCompile(`[$€£₹¥]\d[\d,.]*`)
	numericRe = regexp.MustCompile(`^[\d,.%+\-\s]+$`)
)

// Cleaner is the aggressive, site-aware pass run after the Stripper. It
// re-extracts a known main container, drops publisher-specific chrome and
// short junk text and replaces video embeds with static links
type Cleaner struct {
	main         []goquery.Matcher
	junk         []goquery.Matcher
	orphans      goquery.Matcher
	empty        goquery.Matcher
	orphanMaxLen int
	whitelistMin int
	junkExact    map[string]bool
	junkList     []string
}

// NewCleaner makes a site-aware cleaner from rule tables
func NewCleaner(rules *Rules) *Cleaner {
	cr := rules.Cleaner
	c := &Cleaner{
		main:         compileSelectors("main", cr.MainSelectors...),
		junk:         compileSelectors("junk", cr.JunkSelectors...),
		orphans:      compileSelector("orphan", cr.OrphanElements),
		empty:        compileSelector("empty", cr.EmptyElements),
		orphanMaxLen: cr.OrphanMaxLength,
		whitelistMin: rules.Thresholds.WhitelistMinText,
		junkList:     lowerAll(cr.JunkText),
		junkExact:    map[string]bool{},
	}
	for _, j := range c.junkList {
		c.junkExact[j] = true
	}
	return c
}

// Clean applies main-container re-extraction, denylist removal, orphan junk
// removal, empty element sweep and video substitution, in this order
func (c *Cleaner) Clean(htmlText string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		lgr.Printf("[WARN] cleaner can't parse html: %v", err)
		return htmlText
	}

	c.reextract(doc)
	for _, m := range c.junk {
		doc.FindMatcher(m).Remove()
	}
	c.removeOrphans(doc)
	c.sweepEmpty(doc)
	replaceVideos(doc)

	res, err := doc.Find("body").Html()
	if err != nil {
		lgr.Printf("[WARN] cleaner can't render html: %v", err)
		return htmlText
	}
	return strings.TrimSpace(res)
}

// reextract replaces the body with the first known main container holding enough text
func (c *Cleaner) reextract(doc *goquery.Document) {
	body := doc.Find("body")
	if body.Length() == 0 {
		return
	}
	bodyNode := body.Nodes[0]
	for _, m := range c.main {
		found := doc.FindMatcher(m).FilterFunction(func(_ int, s *goquery.Selection) bool {
			return textLen(s) > c.whitelistMin
		}).First()
		if found.Length() == 0 {
			continue
		}
		node := found.Nodes[0]
		if node == bodyNode {
			return
		}
		node.Parent.RemoveChild(node)
		for ch := bodyNode.FirstChild; ch != nil; ch = bodyNode.FirstChild {
			bodyNode.RemoveChild(ch)
		}
		bodyNode.AppendChild(node)
		return
	}
}

// removeOrphans drops short leaf elements whose text looks like ui junk, a price or a counter
func (c *Cleaner) removeOrphans(doc *goquery.Document) {
	if c.orphans == nil {
		return
	}
	doc.FindMatcher(c.orphans).Each(func(_ int, el *goquery.Selection) {
		if el.Children().Length() > 0 {
			return
		}
		text := collapseSpaces(el.Text())
		if len([]rune(text)) < c.orphanMaxLen && c.isJunkText(text) {
			el.Remove()
		}
	})
}

// sweepEmpty removes p/div elements left with no text and no media
func (c *Cleaner) sweepEmpty(doc *goquery.Document) {
	if c.empty == nil {
		return
	}
	doc.FindMatcher(c.empty).Each(func(_ int, el *goquery.Selection) {
		if strings.TrimSpace(el.Text()) != "" {
			return
		}
		if el.Find("img, picture, video, iframe, svg, embed, object").Length() > 0 {
			return
		}
		el.Remove()
	})
}

// isJunkText reports whether a short text is ui chrome rather than article prose
func (c *Cleaner) isJunkText(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return true
	}
	if c.junkExact[lower] {
		return true
	}
	for _, j := range c.junkList {
		if strings.HasPrefix(lower, j+" ") || strings.HasSuffix(lower, " "+j) {
			return true
		}
	}
	return priceRe.MatchString(lower) || numericRe.MatchString(lower)
}
