package content

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"
)

var paddingBottomRe = regexp.MustCompile(`(?i)padding-bottom\s*:\s*[\d.]+%\s*;?`)

// Stripper removes generic page chrome from article html. It prunes inside
// the content and never picks a different root, applying it twice gives the
// same result as applying it once
type Stripper struct {
	selectors      []goquery.Matcher
	phraseElements goquery.Matcher
	phrases        []string
	lazyAttrs      []string
	pixels         []string
	placeholders   []string
}

// NewStripper makes a boilerplate stripper from rule tables
func NewStripper(rules *Rules) *Stripper {
	sr := rules.Stripper
	return &Stripper{
		selectors:      compileSelectors("stripper", sr.Selectors...),
		phraseElements: compileSelector("phrase", sr.PhraseElements),
		phrases:        lowerAll(sr.Phrases),
		lazyAttrs:      sr.LazyAttrs,
		pixels:         sr.TrackingPixels,
		placeholders:   lowerAll(sr.PlaceholderMarkers),
	}
}

// Clean runs selector removal, lead-in phrase removal and lazy image repair
func (s *Stripper) Clean(htmlText string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		lgr.Printf("[WARN] stripper can't parse html: %v", err)
		return htmlText
	}

	for _, m := range s.selectors {
		doc.FindMatcher(m).Remove()
	}

	// removing an element can expose a phrase at the start of its parent
	for {
		if s.removePhrases(doc) == 0 {
			break
		}
	}

	s.repairImages(doc)
	stripPaddingHacks(doc)

	res, err := doc.Find("body").Html()
	if err != nil {
		lgr.Printf("[WARN] stripper can't render html: %v", err)
		return htmlText
	}
	return strings.TrimSpace(res)
}

// removePhrases drops elements whose text starts with a junk lead-in, returns removed count.
// outer elements are visited first, so a widget goes away with its heading
func (s *Stripper) removePhrases(doc *goquery.Document) int {
	if s.phraseElements == nil || len(s.phrases) == 0 {
		return 0
	}
	removed := 0
	doc.FindMatcher(s.phraseElements).Each(func(_ int, el *goquery.Selection) {
		if el.Closest("body").Length() == 0 {
			return // already detached with a removed ancestor
		}
		text := strings.ToLower(collapseSpaces(el.Text()))
		if text == "" {
			return
		}
		for _, p := range s.phrases {
			if strings.HasPrefix(text, p) {
				el.Remove()
				removed++
				return
			}
		}
	})
	return removed
}

// repairImages promotes absolute lazy sources and drops images with nothing to show
func (s *Stripper) repairImages(doc *goquery.Document) {
	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		src := strings.TrimSpace(img.AttrOr("src", ""))
		if src == "" || s.isPixel(src) || s.isPlaceholder(src) {
			for _, attr := range s.lazyAttrs {
				v := strings.TrimSpace(img.AttrOr(attr, ""))
				if v == "" {
					continue
				}
				if isAbsHTTP(v) {
					img.SetAttr("src", v)
					src = v
				}
				break // only the first present lazy attribute counts
			}
		}

		if src == "" {
			if !s.hasLazy(img) {
				img.Remove()
			}
			return
		}
		if s.isPixel(src) || s.isPlaceholder(src) {
			img.Remove()
		}
	})
}

// hasLazy reports whether img still carries a lazy source that was not promoted
func (s *Stripper) hasLazy(img *goquery.Selection) bool {
	for _, attr := range s.lazyAttrs {
		if strings.TrimSpace(img.AttrOr(attr, "")) != "" {
			return true
		}
	}
	return false
}

func (s *Stripper) isPixel(src string) bool {
	for _, p := range s.pixels {
		if strings.HasPrefix(p, "data:") {
			if src == p {
				return true
			}
			continue
		}
		if strings.Contains(strings.ToLower(src), p) {
			return true
		}
	}
	return false
}

func (s *Stripper) isPlaceholder(src string) bool {
	lower := strings.ToLower(src)
	for _, m := range s.placeholders {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// stripPaddingHacks removes padding-bottom percentages used as lazy-load aspect boxes
func stripPaddingHacks(doc *goquery.Document) {
	doc.Find("[style]").Each(func(_ int, el *goquery.Selection) {
		style := el.AttrOr("style", "")
		if !paddingBottomRe.MatchString(style) {
			return
		}
		style = strings.TrimSpace(paddingBottomRe.ReplaceAllString(style, ""))
		if style == "" {
			el.RemoveAttr("style")
			return
		}
		el.SetAttr("style", style)
	})
}

func isAbsHTTP(v string) bool {
	lower := strings.ToLower(v)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
