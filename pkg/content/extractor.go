package content

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"

	"github.com/umputun/flowreader/pkg/domain"
)

// Extractor locates the article body in a full web page using semantic
// selectors first and paragraph density scoring as a fallback
type Extractor struct {
	rules     *Rules
	noise     []goquery.Matcher
	semantic  []goquery.Matcher
	density   goquery.Matcher
	tidy      []goquery.Matcher
	lazyAttrs []string
}

// NewExtractor makes a main-content extractor from rule tables
func NewExtractor(rules *Rules) *Extractor {
	return &Extractor{
		rules:     rules,
		noise:     compileSelectors("noise", rules.Extractor.NoiseTags...),
		semantic:  compileSelectors("semantic", rules.Extractor.SemanticSelectors...),
		density:   compileSelector("density", rules.Extractor.DensityCandidates),
		tidy:      compileSelectors("tidy", rules.Extractor.TidySelectors...),
		lazyAttrs: rules.Stripper.LazyAttrs,
	}
}

// Extract returns the best-guess body of page. Result.Success is false when
// nothing qualified or the body text is too short to show
func (e *Extractor) Extract(page, pageURL string) domain.ExtractionResult {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		lgr.Printf("[WARN] can't parse page %s: %v", pageURL, err)
		return domain.ExtractionResult{}
	}

	res := domain.ExtractionResult{Title: extractTitle(doc), Author: extractAuthor(doc)}

	for _, m := range e.noise {
		doc.FindMatcher(m).Remove()
	}

	body := e.bySemantic(doc)
	if body == nil {
		body = e.byDensity(doc)
	}
	if body == nil {
		lgr.Printf("[DEBUG] no main content found in %s", pageURL)
		return res
	}

	if base, perr := url.Parse(pageURL); perr == nil && base.IsAbs() {
		resolveLinks(body, base, e.lazyAttrs)
	}
	e.tidyUp(body)

	if textLen(body) < e.rules.Thresholds.SuccessMinText {
		lgr.Printf("[DEBUG] main content of %s is too short", pageURL)
		return res
	}

	html, err := goquery.OuterHtml(body)
	if err != nil {
		lgr.Printf("[WARN] can't render content of %s: %v", pageURL, err)
		return res
	}
	res.Content = html
	res.Success = true
	return res
}

// bySemantic returns the first semantic match with enough visible text
func (e *Extractor) bySemantic(doc *goquery.Document) *goquery.Selection {
	for _, m := range e.semantic {
		var found *goquery.Selection
		doc.FindMatcher(m).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if textLen(s) > e.rules.Thresholds.SemanticMinText {
				found = s
				return false
			}
			return true
		})
		if found != nil {
			return found
		}
	}
	return nil
}

// byDensity scores containers by the text of their descendant paragraphs
func (e *Extractor) byDensity(doc *goquery.Document) *goquery.Selection {
	if e.density == nil {
		return nil
	}
	var best *goquery.Selection
	bestScore := 0
	doc.FindMatcher(e.density).Each(func(_ int, s *goquery.Selection) {
		score := 0
		s.Find("p").Each(func(_ int, p *goquery.Selection) {
			score += textLen(p)
		})
		if score > bestScore {
			best, bestScore = s, score
		}
	})
	if best == nil || bestScore <= e.rules.Thresholds.DensityMinText {
		return nil
	}
	return best
}

// tidyUp drops interactive leftovers, image sizing and empty blocks
func (e *Extractor) tidyUp(body *goquery.Selection) {
	for _, m := range e.tidy {
		body.FindMatcher(m).Remove()
	}
	body.Find("img").Each(func(_ int, img *goquery.Selection) {
		img.RemoveAttr("width")
		img.RemoveAttr("height")
		img.RemoveAttr("style")
	})
	body.Find("p, div").Each(func(_ int, s *goquery.Selection) {
		if strings.TrimSpace(s.Text()) == "" && s.Find("img, iframe, video, picture").Length() == 0 {
			s.Remove()
		}
	})
}

func extractTitle(doc *goquery.Document) string {
	for _, sel := range []string{`meta[property="og:title"]`, `meta[name="twitter:title"]`} {
		if v := strings.TrimSpace(doc.Find(sel).First().AttrOr("content", "")); v != "" {
			return v
		}
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

func extractAuthor(doc *goquery.Document) string {
	for _, sel := range []string{`meta[name="author"]`, `meta[property="article:author"]`} {
		if v := strings.TrimSpace(doc.Find(sel).First().AttrOr("content", "")); v != "" {
			return v
		}
	}
	var author string
	doc.Find(".author, .byline, [rel=author]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		author = collapseSpaces(s.Text())
		return author == ""
	})
	return author
}

// resolveLinks makes href, src and lazy image attributes absolute against base
func resolveLinks(body *goquery.Selection, base *url.URL, lazyAttrs []string) {
	resolve := func(s *goquery.Selection, attr string) {
		v, ok := s.Attr(attr)
		if !ok {
			return
		}
		v = strings.TrimSpace(v)
		if v == "" || strings.HasPrefix(v, "#") || strings.HasPrefix(v, "data:") {
			return
		}
		ref, err := url.Parse(v)
		if err != nil || ref.IsAbs() {
			return
		}
		s.SetAttr(attr, base.ResolveReference(ref).String())
	}
	body.Find("a[href]").Each(func(_ int, s *goquery.Selection) { resolve(s, "href") })
	body.Find("img, iframe, video, source").Each(func(_ int, s *goquery.Selection) {
		resolve(s, "src")
		for _, attr := range lazyAttrs {
			resolve(s, attr)
		}
	})
}

// textLen returns the length in runes of visible text with whitespace runs collapsed
func textLen(s *goquery.Selection) int {
	return len([]rune(collapseSpaces(s.Text())))
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
