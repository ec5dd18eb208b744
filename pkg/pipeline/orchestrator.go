// Package pipeline sequences the content extraction tiers for a single article.
// Each article runs a small state machine:
//
//	NeedsContent -> TryingCachedOrFeedContent -> TryingFullPageFetch -> Cleaned | Failed
//
// Every tier absorbs its own errors, so the machine always reaches a terminal state.
package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/singleflight"

	"github.com/umputun/flowreader/pkg/content"
	"github.com/umputun/flowreader/pkg/domain"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/page_fetcher.go -pkg mocks -skip-ensure -fmt goimports . PageFetcher
//go:generate moq -out mocks/reader.go -pkg mocks -skip-ensure -fmt goimports . Reader

// State of an article extraction
type State int

// extraction states
const (
	NeedsContent State = iota
	TryingCachedOrFeedContent
	TryingFullPageFetch
	Cleaned
	Failed
)

func (s State) String() string {
	switch s {
	case NeedsContent:
		return "needs-content"
	case TryingCachedOrFeedContent:
		return "trying-cached-or-feed-content"
	case TryingFullPageFetch:
		return "trying-full-page-fetch"
	case Cleaned:
		return "cleaned"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText makes State readable in json responses
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// content sources reported in Outcome
const (
	SourceCache       = "cache"
	SourceReader      = "reader"
	SourceFullPage    = "full-page"
	SourceShortReader = "reader-short"
)

// Outcome is the terminal result for one article. On Failed the caller
// should show URL in a full browser view
type Outcome struct {
	State       State  `json:"state"`
	ArticleID   int64  `json:"article_id"`
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Author      string `json:"author,omitempty"`
	Content     string `json:"content,omitempty"`
	ReadingTime int    `json:"reading_time"`
	Source      string `json:"source,omitempty"`
}

// Store loads articles and persists extracted content
type Store interface {
	GetArticle(ctx context.Context, id int64) (*domain.Article, error)
	SaveContent(ctx context.Context, id int64, html string, readingTime int) error
}

// PageFetcher downloads a page as utf-8 html
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (string, error)
}

// Reader is the reader-mode engine
type Reader interface {
	Read(page, pageURL string) (domain.ExtractionResult, error)
}

// Extractor is the tier 1 main-content extractor
type Extractor interface {
	Extract(page, pageURL string) domain.ExtractionResult
}

// Cleaner is an html to html cleaning pass
type Cleaner interface {
	Clean(html string) string
}

// Deps are the collaborators of Orchestrator
type Deps struct {
	Store     Store
	Fetcher   PageFetcher
	Reader    Reader
	Extractor Extractor
	Stripper  Cleaner // tier 2/3
	Cleaner   Cleaner // tier 2b/4
}

// Config tunes the orchestrator
type Config struct {
	ReaderMinBytes int           // reader output shorter than this is treated as a teaser
	Timeout        time.Duration // upper bound for one article extraction
}

// Orchestrator runs the extraction state machine. Concurrent requests for
// the same article share a single run
type Orchestrator struct {
	Deps
	readerMin int
	timeout   time.Duration
	states    map[State]stateFn
	group     singleflight.Group
}

type stateFn func(ctx context.Context, r *run) State

// run carries per-article transient data between states
type run struct {
	article *domain.Article
	page    string
	pageOK  bool
	short   domain.ExtractionResult // successful but short reader result, last resort
	out     Outcome
}

// New makes an orchestrator
func New(deps Deps, cfg Config) *Orchestrator {
	if cfg.ReaderMinBytes <= 0 {
		cfg.ReaderMinBytes = 500
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Minute
	}
	o := &Orchestrator{Deps: deps, readerMin: cfg.ReaderMinBytes, timeout: cfg.Timeout}
	o.states = map[State]stateFn{
		NeedsContent:              o.needsContent,
		TryingCachedOrFeedContent: o.tryReaderMode,
		TryingFullPageFetch:       o.tryFullPage,
	}
	return o
}

// Open returns clean content for the article, extracting and persisting it on first use.
// The only error is a failure to load the article itself
func (o *Orchestrator) Open(ctx context.Context, articleID int64) (Outcome, error) {
	v, err, shared := o.group.Do(strconv.FormatInt(articleID, 10), func() (any, error) {
		// the result is cached even if the requester goes away
		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), o.timeout)
		defer cancel()
		return o.process(runCtx, articleID)
	})
	if err != nil {
		return Outcome{}, err
	}
	if shared {
		lgr.Printf("[DEBUG] article %d extraction shared with a concurrent request", articleID)
	}
	return v.(Outcome), nil
}

func (o *Orchestrator) process(ctx context.Context, articleID int64) (Outcome, error) {
	article, err := o.Store.GetArticle(ctx, articleID)
	if err != nil {
		return Outcome{}, fmt.Errorf("get article %d: %w", articleID, err)
	}

	r := &run{article: article}
	state := NeedsContent
	for state != Cleaned && state != Failed {
		fn, ok := o.states[state]
		if !ok {
			state = Failed
			break
		}
		next := fn(ctx, r)
		lgr.Printf("[DEBUG] article %d: %s -> %s", articleID, state, next)
		state = next
	}

	r.out.State = state
	r.out.ArticleID = article.ID
	r.out.URL = article.URL
	if r.out.Title == "" {
		r.out.Title = article.Title
	}
	if state == Failed {
		lgr.Printf("[INFO] all extraction tiers failed for %s, fallback to browser view", article.URL)
	}
	return r.out, nil
}

// needsContent serves stored content without any fetch or clean
func (o *Orchestrator) needsContent(_ context.Context, r *run) State {
	if !r.article.HasContent() {
		return TryingCachedOrFeedContent
	}
	r.out = Outcome{
		Content:     r.article.Content,
		ReadingTime: r.article.ReadingTime,
		Author:      r.article.Author,
		Source:      SourceCache,
	}
	return Cleaned
}

// tryReaderMode fetches the page and runs the reader-mode engine over it
func (o *Orchestrator) tryReaderMode(ctx context.Context, r *run) State {
	if !o.fetchPage(ctx, r) {
		return TryingFullPageFetch
	}

	res, err := safeRead(o.Reader, r.page, r.article.URL)
	if err != nil {
		lgr.Printf("[DEBUG] reader mode failed for %s: %v", r.article.URL, err)
		return TryingFullPageFetch
	}
	if !res.Success {
		return TryingFullPageFetch
	}
	if len(res.Content) < o.readerMin {
		lgr.Printf("[DEBUG] reader mode result for %s is %d bytes, trying full page", r.article.URL, len(res.Content))
		r.short = res
		return TryingFullPageFetch
	}
	if o.finish(ctx, r, res, SourceReader) {
		return Cleaned
	}
	return TryingFullPageFetch
}

// tryFullPage runs tier 1 extraction over the raw page, falling back to a short reader result
func (o *Orchestrator) tryFullPage(ctx context.Context, r *run) State {
	if o.fetchPage(ctx, r) {
		res := safeExtract(o.Extractor, r.page, r.article.URL)
		if res.Success && o.finish(ctx, r, res, SourceFullPage) {
			return Cleaned
		}
	}
	if r.short.Success && o.finish(ctx, r, r.short, SourceShortReader) {
		return Cleaned
	}
	return Failed
}

// fetchPage downloads the article page once per run, a failed attempt is retried on next call
func (o *Orchestrator) fetchPage(ctx context.Context, r *run) bool {
	if r.pageOK {
		return true
	}
	page, err := o.Fetcher.FetchPage(ctx, r.article.URL)
	if err != nil {
		lgr.Printf("[DEBUG] can't fetch %s: %v", r.article.URL, err)
		return false
	}
	r.page, r.pageOK = page, true
	return true
}

// finish cleans extracted html through both cleaning tiers, sanitizes and persists it.
// Returns false if nothing readable is left
func (o *Orchestrator) finish(ctx context.Context, r *run, res domain.ExtractionResult, source string) bool {
	cleaned, ok := safeClean(o.Stripper, res.Content)
	if !ok {
		return false
	}
	if cleaned, ok = safeClean(o.Cleaner, cleaned); !ok {
		return false
	}
	cleaned = content.Sanitize(cleaned)
	text := content.PlainText(cleaned)
	if text == "" {
		return false
	}

	readingTime := content.ReadingTimeFromText(text)
	if err := o.Store.SaveContent(ctx, r.article.ID, cleaned, readingTime); err != nil {
		// content is still shown, extraction will run again on next open
		lgr.Printf("[WARN] can't save content of article %d: %v", r.article.ID, err)
	}

	author := res.Author
	if author == "" {
		author = r.article.Author
	}
	r.out = Outcome{Title: res.Title, Author: author, Content: cleaned, ReadingTime: readingTime, Source: source}
	return true
}

func safeRead(reader Reader, page, pageURL string) (res domain.ExtractionResult, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			res, err = domain.ExtractionResult{}, fmt.Errorf("reader panic: %v", rec)
		}
	}()
	return reader.Read(page, pageURL)
}

func safeExtract(ex Extractor, page, pageURL string) (res domain.ExtractionResult) {
	defer func() {
		if rec := recover(); rec != nil {
			lgr.Printf("[WARN] extractor panic for %s: %v", pageURL, rec)
			res = domain.ExtractionResult{}
		}
	}()
	return ex.Extract(page, pageURL)
}

func safeClean(c Cleaner, html string) (res string, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			lgr.Printf("[WARN] cleaner panic: %v", rec)
			res, ok = "", false
		}
	}()
	return c.Clean(html), true
}
