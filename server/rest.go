package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/umputun/flowreader/pkg/content"
	"github.com/umputun/flowreader/pkg/domain"
	"github.com/umputun/flowreader/pkg/feed"
	"github.com/umputun/flowreader/pkg/pipeline"
	"github.com/umputun/flowreader/pkg/repository"
	"github.com/umputun/flowreader/pkg/scheduler"
)

// summaryUnavailable is shown in place of a summary the llm could not make
const summaryUnavailable = "Summary unavailable. Check the LLM endpoint and try again."

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	if unread, err := s.db.UnreadCount(r.Context()); err == nil {
		status["unread"] = unread
	} else {
		log.Printf("[WARN] failed to get unread count: %v", err)
	}
	renderJSON(w, r, http.StatusOK, status)
}

// listFeedsHandler returns all feeds ordered by title
func (s *Server) listFeedsHandler(w http.ResponseWriter, r *http.Request) {
	feeds, err := s.db.GetFeeds(r.Context())
	if err != nil {
		log.Printf("[ERROR] failed to get feeds: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	if feeds == nil {
		feeds = []domain.Feed{}
	}
	renderJSON(w, r, http.StatusOK, feeds)
}

// addFeedHandler subscribes to a feed, the url comes as json {"url": ...} or form value
func (s *Server) addFeedHandler(w http.ResponseWriter, r *http.Request) {
	feedURL, err := feedURLFromRequest(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	// subscription outlives a dropped client connection
	f, err := s.scheduler.AddFeed(context.WithoutCancel(r.Context()), feedURL)
	switch {
	case err == nil:
		renderJSON(w, r, http.StatusCreated, f)
	case errors.Is(err, scheduler.ErrFeedExists):
		renderError(w, r, errors.New("This feed is already added"), http.StatusConflict) //nolint:staticcheck // user facing message
	case errors.Is(err, scheduler.ErrInvalidURL):
		renderError(w, r, fmt.Errorf("Could not add feed: %v", err), http.StatusBadRequest) //nolint:staticcheck // user facing message
	default:
		log.Printf("[WARN] failed to add feed %s: %v", feedURL, err)
		reason := strings.TrimPrefix(err.Error(), scheduler.ErrFeedFailure.Error()+": ")
		renderError(w, r, fmt.Errorf("Could not add feed: %s", reason), http.StatusUnprocessableEntity) //nolint:staticcheck // user facing message
	}
}

func feedURLFromRequest(r *http.Request) (string, error) {
	var feedURL string
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req struct {
			URL string `json:"url"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return "", fmt.Errorf("invalid request body")
		}
		feedURL = req.URL
	} else {
		if err := r.ParseForm(); err != nil {
			return "", fmt.Errorf("invalid form data")
		}
		feedURL = r.FormValue("url")
	}

	if strings.TrimSpace(feedURL) == "" {
		return "", fmt.Errorf("feed URL is required")
	}
	return feedURL, nil
}

// exportOPMLHandler downloads subscriptions as OPML
func (s *Server) exportOPMLHandler(w http.ResponseWriter, r *http.Request) {
	feeds, err := s.db.GetFeeds(r.Context())
	if err != nil {
		log.Printf("[ERROR] failed to get feeds: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	data, err := feed.ExportOPML(feeds, time.Now())
	if err != nil {
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/x-opml; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="flowreader.opml"`)
	_, _ = w.Write(data)
}

// opmlImportResult reports what happened to each feed of an imported OPML document
type opmlImportResult struct {
	Added    int               `json:"added"`
	Existing int               `json:"existing"`
	Failed   map[string]string `json:"failed,omitempty"` // url to reason
}

// importOPMLHandler subscribes to every feed of an uploaded OPML document
func (s *Server) importOPMLHandler(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		renderError(w, r, fmt.Errorf("can't read request body"), http.StatusBadRequest)
		return
	}
	urls, err := feed.ImportOPML(data)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	ctx := context.WithoutCancel(r.Context())
	res := opmlImportResult{}
	for _, u := range urls {
		_, err := s.scheduler.AddFeed(ctx, u)
		switch {
		case err == nil:
			res.Added++
		case errors.Is(err, scheduler.ErrFeedExists):
			res.Existing++
		default:
			if res.Failed == nil {
				res.Failed = map[string]string{}
			}
			res.Failed[u] = err.Error()
		}
	}
	log.Printf("[INFO] opml import: %d added, %d existing, %d failed", res.Added, res.Existing, len(res.Failed))
	renderJSON(w, r, http.StatusOK, res)
}

// deleteFeedHandler removes a feed with all its articles
func (s *Server) deleteFeedHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "feed")
	if !ok {
		return
	}

	if err := s.db.DeleteFeed(r.Context(), id); err != nil {
		log.Printf("[ERROR] failed to delete feed %d: %v", id, err)
		renderError(w, r, err, statusFor(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// markFeedReadHandler marks all articles of one feed as read
func (s *Server) markFeedReadHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "feed")
	if !ok {
		return
	}
	s.markAllRead(w, r, id)
}

// markAllReadHandler marks every article as read
func (s *Server) markAllReadHandler(w http.ResponseWriter, r *http.Request) {
	s.markAllRead(w, r, 0)
}

func (s *Server) markAllRead(w http.ResponseWriter, r *http.Request, feedID int64) {
	changed, err := s.db.MarkAllRead(r.Context(), feedID)
	if err != nil {
		log.Printf("[ERROR] failed to mark feed %d read: %v", feedID, err)
		renderError(w, r, err, statusFor(err))
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]int64{"marked": changed})
}

// refreshHandler fetches all feeds now and reports what changed
func (s *Server) refreshHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := s.scheduler.Refresh(context.WithoutCancel(r.Context()))
	if err != nil {
		log.Printf("[ERROR] failed to refresh feeds: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, stats)
}

// listArticlesHandler returns articles newest first.
// Query: feed=<id>, unread=true, bookmarked=true, limit=<n>, page=<n>
func (s *Server) listArticlesHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ArticleFilter{
		OnlyUnread:     q.Get("unread") == "true",
		OnlyBookmarked: q.Get("bookmarked") == "true",
		Limit:          s.config.GetPageSize(),
	}

	if v := q.Get("feed"); v != "" {
		feedID, err := strconv.ParseInt(v, 10, 64)
		if err != nil || feedID <= 0 {
			renderError(w, r, fmt.Errorf("invalid feed ID"), http.StatusBadRequest)
			return
		}
		filter.FeedID = feedID
	}
	if v := q.Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 && limit <= 500 {
			filter.Limit = limit
		}
	}
	if v := q.Get("page"); v != "" {
		if page, err := strconv.Atoi(v); err == nil && page > 1 {
			filter.Offset = (page - 1) * filter.Limit
		}
	}

	articles, err := s.db.GetArticles(r.Context(), filter)
	if err != nil {
		log.Printf("[ERROR] failed to get articles: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	// lists carry excerpts only, full content comes from the content endpoint
	for i := range articles {
		articles[i].Content = ""
	}
	if articles == nil {
		articles = []domain.Article{}
	}
	renderJSON(w, r, http.StatusOK, articles)
}

// getArticleHandler returns one stored article as is, without extraction
func (s *Server) getArticleHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "article")
	if !ok {
		return
	}

	article, err := s.db.GetArticle(r.Context(), id)
	if err != nil {
		renderError(w, r, err, statusFor(err))
		return
	}
	renderJSON(w, r, http.StatusOK, article)
}

// articleContentHandler opens an article in the reading view. Content is extracted on
// first open and cached. A failed outcome carries the url to show in a browser instead
func (s *Server) articleContentHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "article")
	if !ok {
		return
	}

	outcome, err := s.orchestrator.Open(r.Context(), id)
	if err != nil {
		log.Printf("[WARN] failed to open article %d: %v", id, err)
		renderError(w, r, err, statusFor(err))
		return
	}

	if outcome.State == pipeline.Cleaned {
		if err := s.db.SetRead(r.Context(), id, true); err != nil {
			log.Printf("[WARN] failed to mark article %d read: %v", id, err)
		}
	}
	renderJSON(w, r, http.StatusOK, outcome)
}

// markReadHandler marks an article as read
func (s *Server) markReadHandler(w http.ResponseWriter, r *http.Request) {
	s.setRead(w, r, true)
}

// markUnreadHandler marks an article as unread
func (s *Server) markUnreadHandler(w http.ResponseWriter, r *http.Request) {
	s.setRead(w, r, false)
}

func (s *Server) setRead(w http.ResponseWriter, r *http.Request, read bool) {
	id, ok := pathID(w, r, "article")
	if !ok {
		return
	}

	if err := s.db.SetRead(r.Context(), id, read); err != nil {
		log.Printf("[ERROR] failed to set read=%v for article %d: %v", read, id, err)
		renderError(w, r, err, statusFor(err))
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"id": id, "read": read})
}

// bookmarkHandler toggles the bookmark flag
func (s *Server) bookmarkHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "article")
	if !ok {
		return
	}

	bookmarked, err := s.db.ToggleBookmark(r.Context(), id)
	if err != nil {
		log.Printf("[ERROR] failed to toggle bookmark of article %d: %v", id, err)
		renderError(w, r, err, statusFor(err))
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"id": id, "bookmarked": bookmarked})
}

// scrollHandler stores the reading position, body is {"offset": n}
func (s *Server) scrollHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "article")
	if !ok {
		return
	}

	var req struct {
		Offset int `json:"offset"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}
	if req.Offset < 0 {
		renderError(w, r, fmt.Errorf("offset must be non-negative"), http.StatusBadRequest)
		return
	}

	if err := s.db.SaveScroll(r.Context(), id, req.Offset); err != nil {
		renderError(w, r, err, statusFor(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// summaryHandler returns an ai summary of the extracted article text. LLM failures
// answer 200 with an inline message, the reading view keeps working
func (s *Server) summaryHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "article")
	if !ok {
		return
	}
	if s.summarizer == nil {
		renderError(w, r, fmt.Errorf("summaries are disabled"), http.StatusNotImplemented)
		return
	}

	ctx := r.Context()
	article, err := s.db.GetArticle(ctx, id)
	if err != nil {
		renderError(w, r, err, statusFor(err))
		return
	}
	if article.Summary != "" {
		renderJSON(w, r, http.StatusOK, map[string]any{"id": id, "summary": article.Summary, "cached": true})
		return
	}
	if !article.HasContent() {
		renderError(w, r, fmt.Errorf("article content is not extracted yet"), http.StatusConflict)
		return
	}

	summary, err := s.summarizer.Summarize(ctx, article.Title, content.PlainText(article.Content))
	if err != nil {
		log.Printf("[WARN] failed to summarize article %d: %v", id, err)
		renderJSON(w, r, http.StatusOK, map[string]any{"id": id, "summary": "", "message": summaryUnavailable})
		return
	}

	if err := s.db.SaveSummary(ctx, id, summary); err != nil {
		log.Printf("[WARN] failed to save summary of article %d: %v", id, err)
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"id": id, "summary": summary, "cached": false})
}

// pathID parses {id} path value, renders 400 on failure
func pathID(w http.ResponseWriter, r *http.Request, kind string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		renderError(w, r, fmt.Errorf("invalid %s ID", kind), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func statusFor(err error) int {
	if errors.Is(err, repository.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
