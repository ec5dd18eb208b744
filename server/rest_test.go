package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/flowreader/pkg/domain"
	"github.com/umputun/flowreader/pkg/pipeline"
	"github.com/umputun/flowreader/pkg/repository"
	"github.com/umputun/flowreader/pkg/scheduler"
	"github.com/umputun/flowreader/server/mocks"
)

type testEnv struct {
	db    *mocks.DatabaseMock
	sched *mocks.SchedulerMock
	orch  *mocks.OrchestratorMock
	sum   *mocks.SummarizerMock
	srv   *Server
}

func newTestEnv(withSummarizer bool) *testEnv {
	e := &testEnv{
		db:    &mocks.DatabaseMock{},
		sched: &mocks.SchedulerMock{},
		orch:  &mocks.OrchestratorMock{},
		sum:   &mocks.SummarizerMock{},
	}
	params := Params{Config: testConfig(), Database: e.db, Scheduler: e.sched, Orchestrator: e.orch, Version: "test"}
	if withSummarizer {
		params.Summarizer = e.sum
	}
	e.srv = New(params)
	return e
}

func (e *testEnv) do(method, target, contentType, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	e.srv.router.ServeHTTP(w, req)
	return w
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp["error"]
}

func notFoundErr(op string) error {
	return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
}

func TestListFeedsHandler(t *testing.T) {
	e := newTestEnv(false)
	e.db.GetFeedsFunc = func(ctx context.Context) ([]domain.Feed, error) {
		return []domain.Feed{{ID: 1, Title: "Alpha", URL: "https://a.example.com/feed", UnreadCount: 3}}, nil
	}

	w := e.do(http.MethodGet, "/api/v1/feeds", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var feeds []domain.Feed
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &feeds))
	require.Len(t, feeds, 1)
	assert.Equal(t, "Alpha", feeds[0].Title)
	assert.Equal(t, 3, feeds[0].UnreadCount)

	e.db.GetFeedsFunc = func(ctx context.Context) ([]domain.Feed, error) { return nil, nil }
	w = e.do(http.MethodGet, "/api/v1/feeds", "", "")
	assert.Equal(t, "[]\n", w.Body.String())

	e.db.GetFeedsFunc = func(ctx context.Context) ([]domain.Feed, error) { return nil, errors.New("db error") }
	w = e.do(http.MethodGet, "/api/v1/feeds", "", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "db error", errorOf(t, w))
}

func TestAddFeedHandler(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		addErr      error
		wantCode    int
		wantError   string
	}{
		{name: "json", contentType: "application/json", body: `{"url":"https://example.com/feed"}`, wantCode: http.StatusCreated},
		{name: "form", contentType: "application/x-www-form-urlencoded",
			body: url.Values{"url": {"https://example.com/feed"}}.Encode(), wantCode: http.StatusCreated},
		{name: "missing url", contentType: "application/json", body: `{"url":"  "}`,
			wantCode: http.StatusBadRequest, wantError: "feed URL is required"},
		{name: "bad json", contentType: "application/json", body: `{"url":`,
			wantCode: http.StatusBadRequest, wantError: "invalid request body"},
		{name: "duplicate", contentType: "application/json", body: `{"url":"https://example.com/feed"}`,
			addErr: scheduler.ErrFeedExists, wantCode: http.StatusConflict, wantError: "This feed is already added"},
		{name: "invalid url", contentType: "application/json", body: `{"url":"ftp://example.com"}`,
			addErr: scheduler.ErrInvalidURL, wantCode: http.StatusBadRequest, wantError: "Could not add feed: invalid feed url"},
		{name: "not a feed", contentType: "application/json", body: `{"url":"https://example.com"}`,
			addErr:   fmt.Errorf("%w: %v", scheduler.ErrFeedFailure, errors.New("not a rss or atom feed")),
			wantCode: http.StatusUnprocessableEntity, wantError: "Could not add feed: not a rss or atom feed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv(false)
			e.sched.AddFeedFunc = func(ctx context.Context, rawURL string) (*domain.Feed, error) {
				if tt.addErr != nil {
					return nil, tt.addErr
				}
				return &domain.Feed{ID: 7, URL: rawURL, Title: "Example"}, nil
			}

			w := e.do(http.MethodPost, "/api/v1/feeds", tt.contentType, tt.body)
			require.Equal(t, tt.wantCode, w.Code, w.Body.String())
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, errorOf(t, w))
				return
			}
			var f domain.Feed
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &f))
			assert.Equal(t, int64(7), f.ID)
			require.Len(t, e.sched.AddFeedCalls(), 1)
			assert.Equal(t, "https://example.com/feed", e.sched.AddFeedCalls()[0].RawURL)
		})
	}
}

func TestDeleteFeedHandler(t *testing.T) {
	e := newTestEnv(false)
	e.db.DeleteFeedFunc = func(ctx context.Context, id int64) error {
		if id == 2 {
			return notFoundErr("delete feed")
		}
		return nil
	}

	assert.Equal(t, http.StatusNoContent, e.do(http.MethodDelete, "/api/v1/feeds/1", "", "").Code)
	assert.Equal(t, http.StatusNotFound, e.do(http.MethodDelete, "/api/v1/feeds/2", "", "").Code)
	w := e.do(http.MethodDelete, "/api/v1/feeds/abc", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid feed ID", errorOf(t, w))
	assert.Len(t, e.db.DeleteFeedCalls(), 2)
}

func TestMarkReadHandlers(t *testing.T) {
	e := newTestEnv(false)
	e.db.MarkAllReadFunc = func(ctx context.Context, feedID int64) (int64, error) {
		if feedID == 9 {
			return 0, notFoundErr("get feed")
		}
		return 4, nil
	}

	w := e.do(http.MethodPost, "/api/v1/feeds/3/read", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"marked":4}`, w.Body.String())

	w = e.do(http.MethodPost, "/api/v1/read", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, http.StatusNotFound, e.do(http.MethodPost, "/api/v1/feeds/9/read", "", "").Code)

	calls := e.db.MarkAllReadCalls()
	require.Len(t, calls, 3)
	assert.Equal(t, int64(3), calls[0].FeedID)
	assert.Equal(t, int64(0), calls[1].FeedID, "global mark all read")
}

func TestRefreshHandler(t *testing.T) {
	e := newTestEnv(false)
	e.sched.RefreshFunc = func(ctx context.Context) (scheduler.RefreshStats, error) {
		return scheduler.RefreshStats{Feeds: 3, Failed: 1, NewArticles: 10}, nil
	}

	w := e.do(http.MethodPost, "/api/v1/refresh", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"feeds":3,"failed":1,"new_articles":10,"deleted":0}`, w.Body.String())

	e.sched.RefreshFunc = func(ctx context.Context) (scheduler.RefreshStats, error) {
		return scheduler.RefreshStats{}, errors.New("get feeds: locked")
	}
	assert.Equal(t, http.StatusInternalServerError, e.do(http.MethodPost, "/api/v1/refresh", "", "").Code)
}

func TestListArticlesHandler(t *testing.T) {
	e := newTestEnv(false)
	e.db.GetArticlesFunc = func(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error) {
		return []domain.Article{{ID: 1, Title: "one", Content: "<p>full</p>", Excerpt: "short"}}, nil
	}

	w := e.do(http.MethodGet, "/api/v1/articles?feed=5&unread=true&limit=20&page=3", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var articles []domain.Article
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &articles))
	require.Len(t, articles, 1)
	assert.Empty(t, articles[0].Content, "lists carry no full content")
	assert.Equal(t, "short", articles[0].Excerpt)

	require.Len(t, e.db.GetArticlesCalls(), 1)
	assert.Equal(t, domain.ArticleFilter{FeedID: 5, OnlyUnread: true, Limit: 20, Offset: 40}, e.db.GetArticlesCalls()[0].Filter)

	w = e.do(http.MethodGet, "/api/v1/articles?bookmarked=true&limit=100000", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.ArticleFilter{OnlyBookmarked: true, Limit: 50}, e.db.GetArticlesCalls()[1].Filter)

	w = e.do(http.MethodGet, "/api/v1/articles?feed=x", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetArticleHandler(t *testing.T) {
	e := newTestEnv(false)
	e.db.GetArticleFunc = func(ctx context.Context, id int64) (*domain.Article, error) {
		if id != 1 {
			return nil, notFoundErr("get article")
		}
		return &domain.Article{ID: 1, Title: "one", URL: "https://example.com/one"}, nil
	}

	w := e.do(http.MethodGet, "/api/v1/articles/1", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var a domain.Article
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &a))
	assert.Equal(t, "one", a.Title)

	assert.Equal(t, http.StatusNotFound, e.do(http.MethodGet, "/api/v1/articles/2", "", "").Code)
	assert.Equal(t, http.StatusBadRequest, e.do(http.MethodGet, "/api/v1/articles/0", "", "").Code)
}

func TestArticleContentHandler(t *testing.T) {
	t.Run("cleaned marks read", func(t *testing.T) {
		e := newTestEnv(false)
		e.orch.OpenFunc = func(ctx context.Context, articleID int64) (pipeline.Outcome, error) {
			return pipeline.Outcome{State: pipeline.Cleaned, ArticleID: articleID, Content: "<p>text</p>",
				ReadingTime: 3, Source: pipeline.SourceReader}, nil
		}
		e.db.SetReadFunc = func(ctx context.Context, id int64, read bool) error { return nil }

		w := e.do(http.MethodGet, "/api/v1/articles/4/content", "", "")
		require.Equal(t, http.StatusOK, w.Code)
		var out map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		assert.Equal(t, "cleaned", out["state"])
		assert.Equal(t, "<p>text</p>", out["content"])
		assert.Equal(t, "reader", out["source"])

		require.Len(t, e.db.SetReadCalls(), 1)
		assert.Equal(t, int64(4), e.db.SetReadCalls()[0].ID)
		assert.True(t, e.db.SetReadCalls()[0].Read)
	})

	t.Run("failed returns url for browser view", func(t *testing.T) {
		e := newTestEnv(false)
		e.orch.OpenFunc = func(ctx context.Context, articleID int64) (pipeline.Outcome, error) {
			return pipeline.Outcome{State: pipeline.Failed, ArticleID: articleID, URL: "https://example.com/x"}, nil
		}

		w := e.do(http.MethodGet, "/api/v1/articles/4/content", "", "")
		require.Equal(t, http.StatusOK, w.Code)
		var out map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		assert.Equal(t, "failed", out["state"])
		assert.Equal(t, "https://example.com/x", out["url"])
		assert.Empty(t, e.db.SetReadCalls(), "failed extraction leaves the article unread")
	})

	t.Run("unknown article", func(t *testing.T) {
		e := newTestEnv(false)
		e.orch.OpenFunc = func(ctx context.Context, articleID int64) (pipeline.Outcome, error) {
			return pipeline.Outcome{}, fmt.Errorf("get article %d: %w", articleID, repository.ErrNotFound)
		}
		assert.Equal(t, http.StatusNotFound, e.do(http.MethodGet, "/api/v1/articles/4/content", "", "").Code)
	})

	t.Run("mark read failure still returns content", func(t *testing.T) {
		e := newTestEnv(false)
		e.orch.OpenFunc = func(ctx context.Context, articleID int64) (pipeline.Outcome, error) {
			return pipeline.Outcome{State: pipeline.Cleaned, ArticleID: articleID, Content: "<p>text</p>"}, nil
		}
		e.db.SetReadFunc = func(ctx context.Context, id int64, read bool) error { return errors.New("locked") }
		assert.Equal(t, http.StatusOK, e.do(http.MethodGet, "/api/v1/articles/4/content", "", "").Code)
	})
}

func TestReadStateHandlers(t *testing.T) {
	e := newTestEnv(false)
	e.db.SetReadFunc = func(ctx context.Context, id int64, read bool) error {
		if id == 404 {
			return notFoundErr("set read")
		}
		return nil
	}

	w := e.do(http.MethodPost, "/api/v1/articles/5/read", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":5,"read":true}`, w.Body.String())

	w = e.do(http.MethodPost, "/api/v1/articles/5/unread", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":5,"read":false}`, w.Body.String())

	assert.Equal(t, http.StatusNotFound, e.do(http.MethodPost, "/api/v1/articles/404/read", "", "").Code)
}

func TestBookmarkHandler(t *testing.T) {
	e := newTestEnv(false)
	state := false
	e.db.ToggleBookmarkFunc = func(ctx context.Context, id int64) (bool, error) {
		state = !state
		return state, nil
	}

	w := e.do(http.MethodPost, "/api/v1/articles/8/bookmark", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":8,"bookmarked":true}`, w.Body.String())

	w = e.do(http.MethodPost, "/api/v1/articles/8/bookmark", "", "")
	assert.JSONEq(t, `{"id":8,"bookmarked":false}`, w.Body.String())
}

func TestScrollHandler(t *testing.T) {
	e := newTestEnv(false)
	e.db.SaveScrollFunc = func(ctx context.Context, id int64, offset int) error { return nil }

	w := e.do(http.MethodPut, "/api/v1/articles/8/scroll", "application/json", `{"offset":1200}`)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Len(t, e.db.SaveScrollCalls(), 1)
	assert.Equal(t, 1200, e.db.SaveScrollCalls()[0].Offset)

	assert.Equal(t, http.StatusBadRequest, e.do(http.MethodPut, "/api/v1/articles/8/scroll", "application/json", `{"offset":-1}`).Code)
	assert.Equal(t, http.StatusBadRequest, e.do(http.MethodPut, "/api/v1/articles/8/scroll", "application/json", `nope`).Code)
	assert.Len(t, e.db.SaveScrollCalls(), 1)
}

func TestSummaryHandler(t *testing.T) {
	article := func(id int64) *domain.Article {
		switch id {
		case 1:
			return &domain.Article{ID: 1, Title: "Go news", Content: "<p>Go <b>1.24</b> is out.</p>"}
		case 2:
			return &domain.Article{ID: 2, Title: "cached", Content: "<p>x</p>", Summary: "already done"}
		case 3:
			return &domain.Article{ID: 3, Title: "stub", Excerpt: "only excerpt"}
		}
		return nil
	}
	newEnv := func() *testEnv {
		e := newTestEnv(true)
		e.db.GetArticleFunc = func(ctx context.Context, id int64) (*domain.Article, error) {
			if a := article(id); a != nil {
				return a, nil
			}
			return nil, notFoundErr("get article")
		}
		e.db.SaveSummaryFunc = func(ctx context.Context, id int64, summary string) error { return nil }
		return e
	}

	t.Run("summarized and cached", func(t *testing.T) {
		e := newEnv()
		e.sum.SummarizeFunc = func(ctx context.Context, title, text string) (string, error) {
			return "Go 1.24 released.", nil
		}

		w := e.do(http.MethodPost, "/api/v1/articles/1/summary", "", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":1,"summary":"Go 1.24 released.","cached":false}`, w.Body.String())

		require.Len(t, e.sum.SummarizeCalls(), 1)
		assert.Equal(t, "Go news", e.sum.SummarizeCalls()[0].Title)
		assert.Equal(t, "Go 1.24 is out.", e.sum.SummarizeCalls()[0].Text, "html stripped before summarizing")
		require.Len(t, e.db.SaveSummaryCalls(), 1)
		assert.Equal(t, "Go 1.24 released.", e.db.SaveSummaryCalls()[0].Summary)
	})

	t.Run("cached summary", func(t *testing.T) {
		e := newEnv()
		w := e.do(http.MethodPost, "/api/v1/articles/2/summary", "", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":2,"summary":"already done","cached":true}`, w.Body.String())
		assert.Empty(t, e.sum.SummarizeCalls())
	})

	t.Run("llm failure is inline", func(t *testing.T) {
		e := newEnv()
		e.sum.SummarizeFunc = func(ctx context.Context, title, text string) (string, error) {
			return "", errors.New("llm request failed: 502")
		}
		w := e.do(http.MethodPost, "/api/v1/articles/1/summary", "", "")
		require.Equal(t, http.StatusOK, w.Code)
		var out map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		assert.Equal(t, summaryUnavailable, out["message"])
		assert.Empty(t, out["summary"])
		assert.Empty(t, e.db.SaveSummaryCalls())
	})

	t.Run("no content yet", func(t *testing.T) {
		e := newEnv()
		assert.Equal(t, http.StatusConflict, e.do(http.MethodPost, "/api/v1/articles/3/summary", "", "").Code)
	})

	t.Run("unknown article", func(t *testing.T) {
		e := newEnv()
		assert.Equal(t, http.StatusNotFound, e.do(http.MethodPost, "/api/v1/articles/9/summary", "", "").Code)
	})

	t.Run("disabled", func(t *testing.T) {
		e := newTestEnv(false)
		w := e.do(http.MethodPost, "/api/v1/articles/1/summary", "", "")
		assert.Equal(t, http.StatusNotImplemented, w.Code)
		assert.Equal(t, "summaries are disabled", errorOf(t, w))
	})
}

func TestOPMLHandlers(t *testing.T) {
	t.Run("export", func(t *testing.T) {
		e := newTestEnv(false)
		e.db.GetFeedsFunc = func(ctx context.Context) ([]domain.Feed, error) {
			return []domain.Feed{{ID: 1, Title: "Alpha", URL: "https://a.example.com/feed", SiteURL: "https://a.example.com"}}, nil
		}
		w := e.do(http.MethodGet, "/api/v1/feeds/opml", "", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/x-opml; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Body.String(), `xmlUrl="https://a.example.com/feed"`)
	})

	t.Run("import", func(t *testing.T) {
		e := newTestEnv(false)
		e.sched.AddFeedFunc = func(ctx context.Context, rawURL string) (*domain.Feed, error) {
			switch rawURL {
			case "https://dup.example.com/rss":
				return nil, scheduler.ErrFeedExists
			case "https://bad.example.com/rss":
				return nil, fmt.Errorf("%w: status 404", scheduler.ErrFeedFailure)
			}
			return &domain.Feed{URL: rawURL}, nil
		}
		doc := `<opml version="2.0"><body>
			<outline text="a" xmlUrl="https://a.example.com/rss"/>
			<outline text="dup" xmlUrl="https://dup.example.com/rss"/>
			<outline text="bad" xmlUrl="https://bad.example.com/rss"/>
		</body></opml>`

		w := e.do(http.MethodPost, "/api/v1/feeds/opml", "text/x-opml", doc)
		require.Equal(t, http.StatusOK, w.Code)
		var res opmlImportResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, 1, res.Added)
		assert.Equal(t, 1, res.Existing)
		require.Len(t, res.Failed, 1)
		assert.Contains(t, res.Failed["https://bad.example.com/rss"], "status 404")
		assert.Len(t, e.sched.AddFeedCalls(), 3)
	})

	t.Run("import garbage", func(t *testing.T) {
		e := newTestEnv(false)
		assert.Equal(t, http.StatusBadRequest, e.do(http.MethodPost, "/api/v1/feeds/opml", "text/x-opml", "garbage").Code)
		assert.Empty(t, e.sched.AddFeedCalls())
	})
}
