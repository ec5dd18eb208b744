package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/flowreader/pkg/content"
	"github.com/umputun/flowreader/pkg/domain"
	"github.com/umputun/flowreader/pkg/pipeline/mocks"
)

var paragraph = strings.Repeat("the quick brown fox jumps over the lazy dog near the river bank ", 12)

const articleURL = "https://example.com/posts/fox"

func fullPage() string {
	return `<html><head><title>Fox Story</title><meta name="author" content="Page Author"></head><body>
		<nav>home news about</nav>
		<article><p>` + paragraph + `</p><p>` + paragraph + `</p>
		<div class="share-buttons">share on twitter</div></article>
		<footer>copyright</footer></body></html>`
}

type testEnv struct {
	store   *mocks.StoreMock
	fetcher *mocks.PageFetcherMock
	reader  *mocks.ReaderMock
	saved   map[int64]string
	mu      sync.Mutex
}

func newTestEnv(article domain.Article) *testEnv {
	env := &testEnv{saved: map[int64]string{}}
	env.store = &mocks.StoreMock{
		GetArticleFunc: func(ctx context.Context, id int64) (*domain.Article, error) {
			if id != article.ID {
				return nil, errors.New("not found")
			}
			a := article
			return &a, nil
		},
		SaveContentFunc: func(ctx context.Context, id int64, html string, readingTime int) error {
			env.mu.Lock()
			defer env.mu.Unlock()
			env.saved[id] = html
			return nil
		},
	}
	env.fetcher = &mocks.PageFetcherMock{
		FetchPageFunc: func(ctx context.Context, url string) (string, error) {
			return fullPage(), nil
		},
	}
	env.reader = &mocks.ReaderMock{
		ReadFunc: func(page, pageURL string) (domain.ExtractionResult, error) {
			return domain.ExtractionResult{Title: "Reader Title", Content: "<div><p>" + paragraph + "</p></div>", Success: true}, nil
		},
	}
	return env
}

func (e *testEnv) orchestrator(t *testing.T) *Orchestrator {
	t.Helper()
	rules, err := content.DefaultRules()
	require.NoError(t, err)
	return New(Deps{
		Store:     e.store,
		Fetcher:   e.fetcher,
		Reader:    e.reader,
		Extractor: content.NewExtractor(rules),
		Stripper:  content.NewStripper(rules),
		Cleaner:   content.NewCleaner(rules),
	}, Config{ReaderMinBytes: rules.Thresholds.ReaderMinBytes, Timeout: 5 * time.Second})
}

func TestOrchestrator_CachedContent(t *testing.T) {
	env := newTestEnv(domain.Article{ID: 1, URL: articleURL, Title: "Stored", Content: "<p>already there</p>", ReadingTime: 3})
	o := env.orchestrator(t)

	out, err := o.Open(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, Cleaned, out.State)
	assert.Equal(t, SourceCache, out.Source)
	assert.Equal(t, "<p>already there</p>", out.Content)
	assert.Equal(t, 3, out.ReadingTime)
	assert.Equal(t, "Stored", out.Title)
	assert.Empty(t, env.fetcher.FetchPageCalls(), "no network for cached content")
	assert.Empty(t, env.store.SaveContentCalls())
}

func TestOrchestrator_ReaderMode(t *testing.T) {
	env := newTestEnv(domain.Article{ID: 2, URL: articleURL, Title: "Feed Title", Author: "Feed Author"})
	o := env.orchestrator(t)

	out, err := o.Open(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, Cleaned, out.State)
	assert.Equal(t, SourceReader, out.Source)
	assert.Equal(t, "Reader Title", out.Title)
	assert.Equal(t, "Feed Author", out.Author, "feed author kept when reader has none")
	assert.Contains(t, out.Content, "quick brown fox")
	assert.Equal(t, 1, out.ReadingTime)

	require.Len(t, env.store.SaveContentCalls(), 1)
	assert.Equal(t, out.Content, env.saved[2])
	assert.Equal(t, articleURL, env.reader.ReadCalls()[0].PageURL)
	assert.Len(t, env.fetcher.FetchPageCalls(), 1)
}

func TestOrchestrator_ReaderFailsFullPageSucceeds(t *testing.T) {
	env := newTestEnv(domain.Article{ID: 3, URL: articleURL})
	env.reader.ReadFunc = func(page, pageURL string) (domain.ExtractionResult, error) {
		return domain.ExtractionResult{}, nil
	}
	o := env.orchestrator(t)

	out, err := o.Open(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, Cleaned, out.State)
	assert.Equal(t, SourceFullPage, out.Source)
	assert.Equal(t, "Fox Story", out.Title)
	assert.Equal(t, "Page Author", out.Author)
	assert.Contains(t, out.Content, "quick brown fox")
	assert.NotContains(t, out.Content, "home news about")
	assert.NotContains(t, out.Content, "share on twitter")
	assert.Len(t, env.fetcher.FetchPageCalls(), 1, "page fetched once and reused")
	assert.Equal(t, out.Content, env.saved[3])
}

func TestOrchestrator_ReaderErrorAndPanic(t *testing.T) {
	for name, fn := range map[string]func(page, pageURL string) (domain.ExtractionResult, error){
		"error": func(page, pageURL string) (domain.ExtractionResult, error) {
			return domain.ExtractionResult{}, errors.New("engine failure")
		},
		"panic": func(page, pageURL string) (domain.ExtractionResult, error) {
			panic("boom")
		},
	} {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(domain.Article{ID: 4, URL: articleURL})
			env.reader.ReadFunc = fn
			out, err := env.orchestrator(t).Open(context.Background(), 4)
			require.NoError(t, err)
			assert.Equal(t, Cleaned, out.State)
			assert.Equal(t, SourceFullPage, out.Source)
		})
	}
}

func TestOrchestrator_ShortReaderResult(t *testing.T) {
	short := "<p>just a short teaser paragraph</p>"

	t.Run("full page preferred", func(t *testing.T) {
		env := newTestEnv(domain.Article{ID: 5, URL: articleURL})
		env.reader.ReadFunc = func(page, pageURL string) (domain.ExtractionResult, error) {
			return domain.ExtractionResult{Content: short, Success: true}, nil
		}
		out, err := env.orchestrator(t).Open(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, SourceFullPage, out.Source)
		assert.Contains(t, out.Content, "quick brown fox")
	})

	t.Run("short result as last resort", func(t *testing.T) {
		env := newTestEnv(domain.Article{ID: 6, URL: articleURL})
		env.reader.ReadFunc = func(page, pageURL string) (domain.ExtractionResult, error) {
			return domain.ExtractionResult{Content: short, Success: true}, nil
		}
		env.fetcher.FetchPageFunc = func(ctx context.Context, url string) (string, error) {
			return "<html><body><p>tiny</p></body></html>", nil
		}
		out, err := env.orchestrator(t).Open(context.Background(), 6)
		require.NoError(t, err)
		assert.Equal(t, Cleaned, out.State)
		assert.Equal(t, SourceShortReader, out.Source)
		assert.Contains(t, out.Content, "short teaser")
	})
}

func TestOrchestrator_Failed(t *testing.T) {
	t.Run("fetch always fails", func(t *testing.T) {
		env := newTestEnv(domain.Article{ID: 7, URL: articleURL, Title: "Unreachable"})
		env.fetcher.FetchPageFunc = func(ctx context.Context, url string) (string, error) {
			return "", errors.New("connection refused")
		}
		out, err := env.orchestrator(t).Open(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, Failed, out.State)
		assert.Equal(t, articleURL, out.URL)
		assert.Equal(t, "Unreachable", out.Title)
		assert.Empty(t, out.Content)
		assert.Len(t, env.fetcher.FetchPageCalls(), 2, "full page tier retries the fetch")
		assert.Empty(t, env.store.SaveContentCalls())
	})

	t.Run("nothing readable", func(t *testing.T) {
		env := newTestEnv(domain.Article{ID: 8, URL: articleURL})
		env.reader.ReadFunc = func(page, pageURL string) (domain.ExtractionResult, error) {
			return domain.ExtractionResult{Content: "<div>" + strings.Repeat("<p></p>", 200) + "</div>", Success: true}, nil
		}
		env.fetcher.FetchPageFunc = func(ctx context.Context, url string) (string, error) {
			return "<html><body><nav>menu</nav></body></html>", nil
		}
		out, err := env.orchestrator(t).Open(context.Background(), 8)
		require.NoError(t, err)
		assert.Equal(t, Failed, out.State)
		assert.Empty(t, env.store.SaveContentCalls())
	})

	t.Run("unknown article", func(t *testing.T) {
		env := newTestEnv(domain.Article{ID: 9, URL: articleURL})
		_, err := env.orchestrator(t).Open(context.Background(), 100)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "get article 100")
	})
}

func TestOrchestrator_SaveErrorStillCleaned(t *testing.T) {
	env := newTestEnv(domain.Article{ID: 10, URL: articleURL})
	env.store.SaveContentFunc = func(ctx context.Context, id int64, html string, readingTime int) error {
		return errors.New("database is locked")
	}
	out, err := env.orchestrator(t).Open(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, Cleaned, out.State)
	assert.NotEmpty(t, out.Content)
}

func TestOrchestrator_SanitizesContent(t *testing.T) {
	env := newTestEnv(domain.Article{ID: 11, URL: articleURL})
	env.reader.ReadFunc = func(page, pageURL string) (domain.ExtractionResult, error) {
		return domain.ExtractionResult{
			Content: `<div><p onclick="steal()">` + paragraph + `</p><script>alert(1)</script></div>`,
			Success: true,
		}, nil
	}
	out, err := env.orchestrator(t).Open(context.Background(), 11)
	require.NoError(t, err)
	assert.NotContains(t, out.Content, "onclick")
	assert.NotContains(t, out.Content, "script")
	assert.NotContains(t, env.saved[11], "alert(1)")
}

func TestOrchestrator_ConcurrentOpenSharesRun(t *testing.T) {
	env := newTestEnv(domain.Article{ID: 12, URL: articleURL})
	var fetches int32
	release := make(chan struct{})
	env.fetcher.FetchPageFunc = func(ctx context.Context, url string) (string, error) {
		atomic.AddInt32(&fetches, 1)
		<-release
		return fullPage(), nil
	}
	o := env.orchestrator(t)

	var wg sync.WaitGroup
	results := make([]Outcome, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := o.Open(context.Background(), 12)
			assert.NoError(t, err)
			results[i] = out
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&fetches))
	assert.Len(t, env.store.SaveContentCalls(), 1)
	for _, r := range results {
		assert.Equal(t, Cleaned, r.State)
	}
}

func TestOrchestrator_CancelledCallerStillPersists(t *testing.T) {
	env := newTestEnv(domain.Article{ID: 13, URL: articleURL})
	env.fetcher.FetchPageFunc = func(ctx context.Context, url string) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return fullPage(), nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := env.orchestrator(t).Open(ctx, 13)
	require.NoError(t, err)
	assert.Equal(t, Cleaned, out.State)
	assert.Len(t, env.store.SaveContentCalls(), 1)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "needs-content", NeedsContent.String())
	assert.Equal(t, "trying-cached-or-feed-content", TryingCachedOrFeedContent.String())
	assert.Equal(t, "trying-full-page-fetch", TryingFullPageFetch.String())
	assert.Equal(t, "cleaned", Cleaned.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "unknown", State(42).String())

	b, err := Cleaned.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "cleaned", string(b))
}
