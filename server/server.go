// Package server exposes the reader over a JSON http api
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/flowreader/pkg/domain"
	"github.com/umputun/flowreader/pkg/pipeline"
	"github.com/umputun/flowreader/pkg/scheduler"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/database.go -pkg mocks -skip-ensure -fmt goimports . Database
//go:generate moq -out mocks/scheduler.go -pkg mocks -skip-ensure -fmt goimports . Scheduler
//go:generate moq -out mocks/orchestrator.go -pkg mocks -skip-ensure -fmt goimports . Orchestrator
//go:generate moq -out mocks/summarizer.go -pkg mocks -skip-ensure -fmt goimports . Summarizer

// Server represents HTTP server instance
type Server struct {
	config       ConfigProvider
	db           Database
	scheduler    Scheduler
	orchestrator Orchestrator
	summarizer   Summarizer
	version      string
	debug        bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Database interface for feed and article storage
type Database interface {
	GetFeeds(ctx context.Context) ([]domain.Feed, error)
	DeleteFeed(ctx context.Context, id int64) error
	GetArticle(ctx context.Context, id int64) (*domain.Article, error)
	GetArticles(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error)
	SetRead(ctx context.Context, id int64, read bool) error
	MarkAllRead(ctx context.Context, feedID int64) (int64, error)
	ToggleBookmark(ctx context.Context, id int64) (bool, error)
	SaveScroll(ctx context.Context, id int64, offset int) error
	SaveSummary(ctx context.Context, id int64, summary string) error
	UnreadCount(ctx context.Context) (int, error)
}

// Scheduler interface for on-demand feed operations
type Scheduler interface {
	Refresh(ctx context.Context) (scheduler.RefreshStats, error)
	AddFeed(ctx context.Context, rawURL string) (*domain.Feed, error)
}

// Orchestrator runs content extraction for an article
type Orchestrator interface {
	Open(ctx context.Context, articleID int64) (pipeline.Outcome, error)
}

// Summarizer makes a short summary of article text
type Summarizer interface {
	Summarize(ctx context.Context, title, text string) (string, error)
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetPageSize() int
}

// Params holds server dependencies, Summarizer is optional
type Params struct {
	Config       ConfigProvider
	Database     Database
	Scheduler    Scheduler
	Orchestrator Orchestrator
	Summarizer   Summarizer
	Version      string
	Debug        bool
}

// New initializes a new server instance
func New(params Params) *Server {
	s := &Server{
		config:       params.Config,
		db:           params.Database,
		scheduler:    params.Scheduler,
		orchestrator: params.Orchestrator,
		summarizer:   params.Summarizer,
		version:      params.Version,
		debug:        params.Debug,
		router:       routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      2 * timeout, // content extraction may take longer than a plain request
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.lock.Lock()
		defer s.lock.Unlock()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("flowreader", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)

		r.HandleFunc("GET /feeds", s.listFeedsHandler)
		r.HandleFunc("POST /feeds", s.addFeedHandler)
		r.HandleFunc("GET /feeds/opml", s.exportOPMLHandler)
		r.HandleFunc("POST /feeds/opml", s.importOPMLHandler)
		r.HandleFunc("DELETE /feeds/{id}", s.deleteFeedHandler)
		r.HandleFunc("POST /feeds/{id}/read", s.markFeedReadHandler)
		r.HandleFunc("POST /read", s.markAllReadHandler)
		r.HandleFunc("POST /refresh", s.refreshHandler)

		r.HandleFunc("GET /articles", s.listArticlesHandler)
		r.HandleFunc("GET /articles/{id}", s.getArticleHandler)
		r.HandleFunc("GET /articles/{id}/content", s.articleContentHandler)
		r.HandleFunc("POST /articles/{id}/read", s.markReadHandler)
		r.HandleFunc("POST /articles/{id}/unread", s.markUnreadHandler)
		r.HandleFunc("POST /articles/{id}/bookmark", s.bookmarkHandler)
		r.HandleFunc("PUT /articles/{id}/scroll", s.scrollHandler)
		r.HandleFunc("POST /articles/{id}/summary", s.summaryHandler)
	})
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
