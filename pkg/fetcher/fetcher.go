// Package fetcher downloads feeds and article pages over http with browser-like headers
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/html/charset"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/129.0 Safari/537.36 FlowReader/1.0"
	defaultMaxBody   = 10 * 1024 * 1024
)

// Config defines fetcher parameters, zero values are replaced by defaults
type Config struct {
	Timeout     time.Duration
	UserAgent   string
	MaxBodySize int64
}

// Fetcher retrieves remote content. All failures, including non-2xx
// responses, are returned as errors for the caller to absorb
type Fetcher struct {
	client    *http.Client
	userAgent string
	maxBody   int64
}

// New makes a fetcher
func New(cfg Config) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = defaultMaxBody
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: cfg.UserAgent,
		maxBody:   cfg.MaxBodySize,
	}
}

// Fetch returns raw response bytes, used for feed documents
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	resp, err := f.get(ctx, rawURL, feedRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rawURL, err)
	}
	return data, nil
}

// FetchPage returns an html page decoded to utf-8 using the declared or sniffed charset
func (f *Fetcher) FetchPage(ctx context.Context, rawURL string) (string, error) {
	resp, err := f.get(ctx, rawURL, pageRequest)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := charset.NewReader(io.LimitReader(resp.Body, f.maxBody), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", rawURL, err)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", rawURL, err)
	}
	return string(data), nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string, kind requestKind) (*http.Response, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid url: %s", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	setRequestHeaders(req, kind, f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code %d for %s", resp.StatusCode, rawURL)
	}
	return resp, nil
}
