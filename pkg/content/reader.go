package content

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"

	"github.com/umputun/flowreader/pkg/domain"
)

// reader-mode engine names
const (
	EngineReadability = "readability"
	EngineTrafilatura = "trafilatura"
)

// ReaderMode is a third-party reader-mode engine working on an already fetched page
type ReaderMode interface {
	Read(page, pageURL string) (domain.ExtractionResult, error)
}

// NewReaderMode returns reader-mode engine by name, readability is the default
func NewReaderMode(engine string) (ReaderMode, error) {
	switch strings.ToLower(engine) {
	case "", EngineReadability:
		return &ReadabilityReader{}, nil
	case EngineTrafilatura:
		return &TrafilaturaReader{}, nil
	default:
		return nil, fmt.Errorf("unknown reader engine %q", engine)
	}
}

// ReadabilityReader wraps go-readability
type ReadabilityReader struct{}

// Read extracts the article with the readability algorithm
func (r *ReadabilityReader) Read(page, pageURL string) (domain.ExtractionResult, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return domain.ExtractionResult{}, fmt.Errorf("parse url %s: %w", pageURL, err)
	}
	article, err := readability.FromReader(strings.NewReader(page), u)
	if err != nil {
		return domain.ExtractionResult{}, fmt.Errorf("readability %s: %w", pageURL, err)
	}
	res := domain.ExtractionResult{
		Title:   strings.TrimSpace(article.Title),
		Content: strings.TrimSpace(article.Content),
		Author:  strings.TrimSpace(article.Byline),
	}
	res.Success = res.Content != "" && strings.TrimSpace(article.TextContent) != ""
	return res, nil
}

// TrafilaturaReader wraps go-trafilatura
type TrafilaturaReader struct{}

// Read extracts the article with trafilatura, keeping images and links
func (r *TrafilaturaReader) Read(page, pageURL string) (domain.ExtractionResult, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return domain.ExtractionResult{}, fmt.Errorf("parse url %s: %w", pageURL, err)
	}

	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		ExcludeTables:   false,
		IncludeImages:   true,
		IncludeLinks:    true,
		Deduplicate:     true,
		OriginalURL:     u,
	}
	result, err := trafilatura.Extract(strings.NewReader(page), opts)
	if err != nil {
		return domain.ExtractionResult{}, fmt.Errorf("trafilatura %s: %w", pageURL, err)
	}
	if result == nil || result.ContentNode == nil {
		return domain.ExtractionResult{}, nil
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, result.ContentNode); err != nil {
		return domain.ExtractionResult{}, fmt.Errorf("render content of %s: %w", pageURL, err)
	}
	res := domain.ExtractionResult{
		Title:   strings.TrimSpace(result.Metadata.Title),
		Content: strings.TrimSpace(buf.String()),
		Author:  strings.TrimSpace(result.Metadata.Author),
	}
	res.Success = res.Content != "" && strings.TrimSpace(result.ContentText) != ""
	return res, nil
}
