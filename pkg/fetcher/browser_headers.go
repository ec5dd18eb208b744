package fetcher

import (
	"math/rand/v2"
	"net/http"
)

type requestKind int

const (
	feedRequest requestKind = iota
	pageRequest
)

var acceptLanguages = []string{
	"en-US,en;q=0.9",
	"en-GB,en;q=0.9",
	"en-US,en;q=0.9,de;q=0.8",
}

// headersFor returns the fixed request headers of a kind, page requests look like a top-level navigation
func headersFor(kind requestKind) map[string]string {
	if kind == feedRequest {
		return map[string]string{
			"Accept":        "application/rss+xml,application/atom+xml,application/xml;q=0.9,text/xml;q=0.9,*/*;q=0.8",
			"Cache-Control": "no-cache",
		}
	}
	return map[string]string{
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
		"Cache-Control":             "no-cache",
		"Upgrade-Insecure-Requests": "1",
		"Sec-Fetch-Dest":            "document",
		"Sec-Fetch-Mode":            "navigate",
		"Sec-Fetch-Site":            "none",
		"Sec-Fetch-User":            "?1",
	}
}

// setRequestHeaders applies kind headers and a varied Accept-Language.
// Accept-Encoding is left to the transport so compressed bodies are decoded transparently
func setRequestHeaders(req *http.Request, kind requestKind, userAgent string) {
	for k, v := range headersFor(kind) {
		req.Header.Set(k, v)
	}
	req.Header.Set("Accept-Language", acceptLanguages[rand.IntN(len(acceptLanguages))]) //nolint:gosec // header variation only
	req.Header.Set("User-Agent", userAgent)
}
