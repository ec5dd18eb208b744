package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func articlePage() string {
	var sb strings.Builder
	sb.WriteString(`<!DOCTYPE html><html><head><title>Chips Are Getting Faster</title>
		<meta name="author" content="Jane Doe"></head><body>
		<nav><a href="/">Home</a> <a href="/tech">Tech</a></nav>
		<article><h1>Chips Are Getting Faster</h1>`)
	for i := 0; i < 6; i++ {
		sb.WriteString(`<p>The new processor family delivers a substantial improvement in single-thread
			performance, according to benchmarks published by several independent labs this week.
			Engineers credit a redesigned cache hierarchy and a wider execution core for the gains,
			while power draw stays roughly flat compared with the previous generation of parts.</p>`)
	}
	sb.WriteString(`</article><footer>Copyright 2026</footer></body></html>`)
	return sb.String()
}

func TestNewReaderMode(t *testing.T) {
	r, err := NewReaderMode("")
	require.NoError(t, err)
	assert.IsType(t, &ReadabilityReader{}, r)

	r, err = NewReaderMode("Trafilatura")
	require.NoError(t, err)
	assert.IsType(t, &TrafilaturaReader{}, r)

	_, err = NewReaderMode("boilerpipe")
	require.Error(t, err)
}

func TestReadabilityReader_Read(t *testing.T) {
	res, err := (&ReadabilityReader{}).Read(articlePage(), "https://example.com/chips")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Contains(t, res.Content, "redesigned cache hierarchy")
	assert.NotContains(t, res.Content, "Copyright 2026")
	assert.Contains(t, res.Title, "Chips Are Getting Faster")
}

func TestTrafilaturaReader_Read(t *testing.T) {
	res, err := (&TrafilaturaReader{}).Read(articlePage(), "https://example.com/chips")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Contains(t, res.Content, "redesigned cache hierarchy")
}

func TestReaders_BadURL(t *testing.T) {
	_, err := (&ReadabilityReader{}).Read("<p>x</p>", "://bad")
	require.Error(t, err)
	_, err = (&TrafilaturaReader{}).Read("<p>x</p>", "://bad")
	require.Error(t, err)
}
