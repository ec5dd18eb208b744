package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleaner_IsJunkText(t *testing.T) {
	c := NewCleaner(testRules(t))

	tests := []struct {
		text string
		junk bool
	}{
		{"Follow", true},
		{"  follow  ", true},
		{"Follow us on social media for updates", true},
		{"click to follow", true},
		{"$299", true},
		{"$299 $399 Save $100", true},
		{"Save €49.99 today", true},
		{"2,500", true},
		{"+15%", true},
		{"", true},
		{"Loading...", true},
		{"Apple released a new chip today", false},
		{"Subscription prices rose", false},
		{"Version 2 ships in March", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.junk, c.isJunkText(tt.text))
		})
	}
}

func TestCleaner_Clean(t *testing.T) {
	c := NewCleaner(testRules(t))

	t.Run("orphan junk removed, prose kept", func(t *testing.T) {
		out := c.Clean(`<p>Follow</p>
			<p>Apple released a new chip today</p>
			<p>$299</p>
			<ul><li>2,500</li><li>Faster cores</li></ul>
			<div><span>Share</span></div>
			<p>Follow the <a href="https://x">link</a></p>`)
		assert.NotContains(t, out, "<p>Follow</p>")
		assert.NotContains(t, out, "$299")
		assert.NotContains(t, out, "2,500")
		assert.NotContains(t, out, "Share")
		assert.Contains(t, out, "Apple released a new chip today")
		assert.Contains(t, out, "Faster cores")
		assert.Contains(t, out, "Follow the", "elements with children are not orphans")
	})

	t.Run("main container re-extraction", func(t *testing.T) {
		out := c.Clean(`<div class="top-links">Home News Tech</div>
			<article><p>` + longText + `</p></article>
			<div class="bottom">Footer stuff</div>`)
		assert.True(t, strings.HasPrefix(out, "<article>"), out)
		assert.NotContains(t, out, "Home News Tech")
		assert.NotContains(t, out, "Footer stuff")
	})

	t.Run("short main container is not re-extracted", func(t *testing.T) {
		out := c.Clean(`<article><p>short article</p></article><div class="bottom">Footer stuff</div>`)
		assert.Contains(t, out, "short article")
		assert.Contains(t, out, "Footer stuff")
	})

	t.Run("site specific main container wins", func(t *testing.T) {
		out := c.Clean(`<article><div class="byline">by someone</div>
			<div class="wp-block-post-content"><p>` + longText + `</p></div></article>`)
		assert.True(t, strings.HasPrefix(out, `<div class="wp-block-post-content">`), out)
		assert.NotContains(t, out, "by someone")
	})

	t.Run("denylist", func(t *testing.T) {
		out := c.Clean(`<div class="share-buttons"><a href="#">tw</a></div>
			<div class="ad-disclaimer-container">affiliate text</div>
			<button>Click</button>
			<div class="author-bio">About the author</div>
			<p>Body stays here.</p>`)
		assert.Equal(t, "<p>Body stays here.</p>", out)
	})

	t.Run("empty sweep keeps media", func(t *testing.T) {
		out := c.Clean(`<div> </div><p></p><div><img src="https://x/a.png"/></div><p>text</p>`)
		assert.Equal(t, `<div><img src="https://x/a.png"/></div><p>text</p>`, out)
	})

	t.Run("videos", func(t *testing.T) {
		out := c.Clean(`<p>intro text</p>
			<iframe src="https://www.youtube.com/embed/dQw4w9WgXcQ?rel=0"></iframe>
			<iframe data-src="https://player.vimeo.com/video/123"></iframe>
			<iframe src="https://example.com/player/9"></iframe>
			<iframe></iframe>
			<video><source src="https://cdn.x/clip.mp4"/></video>
			<video></video>`)

		doc := parseFragment(t, out)
		assert.Equal(t, 0, doc.Find("iframe, video").Length(), out)

		yt := doc.Find("a.video-thumbnail")
		require.Equal(t, 1, yt.Length())
		assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", yt.AttrOr("href", ""))
		assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg", yt.Find("img").AttrOr("src", ""))
		assert.Equal(t, 1, yt.Find("span.video-play").Length())

		links := doc.Find("a.video-link")
		require.Equal(t, 3, links.Length())
		assert.Equal(t, "https://player.vimeo.com/video/123", links.Eq(0).AttrOr("href", ""))
		assert.Contains(t, links.Eq(0).Text(), "Watch on Vimeo")
		assert.Equal(t, "https://example.com/player/9", links.Eq(1).AttrOr("href", ""))
		assert.Contains(t, links.Eq(1).Text(), "Watch video")
		assert.Equal(t, "https://cdn.x/clip.mp4", links.Eq(2).AttrOr("href", ""))
	})
}
