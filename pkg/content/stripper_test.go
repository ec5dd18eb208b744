package content

import (
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseFragment(t *testing.T, s string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	require.NoError(t, err)
	return doc
}

func TestStripper_Clean(t *testing.T) {
	st := NewStripper(testRules(t))

	t.Run("chrome selectors", func(t *testing.T) {
		out := st.Clean(`<div role="navigation">Menu</div>
			<div class="newsletter-box">Get it daily</div>
			<div id="related-posts">Other stuff</div>
			<p>Body text stays.</p>`)
		assert.Equal(t, "<p>Body text stays.</p>", out)
	})

	t.Run("junk lead-in phrases", func(t *testing.T) {
		out := st.Clean(`<p>Sign up for our daily digest</p>
			<p>You might also like: ten gadgets</p>
			<div><span>Most Popular</span></div>
			<p>Real paragraph about chips.</p>`)
		assert.NotContains(t, out, "Sign up")
		assert.NotContains(t, out, "might also like")
		assert.NotContains(t, out, "Most Popular")
		assert.Contains(t, out, "Real paragraph about chips.")
	})

	t.Run("long related widget", func(t *testing.T) {
		var items strings.Builder
		for i := range 5 {
			fmt.Fprintf(&items, `<li><a href="https://x/story-%d">A fairly long headline of another story number %d</a></li>`, i, i)
		}
		out := st.Clean(`<div><h3>You might also like</h3><ul>` + items.String() + `</ul></div>
			<p>` + longText + `</p>`)
		assert.NotContains(t, out, "You might also like")
		assert.NotContains(t, out, "story number")
		assert.Contains(t, out, "lorem ipsum")
	})

	t.Run("heading lead-in", func(t *testing.T) {
		out := st.Clean(`<h2>Read more from this desk</h2><p>` + longText + `</p>`)
		assert.NotContains(t, out, "Read more from")
		assert.Contains(t, out, "lorem ipsum")
	})

	t.Run("lazy images", func(t *testing.T) {
		out := st.Clean(`<img data-src="https://x/y.png">
			<img data-src="/relative.png">
			<img data-lazy-src="https://x/lazy.png" src="https://x/placeholder.gif">
			<img src="https://x/pixel.gif">
			<img src="https://cdn.x/blank.png">
			<img>
			<img src="https://x/real.png">
			<img src="data:image/gif;base64,R0lGODlhAQABAIAAAAAAAP///yH5BAEAAAAALAAAAAABAAEAAAIBRAA7" data-src="https://cdn.x/lazy-real.jpg">
			<img src="data:image/gif;base64,R0lGODlhAQABAIAAAAAAAP///yH5BAEAAAAALAAAAAABAAEAAAIBRAA7">`)

		doc := parseFragment(t, out)
		imgs := doc.Find("img")
		require.Equal(t, 5, imgs.Length(), out)

		assert.Equal(t, "https://x/y.png", imgs.Eq(0).AttrOr("src", ""))

		_, hasSrc := imgs.Eq(1).Attr("src")
		assert.False(t, hasSrc, "relative lazy source is not promoted")
		assert.Equal(t, "/relative.png", imgs.Eq(1).AttrOr("data-src", ""))

		assert.Equal(t, "https://x/lazy.png", imgs.Eq(2).AttrOr("src", ""))
		assert.Equal(t, "https://x/real.png", imgs.Eq(3).AttrOr("src", ""))
		assert.Equal(t, "https://cdn.x/lazy-real.jpg", imgs.Eq(4).AttrOr("src", ""), "pixel src replaced by lazy source")
	})

	t.Run("padding-bottom hack", func(t *testing.T) {
		out := st.Clean(`<div style="padding-bottom: 56.25%; position: relative"><img src="https://x/a.png"></div>
			<div style="padding-bottom:75%"><img src="https://x/b.png"></div>
			<div style="padding-bottom: 10px">fixed</div>`)
		doc := parseFragment(t, out)
		divs := doc.Find("div")
		require.Equal(t, 3, divs.Length())
		assert.Equal(t, "position: relative", divs.Eq(0).AttrOr("style", ""))
		_, ok := divs.Eq(1).Attr("style")
		assert.False(t, ok)
		assert.Equal(t, "padding-bottom: 10px", divs.Eq(2).AttrOr("style", ""))
	})

	t.Run("invalid selector is skipped", func(t *testing.T) {
		r := testRules(t)
		r.Stripper.Selectors = append([]string{"[class*=", "div:unknown-pseudo"}, r.Stripper.Selectors...)
		out := NewStripper(r).Clean(`<div class="promo-box">buy</div><p>kept</p>`)
		assert.Equal(t, "<p>kept</p>", out)
	})
}

func TestStripper_Idempotent(t *testing.T) {
	st := NewStripper(testRules(t))
	inputs := []string{
		`<article><h1>Title</h1>
			<div class="social-follow">Follow</div>
			<section><p>Sign up for alerts</p><p>` + longText + `</p></section>
			<div><div><span>Don't miss</span></div><p>Subscribe to our podcast</p></div>
			<figure><img data-original="https://x/o.jpg" src=""><figcaption>caption</figcaption></figure>
			<img data-src="/rel.png">
			<div style="padding-bottom:50%;color:red">box</div>
		</article>`,
		`<p>plain</p>`,
		``,
	}

	for i, in := range inputs {
		once := st.Clean(in)
		twice := st.Clean(once)
		assert.Equal(t, once, twice, "input #%d", i)
	}
}
