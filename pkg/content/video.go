package content

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var youtubeIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube(?:-nocookie)?\.com/embed/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/watch\?(?:[^#]*&)?v=([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/shorts/([a-zA-Z0-9_-]{11})`),
}

// YouTubeID extracts the 11-character video id from embed, watch, shorts and short-link urls
func YouTubeID(src string) string {
	for _, re := range youtubeIDPatterns {
		if m := re.FindStringSubmatch(src); len(m) == 2 {
			return m[1]
		}
	}
	return ""
}

// replaceVideos swaps iframe and video embeds for static links, embeds without a source are dropped
func replaceVideos(doc *goquery.Document) {
	doc.Find("iframe").Each(func(_ int, frame *goquery.Selection) {
		src := firstAttr(frame, "src", "data-src", "data-lazy-src")
		if node := videoPlaceholder(src); node != nil {
			frame.ReplaceWithNodes(node)
			return
		}
		frame.Remove()
	})

	doc.Find("video").Each(func(_ int, video *goquery.Selection) {
		src := strings.TrimSpace(video.Find("source[src]").First().AttrOr("src", ""))
		if src == "" {
			src = strings.TrimSpace(video.AttrOr("src", ""))
		}
		if src == "" {
			video.Remove()
			return
		}
		video.ReplaceWithNodes(videoLink(absoluteScheme(src), "Watch video"))
	})
}

func videoPlaceholder(src string) *html.Node {
	src = absoluteScheme(strings.TrimSpace(src))
	lower := strings.ToLower(src)
	switch {
	case src == "":
		return nil
	case strings.Contains(lower, "youtube.com") || strings.Contains(lower, "youtube-nocookie.com") || strings.Contains(lower, "youtu.be"):
		if id := YouTubeID(src); id != "" {
			return youtubeThumbnail(id)
		}
		return videoLink(src, "Watch on YouTube")
	case strings.Contains(lower, "vimeo.com"):
		return videoLink(src, "Watch on Vimeo")
	default:
		return videoLink(src, "Watch video")
	}
}

// youtubeThumbnail builds <a class="video-thumbnail"><img/><span class="video-play">▶</span></a>
func youtubeThumbnail(id string) *html.Node {
	link := element(atom.A, "href", "https://www.youtube.com/watch?v="+id, "class", "video-thumbnail")
	link.AppendChild(element(atom.Img, "src", "https://img.youtube.com/vi/"+id+"/hqdefault.jpg", "alt", "YouTube video"))
	play := element(atom.Span, "class", "video-play")
	play.AppendChild(&html.Node{Type: html.TextNode, Data: "▶"})
	link.AppendChild(play)
	return link
}

func videoLink(src, label string) *html.Node {
	link := element(atom.A, "href", src, "class", "video-link")
	link.AppendChild(&html.Node{Type: html.TextNode, Data: "▶ " + label})
	return link
}

// element makes an element node, attrs are key/value pairs
func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func firstAttr(s *goquery.Selection, attrs ...string) string {
	for _, a := range attrs {
		if v := strings.TrimSpace(s.AttrOr(a, "")); v != "" {
			return v
		}
	}
	return ""
}

// absoluteScheme turns protocol-relative urls into https ones
func absoluteScheme(src string) string {
	if strings.HasPrefix(src, "//") {
		return "https:" + src
	}
	return src
}
