package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestYouTubeID(t *testing.T) {
	const id = "dQw4w9WgXcQ"
	tests := []struct {
		src  string
		want string
	}{
		{"https://www.youtube.com/watch?v=" + id, id},
		{"https://youtu.be/" + id, id},
		{"https://www.youtube.com/embed/" + id + "?autoplay=1", id},
		{"https://www.youtube.com/shorts/" + id, id},
		{"//www.youtube-nocookie.com/embed/" + id, id},
		{"https://m.youtube.com/watch?feature=share&v=" + id, id},
		{"https://www.youtube.com/watch?v=short", ""},
		{"https://vimeo.com/12345", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, YouTubeID(tt.src))
		})
	}
}

func TestVideoPlaceholder(t *testing.T) {
	assert.Nil(t, videoPlaceholder("  "))

	n := videoPlaceholder("//youtu.be/dQw4w9WgXcQ")
	if assert.NotNil(t, n) {
		assert.Equal(t, "a", n.Data)
		assert.Contains(t, n.Attr[0].Val, "watch?v=dQw4w9WgXcQ")
	}

	n = videoPlaceholder("https://www.youtube.com/playlist?list=abc")
	if assert.NotNil(t, n) {
		assert.Equal(t, "https://www.youtube.com/playlist?list=abc", n.Attr[0].Val)
		assert.Equal(t, "▶ Watch on YouTube", n.FirstChild.Data)
	}
}
