package render

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name   string
		html   string
		maxLen int
		want   string
	}{
		{name: "strips tags", html: "<p>Hello <strong>world</strong></p>", maxLen: 54, want: "Hello world"},
		{name: "truncates", html: "<p>abcdef</p>", maxLen: 3, want: "abc"},
		{name: "counts characters not bytes", html: "<p>你好世界</p>", maxLen: 2, want: "你好"},
		{name: "unescapes ampersand", html: "<p>a &amp; b</p>", maxLen: 4, want: "a & "},
		{name: "unescapes quotes", html: "<p>say &#34;hi&#34; &amp; it&#39;s done</p>", maxLen: 54, want: "say \"hi\" & it's done"},
		{name: "keeps literal angle brackets", html: "<p>a &lt; b</p>", maxLen: 54, want: "a < b"},
		{name: "zero length", html: "<p>abc</p>", maxLen: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Excerpt(tt.html, tt.maxLen))
		})
	}
}

func TestExcerptOfRenderedPost(t *testing.T) {
	md := NewMarkdown(false)
	body := "# Title\n\nHello **world**, this paragraph is long enough to be cut somewhere in the middle.\n\n```go\nfmt.Println(\"hi\")\n```\n"

	res, err := md.Render(body)
	require.NoError(t, err)

	excerpt := Excerpt(res.HTML, DefaultExcerptLength)
	assert.LessOrEqual(t, utf8.RuneCountInString(excerpt), DefaultExcerptLength)
	assert.Contains(t, excerpt, "Hello world")
	assert.False(t, strings.ContainsAny(excerpt, "<>"))
	assert.NotContains(t, excerpt, "id=")
}

func TestExcerptDoesNotAddEscapes(t *testing.T) {
	res, err := NewMarkdown(false).Render("# Title\n\nHello **world** & \"quotes\" aren't escaped")
	require.NoError(t, err)

	excerpt := Excerpt(res.HTML, DefaultExcerptLength)
	assert.Contains(t, excerpt, `Hello world & "quotes" aren't escaped`)
	assert.NotContains(t, excerpt, "&amp;")
	assert.NotContains(t, excerpt, "&#")
}
