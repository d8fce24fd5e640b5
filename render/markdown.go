// Package render turns post bodies written in Markdown into sanitized HTML,
// a table of contents fragment and plain-text excerpts.
package render

import (
	"bytes"
	"io"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "monokai"

// Result is the output of a single render.
type Result struct {
	HTML string `json:"html"`
	// TOC holds the list items of the table of contents, without the outer <ul>.
	// It is empty when the document has no headings.
	TOC string `json:"toc"`
}

// Markdown renders post bodies. A Markdown value is safe for concurrent use.
type Markdown struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	style  string
	toc    bool
}

type options struct {
	style string
}

type Option func(*options)

// WithHighlightStyle selects the chroma style used for code blocks.
func WithHighlightStyle(style string) Option {
	return func(o *options) {
		if style != "" {
			o.style = style
		}
	}
}

// NewMarkdown builds a renderer with the extra profile (tables, footnotes,
// definition lists, attribute lists) and code highlighting. When toc is true
// headings get slug anchors and Render also returns a table of contents.
func NewMarkdown(toc bool, opts ...Option) *Markdown {
	o := options{style: DefaultHighlightStyle}
	for _, opt := range opts {
		opt(&o)
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.Footnote,
			extension.DefinitionList,
			highlighting.NewHighlighting(
				highlighting.WithStyle(o.style),
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
		),
		goldmark.WithParserOptions(parser.WithAttribute()),
		// raw HTML is let through here and cleaned by the sanitizer
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	return &Markdown{
		md:     md,
		policy: newPostPolicy(),
		style:  o.style,
		toc:    toc,
	}
}

// Render converts raw Markdown. Malformed input is rendered best-effort; the
// only possible error comes from the underlying writer.
func (m *Markdown) Render(raw string) (Result, error) {
	src := []byte(raw)

	doc := m.md.Parser().Parse(text.NewReader(src))
	if m.toc {
		assignHeadingIDs(doc, src)
	}

	var buf bytes.Buffer
	if err := m.md.Renderer().Render(&buf, src, doc); err != nil {
		return Result{}, err
	}

	result := Result{HTML: m.policy.Sanitize(buf.String())}
	if m.toc {
		result.TOC = extractTOC(tocContainer(buildOutline(collectHeadings(doc, src))))
	}
	return result, nil
}

// WriteHighlightCSS writes the stylesheet matching the classes emitted for
// highlighted code blocks.
func (m *Markdown) WriteHighlightCSS(w io.Writer) error {
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	return formatter.WriteCSS(w, styles.Get(m.style))
}

func newPostPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6", "li", "sup", "div")
	return p
}
